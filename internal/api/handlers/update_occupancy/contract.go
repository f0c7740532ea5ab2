package update_occupancy

import (
	"context"

	updateOccupancy "github.com/m04kA/TMS-InventoryService/internal/usecase/update_occupancy"
)

type UpdateOccupancyUseCase interface {
	Execute(ctx context.Context, req *updateOccupancy.Request) (*updateOccupancy.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
