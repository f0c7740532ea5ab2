package delete_slots

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

type InventoryService interface {
	DeleteAll(ctx context.Context, ref domain.PackageRef) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
