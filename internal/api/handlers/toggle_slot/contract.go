package toggle_slot

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

type InventoryService interface {
	ToggleManualAvailability(ctx context.Context, key domain.SlotKey, slotTime timeofday.TimeOfDay, available bool) (*domain.SlotRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
