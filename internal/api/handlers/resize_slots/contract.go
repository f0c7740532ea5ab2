package resize_slots

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

type InventoryService interface {
	Resize(ctx context.Context, pkg *domain.Package, newTimes []timeofday.TimeOfDay, newCapacity int) (int, error)
}

type CatalogClient interface {
	GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
