package generate_slots

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

type InventoryService interface {
	EnsureHorizon(ctx context.Context, pkg *domain.Package) (int, error)
}

type CatalogClient interface {
	GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
