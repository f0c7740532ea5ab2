package check_availability

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

// SheetRepository интерфейс репозитория листов инвентаря
type SheetRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.DaySlotSheet, error)
}

// CatalogClient интерфейс клиента каталога пакетов
type CatalogClient interface {
	GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
