package update_occupancy

import (
	"context"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// SheetRepository интерфейс репозитория листов инвентаря
type SheetRepository interface {
	MutateSlot(
		ctx context.Context,
		key domain.SlotKey,
		slotTime timeofday.TimeOfDay,
		mutator func(slot *domain.SlotRecord) error,
	) (*domain.SlotRecord, error)
}

// CatalogClient интерфейс клиента каталога пакетов
type CatalogClient interface {
	GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик изменения занятости
type Metrics interface {
	ObserveOccupancyChange(direction, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
