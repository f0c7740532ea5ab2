package inventory

import (
	"context"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// SheetRepository интерфейс репозитория листов инвентаря
type SheetRepository interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.DaySlotSheet, error)
	CreateNew(ctx context.Context, sheet *domain.DaySlotSheet) (*domain.DaySlotSheet, error)
	MutateSlot(ctx context.Context, key domain.SlotKey, slotTime timeofday.TimeOfDay, mutator func(slot *domain.SlotRecord) error) (*domain.SlotRecord, error)
	ReplaceSlots(ctx context.Context, key domain.SlotKey, capacity int, slots []domain.SlotRecord) error
	FindRange(ctx context.Context, packageType domain.PackageType, packageID int64, fromDate, toDate string) ([]*domain.DaySlotSheet, error)
	ListDates(ctx context.Context, packageType domain.PackageType, packageID int64, fromDate string) ([]string, error)
	DeleteAll(ctx context.Context, packageType domain.PackageType, packageID int64) (int64, error)
}

// GenStateRepository интерфейс репозитория состояния генерации
type GenStateRepository interface {
	Touch(ctx context.Context, ref domain.PackageRef, at time.Time) error
	Delete(ctx context.Context, ref domain.PackageRef) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
