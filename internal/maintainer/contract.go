package maintainer

import (
	"context"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
)

// CatalogClient интерфейс клиента каталога пакетов
type CatalogClient interface {
	ListActivePackages(ctx context.Context) ([]domain.PackageRef, error)
	GetPackage(ctx context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error)
}

// InventoryService интерфейс сервиса инвентаря
type InventoryService interface {
	EnsureHorizon(ctx context.Context, pkg *domain.Package) (int, error)
}

// GenStateRepository интерфейс репозитория состояния генерации
type GenStateRepository interface {
	Get(ctx context.Context, ref domain.PackageRef) (time.Time, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
