package update_occupancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-InventoryService/pkg/txmanager"
)

// Число попыток мутации при конфликтах сериализации
const maxAttempts = 3

// UseCase use case изменения занятости слота - единственная точка записи
// бронирований в инвентарь. Мутация выполняется в сериализуемой транзакции
// под блокировкой строки листа, поэтому конкурентные изменения одного листа
// линеаризуются.
type UseCase struct {
	sheetRepo     SheetRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sheetRepo SheetRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sheetRepo:     sheetRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// Execute применяет изменение занятости к слоту
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOccupancy: package=%s/%d, date=%s, time=%s, direction=%s, persons=%d",
		req.PackageType, req.PackageID, req.Date, req.Time, req.Direction, req.Persons)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOccupancy: validation failed: %v", err)
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "invalid")
		return nil, err
	}

	// Пакет запрашивается на каждое изменение: переход минимума при
	// освобождении последнего места должен использовать актуальный дефолт
	pkg, err := uc.catalogClient.GetPackage(ctx, req.PackageType, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPackageNotFound) {
			uc.metrics.ObserveOccupancyChange(string(req.Direction), "not_found")
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("UpdateOccupancy: failed to get package %s/%d: %v", req.PackageType, req.PackageID, err)
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "error")
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	key := domain.SlotKey{PackageType: req.PackageType, PackageID: req.PackageID, Date: req.Date}

	var updated *domain.SlotRecord
	mutate := func(txCtx context.Context) error {
		var mutErr error
		updated, mutErr = uc.sheetRepo.MutateSlot(txCtx, key, req.Time, func(slot *domain.SlotRecord) error {
			return applyTransition(slot, pkg, req.Direction, req.Persons)
		})
		return mutErr
	}

	for attempt := 1; ; attempt++ {
		err = uc.txManager.DoSerializable(ctx, mutate)
		if err == nil {
			break
		}

		if txmanager.IsSerializationFailure(err) {
			if attempt < maxAttempts {
				uc.logger.Warn("UpdateOccupancy: serialization conflict on %s/%d %s %s, attempt %d/%d",
					req.PackageType, req.PackageID, req.Date, req.Time, attempt, maxAttempts)
				continue
			}
			uc.logger.Error("UpdateOccupancy: giving up after %d attempts: %v", maxAttempts, err)
			uc.metrics.ObserveOccupancyChange(string(req.Direction), "conflict")
			return nil, ErrConcurrencyConflict
		}

		return nil, uc.mapMutationError(req, err)
	}

	uc.metrics.ObserveOccupancyChange(string(req.Direction), "success")
	uc.logger.Info("UpdateOccupancy: %s/%d %s %s -> booked=%d, minimum=%d",
		req.PackageType, req.PackageID, req.Date, req.Time, updated.BookedCount, updated.MinimumGroupSize)

	return &Response{
		BookedCount:      updated.BookedCount,
		AvailableSlots:   updated.AvailableSpots(),
		MinimumGroupSize: updated.MinimumGroupSize,
	}, nil
}

// mapMutationError переводит ошибки хранилища и перехода в ошибки usecase
func (uc *UseCase) mapMutationError(req *Request, err error) error {
	switch {
	case errors.Is(err, sheetRepo.ErrSheetNotFound), errors.Is(err, sheetRepo.ErrSlotNotFound):
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "not_found")
		return ErrSlotNotFound
	case errors.Is(err, ErrCapacityExceeded):
		uc.logger.Warn("UpdateOccupancy: %v", err)
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "capacity_exceeded")
		return err
	case errors.Is(err, ErrInvalidInput):
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "invalid")
		return err
	default:
		uc.logger.Error("UpdateOccupancy: mutation failed: %v", err)
		uc.metrics.ObserveOccupancyChange(string(req.Direction), "error")
		return fmt.Errorf("%w: mutation failed: %v", ErrInternal, err)
	}
}
