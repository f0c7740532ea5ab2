package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-InventoryService/pkg/civiltime"
)

// UseCase use case проверки доступности слота: чистая "check"-половина
// check-then-act. Ничего не пишет; леджер обязан перепроверить вместимость
// внутри своей атомарной мутации, так как между проверкой и бронированием
// могут успеть другие заявки.
type UseCase struct {
	sheetRepo     SheetRepository
	catalogClient CatalogClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sheetRepo SheetRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		sheetRepo:     sheetRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет проверку доступности слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: package=%s/%d, date=%s, time=%s, persons=%d",
		req.PackageType, req.PackageID, req.Date, req.Time, req.Persons)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем пакет из каталога (нужен для маркировки отказа
	// по минимальному размеру группы)
	pkg, err := uc.catalogClient.GetPackage(ctx, req.PackageType, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrPackageNotFound) {
			uc.logger.Warn("CheckAvailability: package %s/%d not found", req.PackageType, req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get package %s/%d: %v", req.PackageType, req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}

	// 3. Вычисляем момент отправления и момент закрытия окна бронирования
	departureAt, err := civiltime.Instant(req.Date, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}
	cutoffAt := departureAt.Add(-domain.CutoffHours * time.Hour)

	// 4. Бронирования день-в-день запрещены независимо от часового cutoff
	requestDay, err := civiltime.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}
	if !requestDay.After(civiltime.StartOfDay(req.Now)) {
		uc.logger.Info("CheckAvailability: same-day booking rejected for %s", req.Date)
		return &Response{Available: false, Reason: ReasonSameDayClosed}, nil
	}

	// 5. Ищем лист и слот
	key := domain.SlotKey{PackageType: req.PackageType, PackageID: req.PackageID, Date: req.Date}
	daySheet, err := uc.sheetRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			uc.logger.Info("CheckAvailability: no sheet for package=%s/%d, date=%s", req.PackageType, req.PackageID, req.Date)
			return &Response{Available: false, Reason: ReasonNoInventory}, nil
		}
		uc.logger.Error("CheckAvailability: failed to get sheet: %v", err)
		return nil, fmt.Errorf("%w: failed to get sheet: %v", ErrInternal, err)
	}

	slot := daySheet.FindSlot(req.Time)
	if slot == nil {
		uc.logger.Info("CheckAvailability: time %s not offered on %s for package=%s/%d",
			req.Time, req.Date, req.PackageType, req.PackageID)
		return &Response{Available: false, Reason: ReasonTimeNotOffered}, nil
	}

	availableSlots := slot.AvailableSpots()
	minimumGroupSize := slot.MinimumGroupSize

	// 6. Проверяем окно бронирования (остаток мест - информационно)
	if !req.Now.Before(cutoffAt) {
		uc.logger.Info("CheckAvailability: cutoff passed for %s %s (departure=%s)",
			req.Date, req.Time, departureAt.Format(time.RFC3339))
		return &Response{
			Available:        false,
			AvailableSlots:   availableSlots,
			Reason:           cutoffReason(),
			MinimumGroupSize: minimumGroupSize,
		}, nil
	}

	// 7. Ручной флаг доступности
	if !slot.ManuallyAvailable {
		return &Response{
			Available:        false,
			AvailableSlots:   availableSlots,
			Reason:           ReasonManuallyClosed,
			MinimumGroupSize: minimumGroupSize,
		}, nil
	}

	// 8. Минимальный размер группы. Значение уже отражает правила
	// private/первого бронирования - здесь оно только читается
	if req.Persons < minimumGroupSize {
		return &Response{
			Available:        false,
			AvailableSlots:   availableSlots,
			Reason:           minimumReason(pkg, slot, minimumGroupSize),
			MinimumGroupSize: minimumGroupSize,
		}, nil
	}

	// 9. Вместимость
	if availableSlots < req.Persons {
		return &Response{
			Available:        false,
			AvailableSlots:   availableSlots,
			Reason:           ReasonInsufficientCapacity,
			MinimumGroupSize: minimumGroupSize,
		}, nil
	}

	return &Response{
		Available:        true,
		AvailableSlots:   availableSlots,
		MinimumGroupSize: minimumGroupSize,
	}, nil
}

// cutoffReason текст отказа по окну бронирования
func cutoffReason() string {
	return fmt.Sprintf("booking closed: less than %d hours before departure", domain.CutoffHours)
}

// minimumReason текст отказа по минимальному размеру группы.
// Маркирует бронирование как private / first / subsequent - UI использует
// эти формулировки напрямую.
func minimumReason(pkg *domain.Package, slot *domain.SlotRecord, minimum int) string {
	switch {
	case pkg.IsPrivate:
		return fmt.Sprintf("this is a private %s: minimum %d persons per booking", pkg.Type, minimum)
	case slot.IsEmpty():
		return fmt.Sprintf("minimum %d persons for the first booking of this departure", minimum)
	default:
		return fmt.Sprintf("minimum %d persons per booking", minimum)
	}
}
