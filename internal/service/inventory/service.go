package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	"github.com/m04kA/TMS-InventoryService/internal/service/inventory/models"
	"github.com/m04kA/TMS-InventoryService/pkg/civiltime"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// Service сервис управления инвентарем слотов: генерация скользящего
// горизонта, пересборка при изменении пакета, сводки и ручное управление
// доступностью. Занятость слотов сервис не трогает - это зона
// ответственности леджера (usecase/update_occupancy).
type Service struct {
	sheetRepo    SheetRepository
	genStateRepo GenStateRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса инвентаря
func NewService(
	sheetRepo SheetRepository,
	genStateRepo GenStateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		sheetRepo:    sheetRepo,
		genStateRepo: genStateRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// EnsureHorizon материализует листы инвентаря пакета на каждый день
// скользящего горизонта (завтра .. today+HorizonDays), не трогая уже
// существующие даты. Повторный вызов без изменений - no-op.
// Возвращает количество созданных листов.
func (s *Service) EnsureHorizon(ctx context.Context, pkg *domain.Package) (int, error) {
	now := s.timeProvider.Now()
	today := civiltime.DateOf(now)

	s.logger.Info("EnsureHorizon: package=%s/%d, today=%s, horizon=%d days",
		pkg.Type, pkg.ID, today, domain.HorizonDays)

	if len(pkg.DepartureTimes) == 0 {
		s.logger.Warn("EnsureHorizon: package=%s/%d has no departure times, nothing to generate", pkg.Type, pkg.ID)
		return 0, nil
	}

	existingDates, err := s.sheetRepo.ListDates(ctx, pkg.Type, pkg.ID, today)
	if err != nil {
		return 0, fmt.Errorf("%w: EnsureHorizon - list existing dates: %v", ErrInternal, err)
	}

	existing := make(map[string]struct{}, len(existingDates))
	for _, d := range existingDates {
		existing[d] = struct{}{}
	}

	created := 0
	for i := 1; i <= domain.HorizonDays; i++ {
		date, err := civiltime.AddDays(today, i)
		if err != nil {
			return created, fmt.Errorf("%w: EnsureHorizon - compute date: %v", ErrInternal, err)
		}

		if _, ok := existing[date]; ok {
			continue
		}

		if _, err := s.sheetRepo.CreateNew(ctx, domain.NewDaySlotSheet(pkg, date)); err != nil {
			// Конкурентный генератор успел создать этот день раньше нас -
			// дата материализована, идем дальше
			if errors.Is(err, sheetRepo.ErrSheetExists) {
				continue
			}
			return created, fmt.Errorf("%w: EnsureHorizon - create sheet for %s: %v", ErrInternal, date, err)
		}
		created++
	}

	if err := s.genStateRepo.Touch(ctx, pkg.Ref(), now); err != nil {
		// Отметка генерации не критична для инвентаря: горизонт уже
		// материализован, сопровождение просто придет к пакету еще раз
		s.logger.Warn("EnsureHorizon: failed to touch generation state for package=%s/%d: %v",
			pkg.Type, pkg.ID, err)
	}

	s.logger.Info("EnsureHorizon: package=%s/%d, created %d new sheets", pkg.Type, pkg.ID, created)
	return created, nil
}

// Resize пересобирает слоты всех будущих листов пакета под новое расписание
// отправлений и новую вместимость, затем дозаполняет горизонт.
//
// Для каждого будущего листа: слоты времен, оставшихся в расписании и уже
// несущих бронирования, сохраняют занятость (обрезанную до новой
// вместимости); у непривилегированных пакетов такой слот остается
// "разблокированным" (минимум 1). Слоты времен, исключенных из расписания,
// удаляются вместе с занятостью - компенсация затронутых бронирований
// лежит на подсистеме бронирований.
//
// Операция не атомарна по всему диапазону: каждый лист обновляется в своей
// транзакции, частичное выполнение устраняется повторным запуском.
func (s *Service) Resize(ctx context.Context, pkg *domain.Package, newTimes []timeofday.TimeOfDay, newCapacity int) (int, error) {
	if newCapacity < domain.MinCapacityPerSlot || newCapacity > domain.MaxCapacityPerSlot {
		return 0, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	now := s.timeProvider.Now()
	today := civiltime.DateOf(now)

	s.logger.Info("Resize: package=%s/%d, %d departure times, capacity=%d",
		pkg.Type, pkg.ID, len(newTimes), newCapacity)

	dates, err := s.sheetRepo.ListDates(ctx, pkg.Type, pkg.ID, today)
	if err != nil {
		return 0, fmt.Errorf("%w: Resize - list dates: %v", ErrInternal, err)
	}

	updated := 0
	failed := 0
	for _, date := range dates {
		key := domain.SlotKey{PackageType: pkg.Type, PackageID: pkg.ID, Date: date}

		err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			existing, err := s.sheetRepo.Get(txCtx, key)
			if err != nil {
				return err
			}
			return s.sheetRepo.ReplaceSlots(txCtx, key, newCapacity, rebuildSlots(existing, pkg, newTimes, newCapacity))
		})

		if err != nil {
			// Один неудачный день не блокирует остальные: resize
			// идемпотентен по каждому дню, повторный запуск докатит
			s.logger.Error("Resize: package=%s/%d, failed to rebuild sheet for %s: %v",
				pkg.Type, pkg.ID, date, err)
			failed++
			continue
		}
		updated++
	}

	// Переопределение расписания могло расширить горизонт - дозаполняем
	resized := *pkg
	resized.DepartureTimes = newTimes
	resized.CapacityPerSlot = newCapacity
	if _, err := s.EnsureHorizon(ctx, &resized); err != nil {
		s.logger.Error("Resize: package=%s/%d, horizon backfill failed: %v", pkg.Type, pkg.ID, err)
		failed++
	}

	if failed > 0 {
		return updated, fmt.Errorf("%w: %d of %d sheets failed, re-run to complete",
			ErrPartialResize, failed, len(dates))
	}

	s.logger.Info("Resize: package=%s/%d, rebuilt %d sheets", pkg.Type, pkg.ID, updated)
	return updated, nil
}

// rebuildSlots строит новый список слотов листа по новому расписанию
func rebuildSlots(existing *domain.DaySlotSheet, pkg *domain.Package, newTimes []timeofday.TimeOfDay, newCapacity int) []domain.SlotRecord {
	slots := make([]domain.SlotRecord, 0, len(newTimes))

	for _, t := range newTimes {
		prev := existing.FindSlot(t)

		if prev != nil && prev.BookedCount > 0 {
			booked := prev.BookedCount
			if booked > newCapacity {
				booked = newCapacity
			}

			// Правило "бронирование в процессе" сохраняется при resize:
			// непривилегированный слот с занятостью остается открытым для
			// групп от 1 человека
			minimumGroupSize := pkg.MinimumPersonDefault
			if !pkg.IsPrivate {
				minimumGroupSize = domain.MinimumGroupSizeFloor
			}

			slots = append(slots, domain.SlotRecord{
				Time:              t,
				Capacity:          newCapacity,
				BookedCount:       booked,
				MinimumGroupSize:  minimumGroupSize,
				ManuallyAvailable: prev.ManuallyAvailable,
			})
			continue
		}

		manuallyAvailable := true
		if prev != nil {
			manuallyAvailable = prev.ManuallyAvailable
		}

		slots = append(slots, domain.SlotRecord{
			Time:              t,
			Capacity:          newCapacity,
			BookedCount:       0,
			MinimumGroupSize:  pkg.MinimumPersonDefault,
			ManuallyAvailable: manuallyAvailable,
		})
	}

	return slots
}

// DeleteAll удаляет весь инвентарь пакета и состояние генерации.
// Вызывается при удалении пакета из каталога.
func (s *Service) DeleteAll(ctx context.Context, ref domain.PackageRef) (int64, error) {
	s.logger.Info("DeleteAll: package=%s/%d", ref.Type, ref.ID)

	deleted, err := s.sheetRepo.DeleteAll(ctx, ref.Type, ref.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - delete sheets: %v", ErrInternal, err)
	}

	if err := s.genStateRepo.Delete(ctx, ref); err != nil {
		s.logger.Warn("DeleteAll: failed to delete generation state for package=%s/%d: %v",
			ref.Type, ref.ID, err)
	}

	s.logger.Info("DeleteAll: package=%s/%d, removed %d sheets", ref.Type, ref.ID, deleted)
	return deleted, nil
}

// GetSummary возвращает агрегированную статистику по датам диапазона
// для админ-панели
func (s *Service) GetSummary(ctx context.Context, req *models.GetSummaryRequest) (*models.SummaryResponse, error) {
	if _, err := civiltime.ParseDate(req.FromDate); err != nil {
		return nil, fmt.Errorf("%w: invalid from date: %v", ErrInvalidRange, err)
	}
	to, err := civiltime.ParseDate(req.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date: %v", ErrInvalidRange, err)
	}
	from, _ := civiltime.ParseDate(req.FromDate)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to date is before from date", ErrInvalidRange)
	}

	sheets, err := s.sheetRepo.FindRange(ctx, req.PackageType, req.PackageID, req.FromDate, req.ToDate)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSummary - find range: %v", ErrInternal, err)
	}

	summaries := make([]domain.DateSummary, 0, len(sheets))
	for _, sh := range sheets {
		capacity := sh.TotalCapacity()
		booked := sh.TotalBooked()
		summaries = append(summaries, domain.DateSummary{
			Date:      sh.Date,
			Capacity:  capacity,
			Booked:    booked,
			Available: capacity - booked,
		})
	}

	s.logger.Info("GetSummary: package=%s/%d, %d days in [%s, %s]",
		req.PackageType, req.PackageID, len(summaries), req.FromDate, req.ToDate)

	return models.FromDomainSummaries(req.PackageType, req.PackageID, req.FromDate, req.ToDate, summaries), nil
}

// ToggleManualAvailability выставляет ручной флаг доступности слота.
// Не зависит от занятости: оператор может скрыть слот с активными
// бронированиями от новых продаж.
func (s *Service) ToggleManualAvailability(ctx context.Context, key domain.SlotKey, slotTime timeofday.TimeOfDay, available bool) (*domain.SlotRecord, error) {
	s.logger.Info("ToggleManualAvailability: package=%s/%d, date=%s, time=%s, available=%t",
		key.PackageType, key.PackageID, key.Date, slotTime, available)

	var updated *domain.SlotRecord

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slot, err := s.sheetRepo.MutateSlot(txCtx, key, slotTime, func(slot *domain.SlotRecord) error {
			slot.ManuallyAvailable = available
			return nil
		})
		if err != nil {
			return err
		}
		updated = slot
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, sheetRepo.ErrSheetNotFound):
			return nil, ErrSheetNotFound
		case errors.Is(err, sheetRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		default:
			return nil, fmt.Errorf("%w: ToggleManualAvailability - mutate slot: %v", ErrInternal, err)
		}
	}

	return updated, nil
}
