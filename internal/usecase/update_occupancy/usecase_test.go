package update_occupancy

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// fakeSheetRepo хранит листы в памяти; mu имитирует блокировку строки -
// мутации одного хранилища строго последовательны
type fakeSheetRepo struct {
	mu     sync.Mutex
	sheets map[domain.SlotKey]*domain.DaySlotSheet
}

func (f *fakeSheetRepo) MutateSlot(
	_ context.Context,
	key domain.SlotKey,
	slotTime timeofday.TimeOfDay,
	mutator func(slot *domain.SlotRecord) error,
) (*domain.SlotRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sheet, ok := f.sheets[key]
	if !ok {
		return nil, sheetRepo.ErrSheetNotFound
	}

	slot := sheet.FindSlot(slotTime)
	if slot == nil {
		return nil, sheetRepo.ErrSlotNotFound
	}

	if err := mutator(slot); err != nil {
		return nil, err
	}

	updated := *slot
	return &updated, nil
}

type fakeCatalog struct {
	packages map[domain.PackageRef]*domain.Package
}

func (f *fakeCatalog) GetPackage(_ context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error) {
	pkg, ok := f.packages[domain.PackageRef{Type: packageType, ID: packageID}]
	if !ok {
		return nil, catalogClient.ErrPackageNotFound
	}
	return pkg, nil
}

// passthroughTxManager выполняет fn без настоящей транзакции:
// последовательность мутаций обеспечивает мьютекс fakeSheetRepo
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOccupancyChange(string, string) {}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPackage() *domain.Package {
	return &domain.Package{
		Type:                 domain.PackageTypeTour,
		ID:                   42,
		Name:                 "Batu Caves Day Trip",
		DepartureTimes:       []timeofday.TimeOfDay{timeofday.MustParse("09:00")},
		CapacityPerSlot:      10,
		MinimumPersonDefault: 4,
		IsActive:             true,
	}
}

func newFixture(pkg *domain.Package, slot domain.SlotRecord) (*UseCase, *fakeSheetRepo) {
	sheet := &domain.DaySlotSheet{
		PackageType: pkg.Type,
		PackageID:   pkg.ID,
		Date:        "2026-09-10",
		Capacity:    pkg.CapacityPerSlot,
		Slots:       []domain.SlotRecord{slot},
	}

	repo := &fakeSheetRepo{sheets: map[domain.SlotKey]*domain.DaySlotSheet{sheet.Key(): sheet}}
	catalog := &fakeCatalog{packages: map[domain.PackageRef]*domain.Package{pkg.Ref(): pkg}}

	return NewUseCase(repo, catalog, passthroughTxManager{}, nopMetrics{}, nopLogger{}), repo
}

func baseRequest(direction domain.OccupancyDirection, persons int) *Request {
	return &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("09:00"),
		Persons:     persons,
		Direction:   direction,
	}
}

func TestExecute_AddToEmptySlot(t *testing.T) {
	pkg := testPackage()
	uc, _ := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
		MinimumGroupSize: 4, ManuallyAvailable: true,
	})

	resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 4))

	require.NoError(t, err)
	assert.Equal(t, 4, resp.BookedCount)
	assert.Equal(t, 6, resp.AvailableSlots)
	assert.Equal(t, 1, resp.MinimumGroupSize, "first booking must drop the minimum to one")
}

func TestExecute_RoundTripRestoresMinimum(t *testing.T) {
	pkg := testPackage()
	uc, _ := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
		MinimumGroupSize: 4, ManuallyAvailable: true,
	})

	resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MinimumGroupSize)

	resp, err = uc.Execute(context.Background(), baseRequest(domain.DirectionSubtract, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.BookedCount)
	assert.Equal(t, 4, resp.MinimumGroupSize, "releasing the last seat must restore the package default")
}

func TestExecute_PrivatePackageKeepsMinimum(t *testing.T) {
	pkg := testPackage()
	pkg.IsPrivate = true
	pkg.MinimumPersonDefault = 6

	uc, _ := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
		MinimumGroupSize: 6, ManuallyAvailable: true,
	})

	// Занятость не двигает минимум private пакета ни в одну сторону
	resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 6))
	require.NoError(t, err)
	assert.Equal(t, 6, resp.MinimumGroupSize)

	resp, err = uc.Execute(context.Background(), baseRequest(domain.DirectionSubtract, 6))
	require.NoError(t, err)
	assert.Equal(t, 6, resp.MinimumGroupSize)
}

func TestExecute_EmptiedSlotPicksUpFreshDefault(t *testing.T) {
	// Дефолт пакета читается в момент мутации: полная отмена возвращает
	// слоту актуальное значение, а не то, что было при бронировании
	t.Run("private package", func(t *testing.T) {
		pkg := testPackage()
		pkg.IsPrivate = true
		pkg.MinimumPersonDefault = 6

		uc, _ := newFixture(pkg, domain.SlotRecord{
			Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
			MinimumGroupSize: 6, ManuallyAvailable: true,
		})

		_, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 6))
		require.NoError(t, err)

		// Админ поднял минимум пакета, пока слот был занят
		pkg.MinimumPersonDefault = 8

		resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionSubtract, 6))
		require.NoError(t, err)
		assert.Equal(t, 0, resp.BookedCount)
		assert.Equal(t, 8, resp.MinimumGroupSize)
	})

	t.Run("non-private package", func(t *testing.T) {
		pkg := testPackage() // MinimumPersonDefault = 4

		uc, _ := newFixture(pkg, domain.SlotRecord{
			Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
			MinimumGroupSize: 4, ManuallyAvailable: true,
		})

		_, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 4))
		require.NoError(t, err)

		pkg.MinimumPersonDefault = 5

		resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionSubtract, 4))
		require.NoError(t, err)
		assert.Equal(t, 5, resp.MinimumGroupSize)
	})
}

func TestExecute_CapacityExceeded(t *testing.T) {
	pkg := testPackage()
	uc, repo := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 8,
		MinimumGroupSize: 1, ManuallyAvailable: true,
	})

	_, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 3))
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// Занятость не изменилась - частичных зачислений нет
	key := domain.SlotKey{PackageType: domain.PackageTypeTour, PackageID: 42, Date: "2026-09-10"}
	assert.Equal(t, 8, repo.sheets[key].Slots[0].BookedCount)
}

func TestExecute_SubtractFloorsAtZero(t *testing.T) {
	pkg := testPackage()
	uc, _ := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 2,
		MinimumGroupSize: 1, ManuallyAvailable: true,
	})

	resp, err := uc.Execute(context.Background(), baseRequest(domain.DirectionSubtract, 5))

	require.NoError(t, err)
	assert.Equal(t, 0, resp.BookedCount)
	assert.Equal(t, 4, resp.MinimumGroupSize)
}

func TestExecute_ConcurrentAddsNeverOversell(t *testing.T) {
	const workers = 25
	const capacity = 10

	pkg := testPackage()
	uc, repo := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: capacity, BookedCount: 0,
		MinimumGroupSize: 1, ManuallyAvailable: true,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), baseRequest(domain.DirectionAdd, 1))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			default:
				require.ErrorIs(t, err, ErrCapacityExceeded)
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, workers-capacity, rejected)

	key := domain.SlotKey{PackageType: domain.PackageTypeTour, PackageID: 42, Date: "2026-09-10"}
	assert.Equal(t, capacity, repo.sheets[key].Slots[0].BookedCount)
}

func TestExecute_NotFoundAndValidation(t *testing.T) {
	pkg := testPackage()
	uc, _ := newFixture(pkg, domain.SlotRecord{
		Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0,
		MinimumGroupSize: 4, ManuallyAvailable: true,
	})

	t.Run("unknown package", func(t *testing.T) {
		req := baseRequest(domain.DirectionAdd, 1)
		req.PackageID = 999
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("unknown date", func(t *testing.T) {
		req := baseRequest(domain.DirectionAdd, 1)
		req.Date = "2026-12-31"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("time not offered", func(t *testing.T) {
		req := baseRequest(domain.DirectionAdd, 1)
		req.Time = timeofday.MustParse("13:30")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("bad direction", func(t *testing.T) {
		req := baseRequest("sideways", 1)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("zero persons", func(t *testing.T) {
		req := baseRequest(domain.DirectionAdd, 0)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
