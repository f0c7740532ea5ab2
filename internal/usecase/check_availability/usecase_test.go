package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	sheetRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/sheet"
	catalogClient "github.com/m04kA/TMS-InventoryService/internal/integrations/catalogservice"
	"github.com/m04kA/TMS-InventoryService/pkg/civiltime"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

type fakeSheetRepo struct {
	sheets map[domain.SlotKey]*domain.DaySlotSheet
}

func (f *fakeSheetRepo) Get(_ context.Context, key domain.SlotKey) (*domain.DaySlotSheet, error) {
	sheet, ok := f.sheets[key]
	if !ok {
		return nil, sheetRepo.ErrSheetNotFound
	}
	return sheet, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testPackage() *domain.Package {
	return &domain.Package{
		Type:                 domain.PackageTypeTour,
		ID:                   42,
		Name:                 "Batu Caves Day Trip",
		DepartureTimes:       []timeofday.TimeOfDay{timeofday.MustParse("09:00"), timeofday.MustParse("14:00")},
		CapacityPerSlot:      10,
		MinimumPersonDefault: 4,
		IsPrivate:            false,
		IsActive:             true,
	}
}

func newFixture(t *testing.T, pkg *domain.Package, date string, slots []domain.SlotRecord) *UseCase {
	t.Helper()

	sheet := &domain.DaySlotSheet{
		PackageType: pkg.Type,
		PackageID:   pkg.ID,
		Date:        date,
		Capacity:    pkg.CapacityPerSlot,
		Slots:       slots,
	}

	repo := &fakeSheetRepo{sheets: map[domain.SlotKey]*domain.DaySlotSheet{sheet.Key(): sheet}}
	catalog := &fakeCatalog{packages: map[domain.PackageRef]*domain.Package{pkg.Ref(): pkg}}

	return NewUseCase(repo, catalog, nopLogger{})
}

// at строит момент времени в гражданской таймзоне инвентаря
func at(t *testing.T, date, clock string) time.Time {
	t.Helper()
	instant, err := civiltime.Instant(date, timeofday.MustParse(clock))
	require.NoError(t, err)
	return instant
}

func TestExecute_Available(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
		{Time: timeofday.MustParse("14:00"), Capacity: 10, BookedCount: 3, MinimumGroupSize: 1, ManuallyAvailable: true},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("14:00"),
		Persons:     2,
		Now:         at(t, "2026-09-08", "12:00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 7, resp.AvailableSlots)
	assert.Equal(t, 1, resp.MinimumGroupSize)
	assert.Empty(t, resp.Reason)
}

func TestExecute_CutoffBoundary(t *testing.T) {
	// Отправление 2026-09-11 09:00: окно закрывается в 23:00 накануне,
	// то есть граница достижима из дня, когда бронирование еще разрешено
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-11", []domain.SlotRecord{
		{Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0, MinimumGroupSize: 4, ManuallyAvailable: true},
	})

	baseRequest := func(now time.Time) *Request {
		return &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   42,
			Date:        "2026-09-11",
			Time:        timeofday.MustParse("09:00"),
			Persons:     4,
			Now:         now,
		}
	}

	resp, err := uc.Execute(context.Background(), baseRequest(at(t, "2026-09-10", "23:00")))
	require.NoError(t, err)
	assert.False(t, resp.Available, "at the exact cutoff instant booking must be closed")
	assert.Contains(t, resp.Reason, "booking closed")

	resp, err = uc.Execute(context.Background(), baseRequest(at(t, "2026-09-10", "23:00").Add(-time.Second)))
	require.NoError(t, err)
	assert.True(t, resp.Available, "one second before the cutoff booking is still open")

	resp, err = uc.Execute(context.Background(), baseRequest(at(t, "2026-09-10", "23:00").Add(time.Second)))
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Contains(t, resp.Reason, "booking closed")
}

func TestExecute_SameDayRejected(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
		{Time: timeofday.MustParse("14:00"), Capacity: 10, BookedCount: 0, MinimumGroupSize: 4, ManuallyAvailable: true},
	})

	// 00:30 дня отправления: до часового cutoff еще далеко, но день тот же
	resp, err := uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("14:00"),
		Persons:     4,
		Now:         at(t, "2026-09-10", "00:30"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonSameDayClosed, resp.Reason)
}

func TestExecute_MinimumGroupSize(t *testing.T) {
	pkg := testPackage() // MinimumPersonDefault = 4

	t.Run("first booking below default minimum", func(t *testing.T) {
		uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
			{Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 0, MinimumGroupSize: 4, ManuallyAvailable: true},
		})

		resp, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   42,
			Date:        "2026-09-10",
			Time:        timeofday.MustParse("09:00"),
			Persons:     2,
			Now:         at(t, "2026-09-08", "12:00"),
		})

		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Equal(t, 4, resp.MinimumGroupSize)
		assert.Contains(t, resp.Reason, "first booking")
	})

	t.Run("after first booking minimum drops to one", func(t *testing.T) {
		uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
			{Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 4, MinimumGroupSize: 1, ManuallyAvailable: true},
		})

		resp, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   42,
			Date:        "2026-09-10",
			Time:        timeofday.MustParse("09:00"),
			Persons:     1,
			Now:         at(t, "2026-09-08", "12:00"),
		})

		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Equal(t, 1, resp.MinimumGroupSize)
	})

	t.Run("private package keeps its minimum", func(t *testing.T) {
		private := testPackage()
		private.ID = 77
		private.IsPrivate = true
		private.MinimumPersonDefault = 6

		uc := newFixture(t, private, "2026-09-10", []domain.SlotRecord{
			{Time: timeofday.MustParse("09:00"), Capacity: 10, BookedCount: 6, MinimumGroupSize: 6, ManuallyAvailable: true},
		})

		resp, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   77,
			Date:        "2026-09-10",
			Time:        timeofday.MustParse("09:00"),
			Persons:     2,
			Now:         at(t, "2026-09-08", "12:00"),
		})

		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Contains(t, resp.Reason, "private")
	})
}

func TestExecute_ManuallyClosed(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
		{Time: timeofday.MustParse("14:00"), Capacity: 10, BookedCount: 3, MinimumGroupSize: 1, ManuallyAvailable: false},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("14:00"),
		Persons:     2,
		Now:         at(t, "2026-09-08", "12:00"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonManuallyClosed, resp.Reason)
	assert.Equal(t, 7, resp.AvailableSlots)
}

func TestExecute_InsufficientCapacity(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
		{Time: timeofday.MustParse("14:00"), Capacity: 10, BookedCount: 9, MinimumGroupSize: 1, ManuallyAvailable: true},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("14:00"),
		Persons:     2,
		Now:         at(t, "2026-09-08", "12:00"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonInsufficientCapacity, resp.Reason)
	assert.Equal(t, 1, resp.AvailableSlots)
}

func TestExecute_NoInventoryAndUnknownTime(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", []domain.SlotRecord{
		{Time: timeofday.MustParse("14:00"), Capacity: 10, BookedCount: 0, MinimumGroupSize: 4, ManuallyAvailable: true},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-12-01", // за пределами сгенерированного горизонта
		Time:        timeofday.MustParse("14:00"),
		Persons:     2,
		Now:         at(t, "2026-09-08", "12:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonNoInventory, resp.Reason)

	resp, err = uc.Execute(context.Background(), &Request{
		PackageType: domain.PackageTypeTour,
		PackageID:   42,
		Date:        "2026-09-10",
		Time:        timeofday.MustParse("10:30"), // пакет не отправляется в это время
		Persons:     2,
		Now:         at(t, "2026-09-08", "12:00"),
	})
	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, ReasonTimeNotOffered, resp.Reason)
}

func TestExecute_Errors(t *testing.T) {
	pkg := testPackage()
	uc := newFixture(t, pkg, "2026-09-10", nil)

	t.Run("unknown package", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTransfer,
			PackageID:   999,
			Date:        "2026-09-10",
			Time:        timeofday.MustParse("14:00"),
			Persons:     2,
			Now:         at(t, "2026-09-08", "12:00"),
		})
		assert.ErrorIs(t, err, ErrPackageNotFound)
	})

	t.Run("invalid persons", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   42,
			Date:        "2026-09-10",
			Time:        timeofday.MustParse("14:00"),
			Persons:     0,
			Now:         at(t, "2026-09-08", "12:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PackageType: domain.PackageTypeTour,
			PackageID:   42,
			Date:        "10/09/2026",
			Time:        timeofday.MustParse("14:00"),
			Persons:     2,
			Now:         at(t, "2026-09-08", "12:00"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
