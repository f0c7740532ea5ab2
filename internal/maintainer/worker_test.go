package maintainer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	genstateRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/genstate"
	"github.com/m04kA/TMS-InventoryService/pkg/civiltime"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

type fakeCatalog struct {
	refs     []domain.PackageRef
	packages map[domain.PackageRef]*domain.Package
	listErr  error
}

func (f *fakeCatalog) ListActivePackages(context.Context) ([]domain.PackageRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.refs, nil
}

func (f *fakeCatalog) GetPackage(_ context.Context, packageType domain.PackageType, packageID int64) (*domain.Package, error) {
	pkg, ok := f.packages[domain.PackageRef{Type: packageType, ID: packageID}]
	if !ok {
		return nil, errors.New("package not found")
	}
	return pkg, nil
}

type fakeInventory struct {
	ensured []domain.PackageRef
	err     map[domain.PackageRef]error
}

func (f *fakeInventory) EnsureHorizon(_ context.Context, pkg *domain.Package) (int, error) {
	if err := f.err[pkg.Ref()]; err != nil {
		return 0, err
	}
	f.ensured = append(f.ensured, pkg.Ref())
	return 3, nil
}

type fakeGenState struct {
	lastGenerated map[domain.PackageRef]time.Time
}

func (f *fakeGenState) Get(_ context.Context, ref domain.PackageRef) (time.Time, error) {
	at, ok := f.lastGenerated[ref]
	if !ok {
		return time.Time{}, genstateRepo.ErrStateNotFound
	}
	return at, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func pkgFor(ref domain.PackageRef) *domain.Package {
	return &domain.Package{
		Type:                 ref.Type,
		ID:                   ref.ID,
		DepartureTimes:       []timeofday.TimeOfDay{timeofday.MustParse("09:00")},
		CapacityPerSlot:      10,
		MinimumPersonDefault: 2,
		IsActive:             true,
	}
}

func TestRunOnce_ProcessesStalePackages(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, civiltime.Location())

	stale := domain.PackageRef{Type: domain.PackageTypeTour, ID: 1}
	fresh := domain.PackageRef{Type: domain.PackageTypeTransfer, ID: 2}
	unseen := domain.PackageRef{Type: domain.PackageTypeTour, ID: 3}

	catalog := &fakeCatalog{
		refs: []domain.PackageRef{stale, fresh, unseen},
		packages: map[domain.PackageRef]*domain.Package{
			stale:  pkgFor(stale),
			fresh:  pkgFor(fresh),
			unseen: pkgFor(unseen),
		},
	}
	inventory := &fakeInventory{err: map[domain.PackageRef]error{}}
	genState := &fakeGenState{lastGenerated: map[domain.PackageRef]time.Time{
		stale: now.Add(-26 * time.Hour), // вчера
		fresh: now.Add(-time.Hour),      // сегодня
	}}

	w := NewWorker(catalog, inventory, genState, time.Hour, 24*time.Hour, nopLogger{})
	w.timeProvider = fixedClock{now: now}

	w.RunOnce(context.Background())

	assert.ElementsMatch(t, []domain.PackageRef{stale, unseen}, inventory.ensured,
		"recently generated packages must be skipped; stale and never-generated must be processed")
}

func TestRunOnce_OneFailureDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, civiltime.Location())

	broken := domain.PackageRef{Type: domain.PackageTypeTour, ID: 1}
	healthy := domain.PackageRef{Type: domain.PackageTypeTour, ID: 2}

	catalog := &fakeCatalog{
		refs: []domain.PackageRef{broken, healthy},
		packages: map[domain.PackageRef]*domain.Package{
			broken:  pkgFor(broken),
			healthy: pkgFor(healthy),
		},
	}
	inventory := &fakeInventory{err: map[domain.PackageRef]error{
		broken: errors.New("storage unavailable"),
	}}
	genState := &fakeGenState{lastGenerated: map[domain.PackageRef]time.Time{}}

	w := NewWorker(catalog, inventory, genState, time.Hour, 24*time.Hour, nopLogger{})
	w.timeProvider = fixedClock{now: now}

	w.RunOnce(context.Background())

	assert.Equal(t, []domain.PackageRef{healthy}, inventory.ensured)
}

func TestRunOnce_CatalogUnavailable(t *testing.T) {
	catalog := &fakeCatalog{listErr: errors.New("catalog down")}
	inventory := &fakeInventory{}
	genState := &fakeGenState{lastGenerated: map[domain.PackageRef]time.Time{}}

	w := NewWorker(catalog, inventory, genState, time.Hour, 24*time.Hour, nopLogger{})
	w.timeProvider = fixedClock{now: time.Now()}

	w.RunOnce(context.Background())

	assert.Empty(t, inventory.ensured)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	catalog := &fakeCatalog{}
	inventory := &fakeInventory{}
	genState := &fakeGenState{lastGenerated: map[domain.PackageRef]time.Time{}}

	w := NewWorker(catalog, inventory, genState, 10*time.Millisecond, 24*time.Hour, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
