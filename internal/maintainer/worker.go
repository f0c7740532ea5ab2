package maintainer

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	genstateRepo "github.com/m04kA/TMS-InventoryService/internal/infra/storage/genstate"
)

// Worker фоновое сопровождение скользящего горизонта: периодически обходит
// активные пакеты каталога и дозаполняет листы инвентаря так, чтобы у
// каждого пакета всегда были материализованы следующие HorizonDays дней.
//
// Проход идемпотентен: уже материализованные даты не трогаются, поэтому
// частые тики безопасны. Пакеты, сгенерированные менее freshFor назад,
// пропускаются - горизонт сдвигается примерно раз в сутки.
type Worker struct {
	catalog      CatalogClient
	inventory    InventoryService
	genStateRepo GenStateRepository
	interval     time.Duration
	freshFor     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewWorker создает новый экземпляр фонового сопровождения горизонта
func NewWorker(
	catalog CatalogClient,
	inventory InventoryService,
	genStateRepo GenStateRepository,
	interval time.Duration,
	freshFor time.Duration,
	logger Logger,
) *Worker {
	return &Worker{
		catalog:      catalog,
		inventory:    inventory,
		genStateRepo: genStateRepo,
		interval:     interval,
		freshFor:     freshFor,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Run запускает цикл сопровождения до отмены контекста.
// Первый проход выполняется сразу, не дожидаясь первого тика.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("Maintainer: started, interval=%s, freshFor=%s", w.interval, w.freshFor)

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Maintainer: stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход по активным пакетам каталога.
// Ошибка одного пакета не прерывает проход - остальные пакеты
// обрабатываются, проблемный догонит на следующем тике.
func (w *Worker) RunOnce(ctx context.Context) {
	refs, err := w.catalog.ListActivePackages(ctx)
	if err != nil {
		w.logger.Error("Maintainer: failed to list active packages: %v", err)
		return
	}

	now := w.timeProvider.Now()

	processed, skipped := 0, 0
	for _, ref := range refs {
		if ctx.Err() != nil {
			return
		}

		if w.isFresh(ctx, ref, now) {
			skipped++
			continue
		}

		pkg, err := w.catalog.GetPackage(ctx, ref.Type, ref.ID)
		if err != nil {
			w.logger.Error("Maintainer: failed to get package %s/%d: %v", ref.Type, ref.ID, err)
			continue
		}

		created, err := w.inventory.EnsureHorizon(ctx, pkg)
		if err != nil {
			w.logger.Error("Maintainer: horizon maintenance failed for package %s/%d: %v", ref.Type, ref.ID, err)
			continue
		}

		processed++
		if created > 0 {
			w.logger.Info("Maintainer: package %s/%d, created %d sheets", ref.Type, ref.ID, created)
		}
	}

	w.logger.Info("Maintainer: pass complete, %d packages processed, %d fresh", processed, skipped)
}

// isFresh проверяет, сдвигался ли горизонт пакета недавно
func (w *Worker) isFresh(ctx context.Context, ref domain.PackageRef, now time.Time) bool {
	lastGeneratedAt, err := w.genStateRepo.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, genstateRepo.ErrStateNotFound) {
			w.logger.Warn("Maintainer: package %s/%d has never been generated", ref.Type, ref.ID)
		} else {
			w.logger.Warn("Maintainer: failed to read generation state for %s/%d: %v", ref.Type, ref.ID, err)
		}
		return false
	}

	return now.Sub(lastGeneratedAt) < w.freshFor
}
