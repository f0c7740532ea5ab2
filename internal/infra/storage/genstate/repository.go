package genstate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/TMS-InventoryService/pkg/psqlbuilder"
)

// Repository хранит отметку последней генерации слотов по каждому пакету.
// Обслуживает дешевый запрос "кому нужна генерация" для фонового
// сопровождения горизонта.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория состояния генерации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Touch фиксирует факт генерации слотов пакета в момент at (upsert)
func (r *Repository) Touch(ctx context.Context, ref domain.PackageRef, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_generation_state").
		Columns("package_type", "package_id", "last_generated_at").
		Values(ref.Type, ref.ID, at).
		Suffix("ON CONFLICT (package_type, package_id) DO UPDATE SET last_generated_at = EXCLUDED.last_generated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Touch - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Touch - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Get возвращает момент последней генерации слотов пакета.
// ErrStateNotFound означает, что слоты пакета ещё ни разу не генерировались.
func (r *Repository) Get(ctx context.Context, ref domain.PackageRef) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("last_generated_at").
		From("slot_generation_state").
		Where(squirrel.Eq{
			"package_type": ref.Type,
			"package_id":   ref.ID,
		}).
		ToSql()

	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var lastGeneratedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&lastGeneratedAt)

	if err == sql.ErrNoRows {
		return time.Time{}, ErrStateNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Get - scan state: %v", ErrScanRow, err)
	}

	return lastGeneratedAt, nil
}

// Delete удаляет состояние генерации пакета (каскад при удалении пакета)
func (r *Repository) Delete(ctx context.Context, ref domain.PackageRef) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_generation_state").
		Where(squirrel.Eq{
			"package_type": ref.Type,
			"package_id":   ref.ID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
