package sheet

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/TMS-InventoryService/internal/domain"
	"github.com/m04kA/TMS-InventoryService/pkg/dbmetrics"
	"github.com/m04kA/TMS-InventoryService/pkg/psqlbuilder"
	"github.com/m04kA/TMS-InventoryService/pkg/timeofday"
)

// Код ошибки PostgreSQL: нарушение уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий листов инвентаря (day_slot_sheets).
//
// Весь инвентарь одной даты пакета хранится одной строкой с JSONB-массивом
// слотов. Это сознательное решение: атомарная мутация "один лист за раз"
// выражается блокировкой одной строки (SELECT ... FOR UPDATE), без
// многострочных транзакций. Платим за это более грубой гранулярностью
// конкуренции: два бронирования на разные времена одной даты сериализуются
// между собой.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листов инвентаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает лист инвентаря по ключу (тип пакета, пакет, дата).
// Внутри активной транзакции строка блокируется (FOR UPDATE) - это
// используется мутациями слотов для исключения потерянных обновлений.
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.DaySlotSheet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"package_type",
		"package_id",
		"sheet_date",
		"capacity",
		"slots",
		"created_at",
		"updated_at",
	).
		From("day_slot_sheets").
		Where(squirrel.Eq{
			"package_type": key.PackageType,
			"package_id":   key.PackageID,
			"sheet_date":   key.Date,
		})

	// Если используется транзакция, блокируем строку листа -
	// мутация занятости должна видеть актуальное значение
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	result, err := scanSheet(row)
	if err == sql.ErrNoRows {
		return nil, ErrSheetNotFound
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateNew создает новый лист инвентаря.
// Если лист на эту дату уже существует, возвращает ErrSheetExists -
// генератор трактует это как "дата уже материализована" (идемпотентность).
func (r *Repository) CreateNew(ctx context.Context, s *domain.DaySlotSheet) (*domain.DaySlotSheet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotsJSON, err := json.Marshal(s.Slots)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateNew - marshal slots: %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Insert("day_slot_sheets").
		Columns(
			"package_type",
			"package_id",
			"sheet_date",
			"capacity",
			"slots",
		).
		Values(
			s.PackageType,
			s.PackageID,
			s.Date,
			s.Capacity,
			slotsJSON,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateNew - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSheetExists
		}
		return nil, fmt.Errorf("%w: CreateNew - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// MutateSlot атомарно изменяет ровно один слот листа: читает лист под
// блокировкой, применяет mutator к слоту с указанным временем и записывает
// массив слотов обратно. Единственная точка мутации занятости и ручного
// флага доступности.
//
// Требует активной транзакции в контексте - без неё FOR UPDATE ничего не
// блокирует и конкурентные мутации теряют обновления друг друга.
func (r *Repository) MutateSlot(
	ctx context.Context,
	key domain.SlotKey,
	slotTime timeofday.TimeOfDay,
	mutator func(slot *domain.SlotRecord) error,
) (*domain.SlotRecord, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrNoTransaction
	}

	s, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	slot := s.FindSlot(slotTime)
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	if err := mutator(slot); err != nil {
		return nil, err
	}

	if err := r.writeSlots(ctx, s.ID, s.Capacity, s.Slots); err != nil {
		return nil, err
	}

	updated := *slot
	return &updated, nil
}

// ReplaceSlots заменяет весь список слотов листа (используется resize'ом).
// Требует активной транзакции по той же причине, что и MutateSlot.
func (r *Repository) ReplaceSlots(ctx context.Context, key domain.SlotKey, capacity int, slots []domain.SlotRecord) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrNoTransaction
	}

	s, err := r.Get(ctx, key)
	if err != nil {
		return err
	}

	return r.writeSlots(ctx, s.ID, capacity, slots)
}

// FindRange получает листы пакета в диапазоне дат [fromDate, toDate],
// отсортированные по дате
func (r *Repository) FindRange(ctx context.Context, packageType domain.PackageType, packageID int64, fromDate, toDate string) ([]*domain.DaySlotSheet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"package_type",
		"package_id",
		"sheet_date",
		"capacity",
		"slots",
		"created_at",
		"updated_at",
	).
		From("day_slot_sheets").
		Where(squirrel.Eq{
			"package_type": packageType,
			"package_id":   packageID,
		}).
		Where(squirrel.GtOrEq{"sheet_date": fromDate}).
		Where(squirrel.LtOrEq{"sheet_date": toDate}).
		OrderBy("sheet_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sheets := make([]*domain.DaySlotSheet, 0)
	for rows.Next() {
		s, err := scanSheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindRange - rows error: %v", ErrScanRow, err)
	}

	return sheets, nil
}

// ListDates возвращает даты (YYYY-MM-DD), для которых у пакета уже есть
// листы начиная с fromDate. Используется генератором, чтобы одной выборкой
// определить недостающие дни горизонта.
func (r *Repository) ListDates(ctx context.Context, packageType domain.PackageType, packageID int64, fromDate string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("sheet_date").
		From("day_slot_sheets").
		Where(squirrel.Eq{
			"package_type": packageType,
			"package_id":   packageID,
		}).
		Where(squirrel.GtOrEq{"sheet_date": fromDate}).
		OrderBy("sheet_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var date sql.NullTime
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("%w: ListDates - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, date.Time.Format(domain.DateFormat))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// DeleteAll удаляет все листы пакета. Вызывается при удалении пакета из каталога.
func (r *Repository) DeleteAll(ctx context.Context, packageType domain.PackageType, packageID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("day_slot_sheets").
		Where(squirrel.Eq{
			"package_type": packageType,
			"package_id":   packageID,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// writeSlots записывает массив слотов и вместимость листа
func (r *Repository) writeSlots(ctx context.Context, id int64, capacity int, slots []domain.SlotRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("%w: writeSlots - marshal slots: %v", ErrEncodeSlots, err)
	}

	query, args, err := psqlbuilder.Update("day_slot_sheets").
		Set("capacity", capacity).
		Set("slots", slotsJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: writeSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: writeSlots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: writeSlots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSheetNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSheet сканирует строку результата в лист инвентаря
func scanSheet(row rowScanner) (*domain.DaySlotSheet, error) {
	var s domain.DaySlotSheet
	var sheetDate sql.NullTime
	var slotsJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.PackageType,
		&s.PackageID,
		&sheetDate,
		&s.Capacity,
		&slotsJSON,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSheet - scan row: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(slotsJSON, &s.Slots); err != nil {
		return nil, fmt.Errorf("%w: scanSheet - unmarshal slots: %v", ErrEncodeSlots, err)
	}

	s.Date = sheetDate.Time.Format(domain.DateFormat)
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
