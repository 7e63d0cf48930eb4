package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/psqlbuilder"
)

const table = "availabilities"

var columns = []string{
	"id",
	"therapist_id",
	"start_ts",
	"end_ts",
	"is_booked",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов доступности терапевтов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения,
// поэтому конкурирующее бронирование того же слота ждет и видит уже обновленный is_booked.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// FindByTherapistAndWindow ищет слот терапевта с точно совпадающим окном [start, end).
// Если таких слотов несколько, занятые идут раньше свободных, затем по id.
func (r *Repository) FindByTherapistAndWindow(ctx context.Context, therapistID string, start, end time.Time) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"therapist_id": therapistID,
			"start_ts":     start,
			"end_ts":       end,
		}).
		OrderBy("is_booked DESC", "id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTherapistAndWindow - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTherapistAndWindow - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// SetBooked меняет флаг is_booked, только если текущее значение противоположно.
// Если строка не обновлена: ErrSlotNotFound при отсутствии слота, иначе ErrSlotStateConflict.
func (r *Repository) SetBooked(ctx context.Context, id string, booked bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", booked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_booked": !booked}).
		Suffix("RETURNING id, therapist_id, start_ts, end_ts, is_booked, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetBooked - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		exists, existsErr := r.exists(ctx, executor, id)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, ErrSlotNotFound
		}
		return nil, ErrSlotStateConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetBooked - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// ListFree возвращает свободные слоты терапевта, отсортированные по времени начала
func (r *Repository) ListFree(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"therapist_id": filter.TherapistID, "is_booked": false})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_ts": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"end_ts": *filter.To})
	}

	query, args, err := selectBuilder.OrderBy("start_ts ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFree - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListFree - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFree - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id string) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.TherapistID,
		&slot.StartTs,
		&slot.EndTs,
		&slot.IsBooked,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
