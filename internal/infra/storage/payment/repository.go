package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/psqlbuilder"
)

const savepointName = "payment_record"

// Repository записывает платежи, привязанные к бронированиям
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record вставляет запись о платеже.
// Внутри транзакции вставка обернута в SAVEPOINT: после ошибки PostgreSQL
// помечает всю транзакцию как прерванную, а откат к savepoint возвращает её
// в рабочее состояние, так что бронирование может продолжиться.
func (r *Repository) Record(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("payments").
		Columns("id", "booking_id", "amount", "currency", "status", "reference").
		Values(p.ID, p.BookingID, p.Amount, p.Currency, p.Status, p.Reference).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	if !dbmetrics.IsInTransaction(ctx) {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
		}
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SAVEPOINT "+savepointName); err != nil {
		return fmt.Errorf("%w: Record - create savepoint: %v", ErrSavepoint, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointName); rbErr != nil {
			return fmt.Errorf("%w: Record - rollback to savepoint after %v: %v", ErrSavepoint, err, rbErr)
		}
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT "+savepointName); err != nil {
		return fmt.Errorf("%w: Record - release savepoint: %v", ErrSavepoint, err)
	}

	return nil
}
