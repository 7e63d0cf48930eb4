package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func testPayment() *domain.Payment {
	return &domain.Payment{
		BookingID: "b-1",
		Amount:    120,
		Currency:  "EUR",
		Status:    domain.PaymentStatusPaid,
		Reference: ptr.Ptr("pi_123"),
	}
}

func inTx(t *testing.T, db *dbmetrics.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	return dbmetrics.WithTx(context.Background(), tx)
}

func TestRecord_Savepoint(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := inTx(t, db, mock)

	mock.ExpectExec("SAVEPOINT payment_record").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments (id,booking_id,amount,currency,status,reference) VALUES ($1,$2,$3,$4,$5,$6)")).
		WithArgs(sqlmock.AnyArg(), "b-1", 120.0, "EUR", "PAID", "pi_123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("RELEASE SAVEPOINT payment_record").WillReturnResult(sqlmock.NewResult(0, 0))

	p := testPayment()
	require.NoError(t, repo.Record(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_FailureRollsBackToSavepoint(t *testing.T) {
	repo, db, mock := newRepo(t)
	ctx := inTx(t, db, mock)

	mock.ExpectExec("SAVEPOINT payment_record").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO payments").WillReturnError(errors.New(`relation "payments" does not exist`))
	mock.ExpectExec("ROLLBACK TO SAVEPOINT payment_record").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Record(ctx, testPayment())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_WithoutTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Record(context.Background(), testPayment()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
