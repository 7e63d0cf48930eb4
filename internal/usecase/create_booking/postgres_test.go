package create_booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/payment"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/logger"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/txmanager"
)

var slotColumns = []string{"id", "therapist_id", "start_ts", "end_ts", "is_booked", "created_at", "updated_at"}

// setupPostgres собирает use case поверх настоящих репозиториев и sqlmock
func setupPostgres(t *testing.T) (*UseCase, sqlmock.Sqlmock, *countingMetrics) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	m := newCountingMetrics()
	uc := NewUseCase(
		slotRepo.NewRepository(wrapped),
		bookingRepo.NewRepository(wrapped),
		paymentRepo.NewRepository(wrapped),
		txmanager.NewTransactionManager(wrapped),
		m,
		logger.NewNop(),
	)
	return uc, mock, m
}

func expectLockedFreeSlot(mock sqlmock.Sqlmock) {
	slotEnd := slotStart.Add(50 * time.Minute)
	mock.ExpectQuery(regexp.QuoteMeta("FROM availabilities WHERE id = $1 FOR UPDATE")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow("s1", "t1", slotStart, slotEnd, false, slotStart, slotStart))
}

func expectBookingInsert(mock sqlmock.Sqlmock) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (id,client_id,therapist_id,start_ts,end_ts,status,availability_id)")).
		WithArgs(sqlmock.AnyArg(), "c1", "t1", slotStart, slotStart.Add(50*time.Minute), "CONFIRMED", "s1")
}

func TestExecute_Postgres_PaymentFailureKeepsTransaction(t *testing.T) {
	uc, mock, m := setupPostgres(t)
	slotEnd := slotStart.Add(50 * time.Minute)

	mock.ExpectBegin()
	expectLockedFreeSlot(mock)
	expectBookingInsert(mock).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(slotStart, slotStart))
	mock.ExpectExec("^SAVEPOINT payment_record$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO payments").WillReturnError(errors.New(`relation "payments" does not exist`))
	mock.ExpectExec("^ROLLBACK TO SAVEPOINT payment_record$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE availabilities SET is_booked = $1, updated_at = NOW() WHERE id = $2 AND is_booked = $3")).
		WithArgs(true, "s1", false).
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow("s1", "t1", slotStart, slotEnd, true, slotStart, slotStart))
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "CONFIRMED", resp.Status)
	require.NotNil(t, resp.AvailabilityID)
	assert.Equal(t, "s1", *resp.AvailabilityID)
	assert.Equal(t, 1, m.paymentFailures)
	assert.Equal(t, 1, m.results["create:ok"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Postgres_LostReservationRace(t *testing.T) {
	uc, mock, m := setupPostgres(t)

	mock.ExpectBegin()
	expectLockedFreeSlot(mock)
	expectBookingInsert(mock).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(slotStart, slotStart))
	mock.ExpectExec("^SAVEPOINT payment_record$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("^RELEASE SAVEPOINT payment_record$").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("UPDATE availabilities SET is_booked").
		WithArgs(true, "s1", false).
		WillReturnRows(sqlmock.NewRows(slotColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM availabilities WHERE id = $1")).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.Equal(t, 1, m.results["create:SLOT_ALREADY_BOOKED"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Postgres_ActiveWindowTaken(t *testing.T) {
	uc, mock, _ := setupPostgres(t)

	mock.ExpectBegin()
	expectLockedFreeSlot(mock)
	expectBookingInsert(mock).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_window_uniq"})
	mock.ExpectRollback()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
