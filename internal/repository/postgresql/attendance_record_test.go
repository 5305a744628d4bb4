package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

func newMockDB(t *testing.T) (pgxmock.PgxPoolIface, *database.DB) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, database.NewWithPool(mock)
}

func TestAttendanceRecordCreate_DuplicateDayTranslatesToConflict(t *testing.T) {
	t.Parallel()

	mock, db := newMockDB(t)
	repo := NewAttendanceRecordRepository(db)

	mock.ExpectQuery("INSERT INTO attendance_records").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "attendance_records_employee_id_date_key",
		})

	now := time.Now().UTC()
	_, err := repo.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       now.Truncate(24 * time.Hour),
		ClockIn:    &now,
		Status:     attendance.StatusPresent,
	})

	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRecordGetByEmployeeAndDate_NoRowsIsNil(t *testing.T) {
	t.Parallel()

	mock, db := newMockDB(t)
	repo := NewAttendanceRecordRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM attendance_records").
		WithArgs("emp-1", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	record, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, record)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRecordUpdate_MissingRowIsNotFound(t *testing.T) {
	t.Parallel()

	mock, db := newMockDB(t)
	repo := NewAttendanceRecordRepository(db)

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs("rec-missing", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), attendance.Record{ID: "rec-missing"})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakCreate_SecondOpenBreakTranslatesToConflict(t *testing.T) {
	t.Parallel()

	mock, db := newMockDB(t)
	repo := NewBreakRepository(db)

	mock.ExpectQuery("INSERT INTO breaks").
		WithArgs(pgxmock.AnyArg(), "rec-1", "bt-lunch", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "breaks_one_open_per_record_idx",
		})

	_, err := repo.Create(context.Background(), attendance.Break{
		AttendanceRecordID: "rec-1",
		BreakTypeID:        "bt-lunch",
		BreakStart:         time.Now().UTC(),
	})

	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	t.Parallel()

	mock, db := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	failure := assert.AnError
	err := WithTransaction(context.Background(), db, func(ctx context.Context) error {
		return failure
	})

	assert.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}
