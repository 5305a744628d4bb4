package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type AttendanceRecordRepository struct {
	db *database.DB
}

func NewAttendanceRecordRepository(db *database.DB) attendance.RecordRepository {
	return &AttendanceRecordRepository{db: db}
}

func (r *AttendanceRecordRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_records (id, employee_id, date, shift_id, clock_in, clock_out, net_working_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.ShiftID,
		record.ClockIn, record.ClockOut, record.NetWorkingMinutes, record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "attendance_records_employee_id_date_key") {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

func (r *AttendanceRecordRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	query := `
		SELECT ar.id, ar.employee_id, ar.date, ar.shift_id, ar.clock_in, ar.clock_out,
		       ar.net_working_minutes, ar.status, ar.created_at, ar.updated_at,
		       e.full_name
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id
		WHERE ar.id = $1`

	var record attendance.Record
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.ShiftID,
		&record.ClockIn, &record.ClockOut, &record.NetWorkingMinutes, &record.Status,
		&record.CreatedAt, &record.UpdatedAt, &record.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return record, nil
}

func (r *AttendanceRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	query := `
		SELECT id, employee_id, date, shift_id, clock_in, clock_out,
		       net_working_minutes, status, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2`

	var record attendance.Record
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, employeeID, date).Scan(
		&record.ID, &record.EmployeeID, &record.Date, &record.ShiftID,
		&record.ClockIn, &record.ClockOut, &record.NetWorkingMinutes, &record.Status,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record by date: %w", err)
	}

	return &record, nil
}

func (r *AttendanceRecordRepository) Update(ctx context.Context, record attendance.Record) error {
	query := `
		UPDATE attendance_records
		SET clock_in = $2, clock_out = $3, net_working_minutes = $4, status = $5, updated_at = NOW()
		WHERE id = $1`

	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query,
		record.ID, record.ClockIn, record.ClockOut, record.NetWorkingMinutes, record.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func (r *AttendanceRecordRepository) Delete(ctx context.Context, id string) error {
	tag, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func (r *AttendanceRecordRepository) ListOpenForDate(ctx context.Context, date time.Time, excludeStatus attendance.Status) ([]attendance.Record, error) {
	query := `
		SELECT ar.id, ar.employee_id, ar.date, ar.shift_id, ar.clock_in, ar.clock_out,
		       ar.net_working_minutes, ar.status, ar.created_at, ar.updated_at,
		       e.full_name
		FROM attendance_records ar
		JOIN employees e ON e.id = ar.employee_id
		WHERE ar.date = $1 AND ar.clock_out IS NULL AND ar.status <> $2
		ORDER BY ar.clock_in`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, date, excludeStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var record attendance.Record
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.Date, &record.ShiftID,
			&record.ClockIn, &record.ClockOut, &record.NetWorkingMinutes, &record.Status,
			&record.CreatedAt, &record.UpdatedAt, &record.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
