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

type BreakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &BreakRepository{db: db}
}

func (r *BreakRepository) Create(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	if brk.ID == "" {
		brk.ID = uuid.New().String()
	}

	query := `
		INSERT INTO breaks (id, attendance_record_id, break_type_id, break_start, break_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		brk.ID, brk.AttendanceRecordID, brk.BreakTypeID, brk.BreakStart, brk.BreakEnd,
	).Scan(&brk.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "breaks_one_open_per_record_idx") {
			return attendance.Break{}, attendance.ErrBreakAlreadyOpen
		}
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}

	return brk, nil
}

func (r *BreakRepository) GetOpenByRecord(ctx context.Context, recordID string) (*attendance.Break, error) {
	query := `
		SELECT id, attendance_record_id, break_type_id, break_start, break_end, created_at
		FROM breaks
		WHERE attendance_record_id = $1 AND break_end IS NULL`

	var brk attendance.Break
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, recordID).Scan(
		&brk.ID, &brk.AttendanceRecordID, &brk.BreakTypeID, &brk.BreakStart, &brk.BreakEnd, &brk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

func (r *BreakRepository) Close(ctx context.Context, breakID string, end time.Time) error {
	query := `UPDATE breaks SET break_end = $2 WHERE id = $1 AND break_end IS NULL`

	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query, breakID, end)
	if err != nil {
		return fmt.Errorf("failed to close break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenBreak
	}

	return nil
}

func (r *BreakRepository) ListClosedByRecord(ctx context.Context, recordID string) ([]attendance.Break, error) {
	query := `
		SELECT id, attendance_record_id, break_type_id, break_start, break_end, created_at
		FROM breaks
		WHERE attendance_record_id = $1 AND break_end IS NOT NULL
		ORDER BY break_start`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var brk attendance.Break
		if err := rows.Scan(
			&brk.ID, &brk.AttendanceRecordID, &brk.BreakTypeID, &brk.BreakStart, &brk.BreakEnd, &brk.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}

	return breaks, nil
}

func (r *BreakRepository) ReplaceForRecord(ctx context.Context, recordID string, breaks []attendance.Break) error {
	querier := GetQuerier(ctx, r.db)

	if _, err := querier.Exec(ctx, `DELETE FROM breaks WHERE attendance_record_id = $1`, recordID); err != nil {
		return fmt.Errorf("failed to clear breaks: %w", err)
	}

	query := `
		INSERT INTO breaks (id, attendance_record_id, break_type_id, break_start, break_end)
		VALUES ($1, $2, $3, $4, $5)`

	for _, brk := range breaks {
		if brk.ID == "" {
			brk.ID = uuid.New().String()
		}
		if _, err := querier.Exec(ctx, query,
			brk.ID, recordID, brk.BreakTypeID, brk.BreakStart, brk.BreakEnd,
		); err != nil {
			return fmt.Errorf("failed to insert break: %w", err)
		}
	}

	return nil
}
