package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/shift"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type ShiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	query := `
		SELECT id, name, start_time, end_time, created_at, updated_at
		FROM shifts
		WHERE id = $1`

	var s shift.Shift
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}
