package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type BreakTypeRepository struct {
	db *database.DB
}

func NewBreakTypeRepository(db *database.DB) attendance.BreakTypeRepository {
	return &BreakTypeRepository{db: db}
}

func (r *BreakTypeRepository) GetByName(ctx context.Context, name string) (attendance.BreakType, error) {
	query := `SELECT id, name FROM break_types WHERE name = $1`

	var bt attendance.BreakType
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, name).Scan(&bt.ID, &bt.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakType{}, attendance.ErrBreakTypeNotFound
		}
		return attendance.BreakType{}, fmt.Errorf("failed to get break type: %w", err)
	}

	return bt, nil
}

func (r *BreakTypeRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, `SELECT name FROM break_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list break types: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan break type: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate break types: %w", err)
	}

	return names, nil
}
