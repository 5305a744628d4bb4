package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type EmployeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `
		SELECT id, user_id, shift_id, department_id, sub_department_id, full_name, created_at, updated_at
		FROM employees
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	query := `
		SELECT id, user_id, shift_id, department_id, sub_department_id, full_name, created_at, updated_at
		FROM employees
		WHERE user_id = $1`

	return r.scanOne(ctx, query, userID)
}

func (r *EmployeeRepository) scanOne(ctx context.Context, query string, arg any) (employee.Employee, error) {
	var e employee.Employee
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&e.ID, &e.UserID, &e.ShiftID, &e.DepartmentID, &e.SubDepartmentID, &e.FullName,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}
