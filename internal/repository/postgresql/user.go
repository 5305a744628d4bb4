package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	query := `
		SELECT u.id, u.email, u.full_name, u.role, u.sub_role_id, u.created_at, u.updated_at,
		       sr.level
		FROM users u
		LEFT JOIN sub_roles sr ON sr.id = u.sub_role_id
		WHERE u.id = $1`

	var u user.User
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.SubRoleID, &u.CreatedAt, &u.UpdatedAt,
		&u.SubRoleLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	query := `
		SELECT u.id, u.email, u.full_name, u.role, u.sub_role_id, u.created_at, u.updated_at,
		       sr.level
		FROM users u
		JOIN employees e ON e.user_id = u.id
		LEFT JOIN sub_roles sr ON sr.id = u.sub_role_id
		WHERE e.id = $1`

	var u user.User
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, employeeID).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.SubRoleID, &u.CreatedAt, &u.UpdatedAt,
		&u.SubRoleLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by employee: %w", err)
	}

	return u, nil
}

func (r *UserRepository) GetDepartmentManagerIDs(ctx context.Context, departmentID string) ([]string, error) {
	query := `
		SELECT u.id
		FROM users u
		JOIN employees e ON e.user_id = u.id
		WHERE u.role = $1 AND e.department_id = $2`

	return r.queryIDs(ctx, query, user.RoleManager, departmentID)
}

func (r *UserRepository) GetSubDepartmentLeadIDs(ctx context.Context, subDepartmentID string) ([]string, error) {
	query := `
		SELECT u.id
		FROM users u
		JOIN employees e ON e.user_id = u.id
		WHERE u.role = $1 AND e.sub_department_id = $2`

	return r.queryIDs(ctx, query, user.RoleLead, subDepartmentID)
}

func (r *UserRepository) GetHRDirectorIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM users WHERE role = $1`

	return r.queryIDs(ctx, query, user.RoleHRDirector)
}

func (r *UserRepository) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return ids, nil
}
