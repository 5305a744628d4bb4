package employee

import "context"

type Repository interface {
	// GetByID retrieves an employee by id
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUserID retrieves the employee linked to a user account
	GetByUserID(ctx context.Context, userID string) (Employee, error)
}
