package user

import "context"

// Repository defines data access for users and their hierarchy metadata.
type Repository interface {
	// GetByID retrieves a user with the sub-role level joined in
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmployeeID retrieves the user account linked to an employee
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)

	// Notification audience queries. Each returns user ids.
	GetDepartmentManagerIDs(ctx context.Context, departmentID string) ([]string, error)
	GetSubDepartmentLeadIDs(ctx context.Context, subDepartmentID string) ([]string, error)
	GetHRDirectorIDs(ctx context.Context) ([]string, error)
}
