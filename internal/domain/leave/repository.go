package leave

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts a new leave request
	Create(ctx context.Context, request Request) (Request, error)

	// ListByEmployee retrieves an employee's leave requests, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)

	// HasApprovedLeaveOn reports whether an approved request's
	// [start 00:00, end end-of-day] window contains the given instant.
	HasApprovedLeaveOn(ctx context.Context, employeeID string, at time.Time) (bool, error)
}
