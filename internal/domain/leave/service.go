package leave

import (
	"context"
	"time"
)

// Guard answers leave-conflict questions for other components. Check-in and
// fix-request submission both consult it before mutating attendance.
type Guard interface {
	// IsOnLeave reports whether an approved leave covers the given instant
	IsOnLeave(ctx context.Context, employeeID string, at time.Time) (bool, error)
}

// Service defines the leave request operation surface.
type Service interface {
	Guard

	// Submit files a pending leave request for the authenticated employee
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// ListMine retrieves the authenticated employee's leave requests
	ListMine(ctx context.Context) ([]RequestResponse, error)
}
