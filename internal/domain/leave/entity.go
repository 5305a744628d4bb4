package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// Request is a leave request. StartDate/EndDate are calendar days; an
// approved request covers [StartDate 00:00, EndDate 23:59:59.999...].
type Request struct {
	ID         string
	EmployeeID string
	Status     RequestStatus
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
