package fixrequest

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type RequestType string

const (
	TypeCheckIn  RequestType = "check_in"
	TypeCheckOut RequestType = "check_out"
	TypeBoth     RequestType = "both"
)

// WantsCheckIn reports whether the request corrects the check-in time.
func (t RequestType) WantsCheckIn() bool {
	return t == TypeCheckIn || t == TypeBoth
}

// WantsCheckOut reports whether the request corrects the check-out time.
func (t RequestType) WantsCheckOut() bool {
	return t == TypeCheckOut || t == TypeBoth
}

// RequestedBreak is one break correction. Stored as JSONB on the request and
// copied verbatim onto the attendance record at approval time.
type RequestedBreak struct {
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	BreakTypeID *string    `json:"break_type_id,omitempty"`
}

// FixRequest is an employee-submitted correction to a day's attendance.
// It transitions once from pending to approved/rejected; edit may overwrite
// the status again afterwards.
type FixRequest struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	RequestType        RequestType
	RequestedCheckIn   *time.Time
	RequestedCheckOut  *time.Time
	RequestedBreaks    []RequestedBreak
	Reason             string
	Status             Status
	AttendanceRecordID *string
	ReviewedBy         *string
	ReviewedAt         *time.Time
	Remarks            *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joins
	EmployeeName   *string
	RequesterLevel *int
}
