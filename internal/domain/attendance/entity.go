package attendance

import "time"

type Status string

const (
	StatusPresent      Status = "present"
	StatusAutoCheckout Status = "auto_checkout"
)

// Record is one attendance session. At most one record exists per
// (EmployeeID, Date); the store enforces it with a unique constraint.
// Date is the local work day, ClockIn/ClockOut are absolute UTC instants.
type Record struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	ShiftID           *string
	ClockIn           *time.Time
	ClockOut          *time.Time
	NetWorkingMinutes *int
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Join
	EmployeeName *string
}

// Break is a bounded interval inside a session, excluded from worked time.
// At most one break per record may be open (BreakEnd == nil) at a time.
type Break struct {
	ID                 string
	AttendanceRecordID string
	BreakTypeID        string
	BreakStart         time.Time
	BreakEnd           *time.Time
	CreatedAt          time.Time
}

type BreakType struct {
	ID   string
	Name string
}
