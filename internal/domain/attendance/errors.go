package attendance

import "errors"

// Attendance domain errors
var (
	// Clock session errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Break errors
	ErrBreakAlreadyOpen  = errors.New("a break is already in progress")
	ErrNoOpenBreak       = errors.New("no break is currently in progress")
	ErrBreakTypeNotFound = errors.New("break type not found")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
