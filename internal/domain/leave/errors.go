package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrEmployeeOnLeave      = errors.New("an approved leave covers this date")
)
