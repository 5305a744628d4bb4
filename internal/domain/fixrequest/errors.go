package fixrequest

import "errors"

var (
	ErrFixRequestNotFound = errors.New("attendance fix request not found")
	ErrNotPending         = errors.New("fix request has already been decided")
	ErrApprovalNotAllowed = errors.New("you are not allowed to decide this fix request")
)
