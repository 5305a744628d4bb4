package notification

import "errors"

var (
	// ErrNotRunning is returned when Notify is called before the service
	// has been started or after it has been stopped.
	ErrNotRunning = errors.New("notification service is not running")
)
