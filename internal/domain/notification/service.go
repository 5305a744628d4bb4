package notification

import "context"

// Service is the notification collaborator. Dispatch is asynchronous and
// must never block or fail the operation that triggered it; callers log
// the returned error and move on.
type Service interface {
	// Notify resolves the scope to recipients and queues one notice each
	Notify(ctx context.Context, req NotifyRequest) error

	// List retrieves paginated notifications for a user
	List(ctx context.Context, userID string, page, pageSize int) (*ListResponse, error)

	// Stop flushes the queue and stops background workers
	Stop()
}
