package fixrequest

import "context"

type Repository interface {
	// Create inserts a new fix request
	Create(ctx context.Context, request FixRequest) (FixRequest, error)

	// GetByID retrieves a fix request with requester joins
	GetByID(ctx context.Context, id string) (FixRequest, error)

	// Update persists the mutable fields and returns the request with its
	// refreshed updated_at
	Update(ctx context.Context, request FixRequest) (FixRequest, error)

	// Delete removes a fix request
	Delete(ctx context.Context, id string) error

	// List retrieves fix requests with hierarchy row filtering and pagination
	List(ctx context.Context, filter ListFilter) ([]FixRequest, int64, error)
}
