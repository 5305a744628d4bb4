package fixrequest

import "context"

// ApprovalGate decides whether a reviewer may decide a fix request.
type ApprovalGate interface {
	// CanApprove is true for the top-level administrative role, otherwise
	// only when the reviewer's sub-role level strictly outranks the
	// requester's. Missing sub-role on a non-admin reviewer denies.
	CanApprove(ctx context.Context, reviewerID string, request FixRequest) (bool, error)
}

// Service defines the fix request workflow. The acting user is taken from
// the authenticated identity in the context.
type Service interface {
	// Submit files a pending fix request for the authenticated employee
	Submit(ctx context.Context, req SubmitRequest) (FixRequestResponse, error)

	// List retrieves fix requests visible to the authenticated reviewer
	List(ctx context.Context, filter ListFilter) (ListResponse, error)

	// Get retrieves a single fix request by id
	Get(ctx context.Context, id string) (FixRequestResponse, error)

	// Decide approves or rejects a pending fix request
	Decide(ctx context.Context, id string, req DecideRequest) (FixRequestResponse, error)

	// Edit overwrites mutable fields; reversing an approval deletes the
	// linked attendance record
	Edit(ctx context.Context, id string, req EditRequest) (FixRequestResponse, error)

	// Delete removes the fix request and its linked attendance record
	Delete(ctx context.Context, id string) error
}
