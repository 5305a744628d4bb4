package attendance

import "context"

// Service defines business logic for clock sessions and breaks. The acting
// employee is taken from the authenticated identity in the context.
type Service interface {
	// CheckIn opens today's session for the authenticated employee
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes today's session and computes net working minutes
	CheckOut(ctx context.Context) (RecordResponse, error)

	// TodayStatus reports today's session and active break, if any
	TodayStatus(ctx context.Context) (TodayStatusResponse, error)

	// StartBreak opens a break on today's session
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	// EndBreak closes the open break on today's session
	EndBreak(ctx context.Context) (BreakResponse, error)
}
