package attendance

import (
	"context"
	"time"
)

// RecordRepository defines data access for attendance records.
type RecordRepository interface {
	// Create inserts a new record. A duplicate (employee_id, date) pair is
	// rejected by the store's unique constraint and surfaces as
	// ErrAlreadyCheckedIn, so callers need no read-before-write check.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by id
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for a work day, nil if none
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update persists clock_in, clock_out, net_working_minutes and status
	Update(ctx context.Context, record Record) error

	// Delete removes a record and its breaks
	Delete(ctx context.Context, id string) error

	// ListOpenForDate retrieves records for the given work day with no
	// clock_out yet, excluding those already carrying excludeStatus.
	ListOpenForDate(ctx context.Context, date time.Time, excludeStatus Status) ([]Record, error)
}

// BreakRepository defines data access for breaks.
type BreakRepository interface {
	// Create inserts a break. A second open break on the same record is
	// rejected by the store's partial unique index and surfaces as
	// ErrBreakAlreadyOpen.
	Create(ctx context.Context, brk Break) (Break, error)

	// GetOpenByRecord retrieves the open break on a record, nil if none
	GetOpenByRecord(ctx context.Context, recordID string) (*Break, error)

	// Close stamps break_end on an open break
	Close(ctx context.Context, breakID string, end time.Time) error

	// ListClosedByRecord retrieves all closed breaks on a record
	ListClosedByRecord(ctx context.Context, recordID string) ([]Break, error)

	// ReplaceForRecord deletes all breaks on a record and inserts the given
	// ones verbatim. Used when an approved fix request rewrites break history.
	ReplaceForRecord(ctx context.Context, recordID string, breaks []Break) error
}

type BreakTypeRepository interface {
	GetByName(ctx context.Context, name string) (BreakType, error)
	ListNames(ctx context.Context) ([]string, error)
}
