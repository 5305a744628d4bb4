package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type LeaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &LeaveRequestRepository{db: db}
}

func (r *LeaveRequestRepository) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, status, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.Status, request.StartDate, request.EndDate, request.Reason,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *LeaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	query := `
		SELECT id, employee_id, status, start_date, end_date, reason, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY created_at DESC`

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var request leave.Request
		if err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.Status, &request.StartDate, &request.EndDate,
			&request.Reason, &request.CreatedAt, &request.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

func (r *LeaveRequestRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, at time.Time) (bool, error) {
	// The calendar day is taken from at's own location so the session
	// timezone of the connection cannot shift it across midnight.
	day := at.Format("2006-01-02")

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			  AND status = $2
			  AND start_date <= $3::date
			  AND end_date >= $3::date
		)`

	var onLeave bool
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, employeeID, leave.RequestStatusApproved, day).Scan(&onLeave)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return onLeave, nil
}
