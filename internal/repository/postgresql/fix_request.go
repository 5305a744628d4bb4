package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

type FixRequestRepository struct {
	db *database.DB
}

func NewFixRequestRepository(db *database.DB) fixrequest.Repository {
	return &FixRequestRepository{db: db}
}

func (r *FixRequestRepository) Create(ctx context.Context, request fixrequest.FixRequest) (fixrequest.FixRequest, error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	query := `
		INSERT INTO attendance_fix_requests
			(id, employee_id, date, request_type, requested_check_in, requested_check_out,
			 requested_breaks, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		request.ID, request.EmployeeID, request.Date, request.RequestType,
		request.RequestedCheckIn, request.RequestedCheckOut,
		request.RequestedBreaks, request.Reason, request.Status,
	).Scan(&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fixrequest.FixRequest{}, fmt.Errorf("failed to create fix request: %w", err)
	}

	return request, nil
}

func (r *FixRequestRepository) GetByID(ctx context.Context, id string) (fixrequest.FixRequest, error) {
	query := `
		SELECT fr.id, fr.employee_id, fr.date, fr.request_type, fr.requested_check_in,
		       fr.requested_check_out, fr.requested_breaks, fr.reason, fr.status,
		       fr.attendance_record_id, fr.reviewed_by, fr.reviewed_at, fr.remarks,
		       fr.created_at, fr.updated_at,
		       e.full_name, sr.level
		FROM attendance_fix_requests fr
		JOIN employees e ON e.id = fr.employee_id
		LEFT JOIN users u ON u.id = e.user_id
		LEFT JOIN sub_roles sr ON sr.id = u.sub_role_id
		WHERE fr.id = $1`

	var request fixrequest.FixRequest
	err := GetQuerier(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&request.ID, &request.EmployeeID, &request.Date, &request.RequestType, &request.RequestedCheckIn,
		&request.RequestedCheckOut, &request.RequestedBreaks, &request.Reason, &request.Status,
		&request.AttendanceRecordID, &request.ReviewedBy, &request.ReviewedAt, &request.Remarks,
		&request.CreatedAt, &request.UpdatedAt,
		&request.EmployeeName, &request.RequesterLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fixrequest.FixRequest{}, fixrequest.ErrFixRequestNotFound
		}
		return fixrequest.FixRequest{}, fmt.Errorf("failed to get fix request: %w", err)
	}

	return request, nil
}

func (r *FixRequestRepository) Update(ctx context.Context, request fixrequest.FixRequest) (fixrequest.FixRequest, error) {
	query := `
		UPDATE attendance_fix_requests
		SET request_type = $2, requested_check_in = $3, requested_check_out = $4,
		    requested_breaks = $5, reason = $6, status = $7, attendance_record_id = $8,
		    reviewed_by = $9, reviewed_at = $10, remarks = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := GetQuerier(ctx, r.db).QueryRow(ctx, query,
		request.ID, request.RequestType, request.RequestedCheckIn, request.RequestedCheckOut,
		request.RequestedBreaks, request.Reason, request.Status, request.AttendanceRecordID,
		request.ReviewedBy, request.ReviewedAt, request.Remarks,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fixrequest.FixRequest{}, fixrequest.ErrFixRequestNotFound
		}
		return fixrequest.FixRequest{}, fmt.Errorf("failed to update fix request: %w", err)
	}

	return request, nil
}

func (r *FixRequestRepository) Delete(ctx context.Context, id string) error {
	tag, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM attendance_fix_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fix request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fixrequest.ErrFixRequestNotFound
	}

	return nil
}

func (r *FixRequestRepository) List(ctx context.Context, filter fixrequest.ListFilter) ([]fixrequest.FixRequest, int64, error) {
	conditions := []string{"1=1"}
	args := []any{}
	argIdx := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("fr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.MinRequesterLevel != nil {
		// Hierarchy row filter: only requests from strictly lower authority
		// (higher level number) than the caller are visible.
		conditions = append(conditions, fmt.Sprintf("sr.level > $%d", argIdx))
		args = append(args, *filter.MinRequesterLevel)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	fromClause := `
		FROM attendance_fix_requests fr
		JOIN employees e ON e.id = fr.employee_id
		LEFT JOIN users u ON u.id = e.user_id
		LEFT JOIN sub_roles sr ON sr.id = u.sub_role_id`

	countQuery := "SELECT COUNT(*) " + fromClause + " WHERE " + where

	var total int64
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fix requests: %w", err)
	}

	query := `
		SELECT fr.id, fr.employee_id, fr.date, fr.request_type, fr.requested_check_in,
		       fr.requested_check_out, fr.requested_breaks, fr.reason, fr.status,
		       fr.attendance_record_id, fr.reviewed_by, fr.reviewed_at, fr.remarks,
		       fr.created_at, fr.updated_at,
		       e.full_name, sr.level` +
		fromClause + `
		WHERE ` + where + fmt.Sprintf(`
		ORDER BY fr.created_at DESC
		LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fix requests: %w", err)
	}
	defer rows.Close()

	var requests []fixrequest.FixRequest
	for rows.Next() {
		var request fixrequest.FixRequest
		if err := rows.Scan(
			&request.ID, &request.EmployeeID, &request.Date, &request.RequestType, &request.RequestedCheckIn,
			&request.RequestedCheckOut, &request.RequestedBreaks, &request.Reason, &request.Status,
			&request.AttendanceRecordID, &request.ReviewedBy, &request.ReviewedAt, &request.Remarks,
			&request.CreatedAt, &request.UpdatedAt,
			&request.EmployeeName, &request.RequesterLevel,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan fix request: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate fix requests: %w", err)
	}

	return requests, total, nil
}
