package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/jwt"
)

type LeaveService struct {
	leaveRepo       leave.Repository
	employeeRepo    employee.Repository
	notificationSvc notification.Service
	logger          *slog.Logger
	loc             *time.Location
}

func NewLeaveService(
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	notificationSvc notification.Service,
	logger *slog.Logger,
	loc *time.Location,
) *LeaveService {
	return &LeaveService{
		leaveRepo:       leaveRepo,
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
		loc:             loc,
	}
}

func (s *LeaveService) IsOnLeave(ctx context.Context, employeeID string, at time.Time) (bool, error) {
	return s.leaveRepo.HasApprovedLeaveOn(ctx, employeeID, at.In(s.loc))
}

func (s *LeaveService) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	start, _ := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	end, _ := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)

	created, err := s.leaveRepo.Create(ctx, leave.Request{
		EmployeeID: claims.EmployeeID,
		Status:     leave.RequestStatusPending,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifySubmitted(ctx, claims, created)

	return toResponse(created), nil
}

func (s *LeaveService) ListMine(ctx context.Context) ([]leave.RequestResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.ListByEmployee(ctx, claims.EmployeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toResponse(request))
	}

	return responses, nil
}

// notifySubmitted tells the employee's department managers about the new
// request. Failures are logged and swallowed.
func (s *LeaveService) notifySubmitted(ctx context.Context, claims jwt.Claims, request leave.Request) {
	emp, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		s.logger.Warn("leave request notification skipped",
			slog.String("employee_id", claims.EmployeeID),
			slog.Any("error", err))
		return
	}

	err = s.notificationSvc.Notify(ctx, notification.NotifyRequest{
		Scope:     notification.ScopeDepartmentManagers,
		TargetIDs: []string{emp.DepartmentID},
		SenderID:  &claims.UserID,
		Type:      notification.TypeLeaveRequest,
		Title:     "New leave request",
		Message: fmt.Sprintf("%s requested leave from %s to %s: %s",
			emp.FullName, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"), request.Reason),
		Visibility:    "manager",
		ExcludeUserID: &claims.UserID,
	})
	if err != nil {
		s.logger.Warn("failed to dispatch leave request notification",
			slog.String("employee_id", claims.EmployeeID),
			slog.Any("error", err))
	}
}

func toResponse(request leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:         request.ID,
		EmployeeID: request.EmployeeID,
		Status:     request.Status,
		StartDate:  request.StartDate.Format("2006-01-02"),
		EndDate:    request.EndDate.Format("2006-01-02"),
		Reason:     request.Reason,
		CreatedAt:  request.CreatedAt.Format(time.RFC3339),
	}
}
