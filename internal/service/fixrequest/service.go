package fixrequest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/jwt"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/validator"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/repository/postgresql"
)

type FixRequestService struct {
	db              *database.DB
	repo            fixrequest.Repository
	recordRepo      attendance.RecordRepository
	breakRepo       attendance.BreakRepository
	employeeRepo    employee.Repository
	userRepo        user.Repository
	gate            fixrequest.ApprovalGate
	leaveGuard      leave.Guard
	notificationSvc notification.Service
	logger          *slog.Logger
	loc             *time.Location

	now func() time.Time
}

func NewFixRequestService(
	db *database.DB,
	repo fixrequest.Repository,
	recordRepo attendance.RecordRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	gate fixrequest.ApprovalGate,
	leaveGuard leave.Guard,
	notificationSvc notification.Service,
	logger *slog.Logger,
	loc *time.Location,
) *FixRequestService {
	return &FixRequestService{
		db:              db,
		repo:            repo,
		recordRepo:      recordRepo,
		breakRepo:       breakRepo,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		gate:            gate,
		leaveGuard:      leaveGuard,
		notificationSvc: notificationSvc,
		logger:          logger,
		loc:             loc,
		now:             time.Now,
	}
}

func (s *FixRequestService) Submit(ctx context.Context, req fixrequest.SubmitRequest) (fixrequest.FixRequestResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, s.loc)

	onLeave, err := s.leaveGuard.IsOnLeave(ctx, claims.EmployeeID, date)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}
	if onLeave {
		return fixrequest.FixRequestResponse{}, leave.ErrEmployeeOnLeave
	}

	request := fixrequest.FixRequest{
		EmployeeID:  claims.EmployeeID,
		Date:        date,
		RequestType: fixrequest.RequestType(req.RequestType),
		Reason:      req.Reason,
		Status:      fixrequest.StatusPending,
	}

	// Only the fields the request type covers are honored; surplus input
	// is dropped silently.
	if request.RequestType.WantsCheckIn() && req.RequestedCheckIn != nil {
		t, err := s.anchorClock("requested_check_in", date, *req.RequestedCheckIn)
		if err != nil {
			return fixrequest.FixRequestResponse{}, err
		}
		request.RequestedCheckIn = &t
	}
	if request.RequestType.WantsCheckOut() && req.RequestedCheckOut != nil {
		t, err := s.anchorCheckOut("requested_check_out", date, *req.RequestedCheckOut)
		if err != nil {
			return fixrequest.FixRequestResponse{}, err
		}
		request.RequestedCheckOut = &t
	}
	for _, b := range req.RequestedBreaks {
		start, err := s.anchorClock("requested_breaks", date, b.Start)
		if err != nil {
			return fixrequest.FixRequestResponse{}, err
		}
		rb := fixrequest.RequestedBreak{
			Start:       start,
			BreakTypeID: b.BreakTypeID,
		}
		if b.End != nil {
			end, err := s.anchorClock("requested_breaks", date, *b.End)
			if err != nil {
				return fixrequest.FixRequestResponse{}, err
			}
			rb.End = &end
		}
		request.RequestedBreaks = append(request.RequestedBreaks, rb)
	}

	created, err := s.repo.Create(ctx, request)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	s.notifySubmitted(ctx, claims, created)

	return s.toResponse(created), nil
}

func (s *FixRequestService) List(ctx context.Context, filter fixrequest.ListFilter) (fixrequest.ListResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return fixrequest.ListResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	if claims.Role != user.RoleAdmin {
		reviewer, err := s.userRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return fixrequest.ListResponse{}, err
		}
		if reviewer.SubRoleLevel == nil {
			// No level means no one ranks below this reviewer.
			return fixrequest.ListResponse{
				Page:        filter.Page,
				Limit:       filter.Limit,
				FixRequests: []fixrequest.FixRequestResponse{},
			}, nil
		}
		filter.MinRequesterLevel = reviewer.SubRoleLevel
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return fixrequest.ListResponse{}, err
	}

	responses := make([]fixrequest.FixRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, s.toResponse(request))
	}

	return fixrequest.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		FixRequests: responses,
	}, nil
}

func (s *FixRequestService) Get(ctx context.Context, id string) (fixrequest.FixRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}
	return s.toResponse(request), nil
}

func (s *FixRequestService) Decide(ctx context.Context, id string, req fixrequest.DecideRequest) (fixrequest.FixRequestResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	allowed, err := s.gate.CanApprove(ctx, claims.UserID, request)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}
	if !allowed {
		return fixrequest.FixRequestResponse{}, fixrequest.ErrApprovalNotAllowed
	}

	if request.Status != fixrequest.StatusPending {
		return fixrequest.FixRequestResponse{}, fixrequest.ErrNotPending
	}

	decision := fixrequest.Status(req.Decision)
	now := s.now().UTC()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if decision == fixrequest.StatusApproved {
			if err := s.applyApproval(txCtx, &request); err != nil {
				return err
			}
		}

		request.Status = decision
		request.ReviewedBy = &claims.UserID
		request.ReviewedAt = &now
		request.Remarks = req.Remarks

		updated, err := s.repo.Update(txCtx, request)
		if err != nil {
			return err
		}
		request = updated
		return nil
	})
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	s.notifyDecided(ctx, claims, request)

	return s.toResponse(request), nil
}

// applyApproval pushes the requested corrections onto the attendance record,
// creating one when the request is not yet linked.
func (s *FixRequestService) applyApproval(ctx context.Context, request *fixrequest.FixRequest) error {
	var record attendance.Record

	if request.AttendanceRecordID == nil {
		emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
		if err != nil {
			return err
		}

		clockIn := s.now().UTC()
		if request.RequestedCheckIn != nil {
			clockIn = *request.RequestedCheckIn
		}

		record, err = s.recordRepo.Create(ctx, attendance.Record{
			EmployeeID: request.EmployeeID,
			Date:       request.Date,
			ShiftID:    emp.ShiftID,
			ClockIn:    &clockIn,
			ClockOut:   request.RequestedCheckOut,
			Status:     attendance.StatusPresent,
		})
		if err != nil {
			return err
		}
		request.AttendanceRecordID = &record.ID
	} else {
		existing, err := s.recordRepo.GetByID(ctx, *request.AttendanceRecordID)
		if err != nil {
			return err
		}
		record = existing

		if request.RequestType.WantsCheckIn() && request.RequestedCheckIn != nil {
			record.ClockIn = request.RequestedCheckIn
		}
		if request.RequestType.WantsCheckOut() && request.RequestedCheckOut != nil {
			record.ClockOut = request.RequestedCheckOut
		}
	}

	if len(request.RequestedBreaks) > 0 {
		breaks := make([]attendance.Break, 0, len(request.RequestedBreaks))
		for _, rb := range request.RequestedBreaks {
			if rb.BreakTypeID == nil {
				continue
			}
			breaks = append(breaks, attendance.Break{
				AttendanceRecordID: record.ID,
				BreakTypeID:        *rb.BreakTypeID,
				BreakStart:         rb.Start,
				BreakEnd:           rb.End,
			})
		}
		if err := s.breakRepo.ReplaceForRecord(ctx, record.ID, breaks); err != nil {
			return err
		}
	}

	if record.ClockIn != nil && record.ClockOut != nil {
		closed, err := s.breakRepo.ListClosedByRecord(ctx, record.ID)
		if err != nil {
			return err
		}
		net := attendance.NetWorkingMinutes(*record.ClockIn, *record.ClockOut, closed)
		record.NetWorkingMinutes = &net
	}

	return s.recordRepo.Update(ctx, record)
}

func (s *FixRequestService) Edit(ctx context.Context, id string, req fixrequest.EditRequest) (fixrequest.FixRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	previous := request.Status

	if req.Status != nil {
		request.Status = fixrequest.Status(*req.Status)
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}
	if req.RequestType != nil {
		request.RequestType = fixrequest.RequestType(*req.RequestType)
	}
	if req.RequestedCheckIn != nil {
		t, err := s.anchorClock("requested_check_in", request.Date, *req.RequestedCheckIn)
		if err != nil {
			return fixrequest.FixRequestResponse{}, err
		}
		request.RequestedCheckIn = &t
	}
	if req.RequestedCheckOut != nil {
		t, err := s.anchorCheckOut("requested_check_out", request.Date, *req.RequestedCheckOut)
		if err != nil {
			return fixrequest.FixRequestResponse{}, err
		}
		request.RequestedCheckOut = &t
	}
	if req.Remarks != nil {
		request.Remarks = req.Remarks
	}

	// Reversing an approval takes the record it produced with it. Moving
	// into approved here does not create one; only Decide does that.
	reversal := previous == fixrequest.StatusApproved &&
		request.Status != fixrequest.StatusApproved &&
		request.AttendanceRecordID != nil

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if reversal {
			if err := s.recordRepo.Delete(txCtx, *request.AttendanceRecordID); err != nil {
				return err
			}
			request.AttendanceRecordID = nil
		}
		updated, err := s.repo.Update(txCtx, request)
		if err != nil {
			return err
		}
		request = updated
		return nil
	})
	if err != nil {
		return fixrequest.FixRequestResponse{}, err
	}

	return s.toResponse(request), nil
}

func (s *FixRequestService) Delete(ctx context.Context, id string) error {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if request.AttendanceRecordID != nil {
			if err := s.recordRepo.Delete(txCtx, *request.AttendanceRecordID); err != nil {
				return err
			}
		}
		return s.repo.Delete(txCtx, id)
	})
}

// anchorClock places a clock value onto date's own calendar day and returns
// the UTC instant. The day is read from date's fields rather than converting
// the instant, so a DATE column scanned as UTC midnight stays on the same
// day whatever the configured timezone.
func (s *FixRequestService) anchorClock(field string, date time.Time, clock string) (time.Time, error) {
	tod, ok := validator.IsValidClock(clock)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid time of day", clock),
		}}
	}
	year, month, day := date.Date()
	return time.Date(year, month, day,
		tod.Hour(), tod.Minute(), tod.Second(), 0, s.loc).UTC(), nil
}

// anchorCheckOut is anchorClock with the midnight convention: a checkout at
// exactly midnight means the start of the next calendar day.
func (s *FixRequestService) anchorCheckOut(field string, date time.Time, clock string) (time.Time, error) {
	t, err := s.anchorClock(field, date, clock)
	if err != nil {
		return time.Time{}, err
	}
	if local := t.In(s.loc); local.Hour() == 0 && local.Minute() == 0 && local.Second() == 0 {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

func (s *FixRequestService) notifySubmitted(ctx context.Context, claims jwt.Claims, request fixrequest.FixRequest) {
	emp, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		s.logger.Warn("fix request notification skipped",
			slog.String("fix_request_id", request.ID),
			slog.Any("error", err))
		return
	}

	message := fmt.Sprintf("%s submitted an attendance fix request for %s: %s",
		emp.FullName, request.Date.Format("2006-01-02"), request.Reason)

	s.notify(ctx, notification.NotifyRequest{
		Scope:         notification.ScopeDepartmentManagers,
		TargetIDs:     []string{emp.DepartmentID},
		SenderID:      &claims.UserID,
		Type:          notification.TypeFixRequestSubmitted,
		Title:         "New attendance fix request",
		Message:       message,
		Visibility:    "manager",
		ExcludeUserID: &claims.UserID,
	}, request.ID)

	if emp.SubDepartmentID != nil {
		s.notify(ctx, notification.NotifyRequest{
			Scope:         notification.ScopeSubDepartmentLeads,
			TargetIDs:     []string{*emp.SubDepartmentID},
			SenderID:      &claims.UserID,
			Type:          notification.TypeFixRequestSubmitted,
			Title:         "New attendance fix request",
			Message:       message,
			Visibility:    "lead",
			ExcludeUserID: &claims.UserID,
		}, request.ID)
	}
}

func (s *FixRequestService) notifyDecided(ctx context.Context, claims jwt.Claims, request fixrequest.FixRequest) {
	title := fmt.Sprintf("Attendance fix request %s", request.Status)
	message := fmt.Sprintf("Your attendance fix request for %s was %s",
		request.Date.Format("2006-01-02"), request.Status)
	if request.Remarks != nil && *request.Remarks != "" {
		message += ": " + *request.Remarks
	}

	// The requester hears first, then the approver chain minus the
	// reviewer themself.
	requester, err := s.userRepo.GetByEmployeeID(ctx, request.EmployeeID)
	if err != nil {
		s.logger.Warn("fix request decision notification skipped",
			slog.String("fix_request_id", request.ID),
			slog.Any("error", err))
	} else {
		s.notify(ctx, notification.NotifyRequest{
			Scope:      notification.ScopeUsers,
			TargetIDs:  []string{requester.ID},
			SenderID:   &claims.UserID,
			Type:       notification.TypeFixRequestDecided,
			Title:      title,
			Message:    message,
			Visibility: "employee",
		}, request.ID)
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		s.logger.Warn("fix request decision fan-out skipped",
			slog.String("fix_request_id", request.ID),
			slog.Any("error", err))
		return
	}

	broadcast := fmt.Sprintf("%s's attendance fix request for %s was %s",
		emp.FullName, request.Date.Format("2006-01-02"), request.Status)

	s.notify(ctx, notification.NotifyRequest{
		Scope:         notification.ScopeDepartmentManagers,
		TargetIDs:     []string{emp.DepartmentID},
		SenderID:      &claims.UserID,
		Type:          notification.TypeFixRequestDecided,
		Title:         title,
		Message:       broadcast,
		Visibility:    "manager",
		ExcludeUserID: &claims.UserID,
	}, request.ID)

	if emp.SubDepartmentID != nil {
		s.notify(ctx, notification.NotifyRequest{
			Scope:         notification.ScopeSubDepartmentLeads,
			TargetIDs:     []string{*emp.SubDepartmentID},
			SenderID:      &claims.UserID,
			Type:          notification.TypeFixRequestDecided,
			Title:         title,
			Message:       broadcast,
			Visibility:    "lead",
			ExcludeUserID: &claims.UserID,
		}, request.ID)
	}

	s.notify(ctx, notification.NotifyRequest{
		Scope:         notification.ScopeHRDirectors,
		SenderID:      &claims.UserID,
		Type:          notification.TypeFixRequestDecided,
		Title:         title,
		Message:       broadcast,
		Visibility:    "hr",
		ExcludeUserID: &claims.UserID,
	}, request.ID)
}

func (s *FixRequestService) notify(ctx context.Context, req notification.NotifyRequest, fixRequestID string) {
	if err := s.notificationSvc.Notify(ctx, req); err != nil {
		s.logger.Warn("failed to dispatch fix request notification",
			slog.String("fix_request_id", fixRequestID),
			slog.String("scope", string(req.Scope)),
			slog.Any("error", err))
	}
}

func (s *FixRequestService) toResponse(request fixrequest.FixRequest) fixrequest.FixRequestResponse {
	resp := fixrequest.FixRequestResponse{
		ID:                 request.ID,
		EmployeeID:         request.EmployeeID,
		EmployeeName:       request.EmployeeName,
		Date:               request.Date.Format("2006-01-02"),
		RequestType:        request.RequestType,
		Reason:             request.Reason,
		Status:             request.Status,
		AttendanceRecordID: request.AttendanceRecordID,
		ReviewedBy:         request.ReviewedBy,
		Remarks:            request.Remarks,
		CreatedAt:          request.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          request.UpdatedAt.Format(time.RFC3339),
	}
	if request.RequestedCheckIn != nil {
		v := request.RequestedCheckIn.In(s.loc).Format("15:04")
		resp.RequestedCheckIn = &v
	}
	if request.RequestedCheckOut != nil {
		v := request.RequestedCheckOut.In(s.loc).Format("15:04")
		resp.RequestedCheckOut = &v
	}
	if request.ReviewedAt != nil {
		v := request.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	for _, rb := range request.RequestedBreaks {
		payload := fixrequest.RequestedBreakPayload{
			Start:       rb.Start.In(s.loc).Format("15:04"),
			BreakTypeID: rb.BreakTypeID,
		}
		if rb.End != nil {
			v := rb.End.In(s.loc).Format("15:04")
			payload.End = &v
		}
		resp.RequestedBreaks = append(resp.RequestedBreaks, payload)
	}
	return resp
}
