package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/shift"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
)

// Locker serializes the reconciliation pass across instances.
type Locker interface {
	TryAcquire(ctx context.Context, key int64) (acquired bool, release func(), err error)
}

// AutoCheckoutResult reports one pass.
type AutoCheckoutResult struct {
	Closed  int
	Skipped int
	Failed  int
}

// AttendanceJobs owns the auto-checkout reconciliation pass that closes
// sessions nobody checked out of.
type AttendanceJobs struct {
	recordRepo      attendance.RecordRepository
	breakRepo       attendance.BreakRepository
	shiftRepo       shift.Repository
	employeeRepo    employee.Repository
	userRepo        user.Repository
	locker          Locker
	lockKey         int64
	notificationSvc notification.Service
	logger          *slog.Logger
}

func NewAttendanceJobs(
	recordRepo attendance.RecordRepository,
	breakRepo attendance.BreakRepository,
	shiftRepo shift.Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	locker Locker,
	lockKey int64,
	notificationSvc notification.Service,
	logger *slog.Logger,
) *AttendanceJobs {
	return &AttendanceJobs{
		recordRepo:      recordRepo,
		breakRepo:       breakRepo,
		shiftRepo:       shiftRepo,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		locker:          locker,
		lockKey:         lockKey,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// RunAutoCheckout performs one reconciliation pass over today's open
// sessions. now and loc are explicit so a pass can be replayed against any
// instant. The pass is idempotent: it only ever sees records with no
// clock_out, and a failed record is logged and skipped rather than aborting
// the rest.
func (j *AttendanceJobs) RunAutoCheckout(ctx context.Context, now time.Time, loc *time.Location) (AutoCheckoutResult, error) {
	var result AutoCheckoutResult

	acquired, release, err := j.locker.TryAcquire(ctx, j.lockKey)
	if err != nil {
		return result, err
	}
	if !acquired {
		j.logger.Info("auto checkout pass already running elsewhere, skipping")
		return result, nil
	}
	defer release()

	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	records, err := j.recordRepo.ListOpenForDate(ctx, today, attendance.StatusAutoCheckout)
	if err != nil {
		return result, fmt.Errorf("failed to scan open sessions: %w", err)
	}

	for _, record := range records {
		closed, err := j.closeSession(ctx, record, loc)
		if err != nil {
			result.Failed++
			j.logger.Error("failed to auto close session",
				slog.String("record_id", record.ID),
				slog.String("employee_id", record.EmployeeID),
				slog.Any("error", err))
			continue
		}
		if !closed {
			result.Skipped++
			continue
		}
		result.Closed++
	}

	j.logger.Info("auto checkout pass finished",
		slog.Int("closed", result.Closed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))

	return result, nil
}

// closeSession stamps the shift-anchored checkout onto one open record.
// Returns false when the record has no shift to anchor against; those stay
// open on purpose.
func (j *AttendanceJobs) closeSession(ctx context.Context, record attendance.Record, loc *time.Location) (bool, error) {
	if record.ClockIn == nil || record.ShiftID == nil {
		return false, nil
	}

	sh, err := j.shiftRepo.GetByID(ctx, *record.ShiftID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return false, nil
		}
		return false, err
	}

	end := attendance.AutoCheckoutAt(*record.ClockIn, sh.StartTime, sh.EndTime, loc)

	breaks, err := j.breakRepo.ListClosedByRecord(ctx, record.ID)
	if err != nil {
		return false, err
	}

	worked := end.Sub(*record.ClockIn) - attendance.ClosedBreakTotalWithin(breaks, *record.ClockIn, end)
	if worked < 0 {
		worked = 0
	}
	net := int(worked / time.Minute)

	// The status field stays as it was; the missing clock_out already says
	// everything the record needs to.
	record.ClockOut = &end
	record.NetWorkingMinutes = &net

	if err := j.recordRepo.Update(ctx, record); err != nil {
		return false, err
	}

	j.notifyClosed(ctx, record, end)

	return true, nil
}

func (j *AttendanceJobs) notifyClosed(ctx context.Context, record attendance.Record, end time.Time) {
	u, err := j.userRepo.GetByEmployeeID(ctx, record.EmployeeID)
	if err != nil {
		j.logger.Warn("auto checkout notification skipped",
			slog.String("record_id", record.ID),
			slog.Any("error", err))
		return
	}

	name := record.EmployeeID
	if record.EmployeeName != nil {
		name = *record.EmployeeName
	}

	if err := j.notificationSvc.Notify(ctx, notification.NotifyRequest{
		Scope:      notification.ScopeUsers,
		TargetIDs:  []string{u.ID},
		Type:       notification.TypeAttendanceAutoCheckout,
		Title:      "Automatic check-out applied",
		Message:    fmt.Sprintf("You were checked out automatically at %s", end.Format(time.RFC3339)),
		Visibility: "employee",
	}); err != nil {
		j.logger.Warn("failed to dispatch auto checkout notification",
			slog.String("record_id", record.ID),
			slog.Any("error", err))
	}

	emp, err := j.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return
	}

	if err := j.notificationSvc.Notify(ctx, notification.NotifyRequest{
		Scope:      notification.ScopeDepartmentManagers,
		TargetIDs:  []string{emp.DepartmentID},
		Type:       notification.TypeAttendanceAutoCheckout,
		Title:      "Automatic check-out applied",
		Message:    fmt.Sprintf("%s was checked out automatically at %s", name, end.Format(time.RFC3339)),
		Visibility: "manager",
	}); err != nil {
		j.logger.Warn("failed to dispatch auto checkout notification",
			slog.String("record_id", record.ID),
			slog.Any("error", err))
	}
}
