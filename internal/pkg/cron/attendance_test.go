package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/shift"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
)

var testLoc = time.FixedZone("WIB", 7*3600)

type fakeRecordRepo struct {
	open      []attendance.Record
	updated   map[string]attendance.Record
	failOnIDs map[string]bool
}

func (f *fakeRecordRepo) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, _ string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Record, error) {
	return nil, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, record attendance.Record) error {
	if f.failOnIDs[record.ID] {
		return errors.New("write failed")
	}
	if f.updated == nil {
		f.updated = make(map[string]attendance.Record)
	}
	f.updated[record.ID] = record
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeRecordRepo) ListOpenForDate(_ context.Context, _ time.Time, _ attendance.Status) ([]attendance.Record, error) {
	return f.open, nil
}

type fakeBreakRepo struct {
	byRecord map[string][]attendance.Break
}

func (f *fakeBreakRepo) Create(_ context.Context, b attendance.Break) (attendance.Break, error) {
	return b, nil
}

func (f *fakeBreakRepo) GetOpenByRecord(_ context.Context, _ string) (*attendance.Break, error) {
	return nil, nil
}

func (f *fakeBreakRepo) Close(_ context.Context, _ string, _ time.Time) error { return nil }

func (f *fakeBreakRepo) ListClosedByRecord(_ context.Context, recordID string) ([]attendance.Break, error) {
	return f.byRecord[recordID], nil
}

func (f *fakeBreakRepo) ReplaceForRecord(_ context.Context, _ string, _ []attendance.Break) error {
	return nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	if s, ok := f.shifts[id]; ok {
		return s, nil
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	return employee.Employee{ID: id, DepartmentID: "dept-1"}, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	return user.User{ID: id}, nil
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (user.User, error) {
	return user.User{ID: "user-" + employeeID}, nil
}

func (f *fakeUserRepo) GetDepartmentManagerIDs(_ context.Context, _ string) ([]string, error) {
	return []string{"user-mgr"}, nil
}

func (f *fakeUserRepo) GetSubDepartmentLeadIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetHRDirectorIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeLocker struct {
	acquired bool
	released bool
}

func (f *fakeLocker) TryAcquire(_ context.Context, _ int64) (bool, func(), error) {
	if !f.acquired {
		return false, nil, nil
	}
	return true, func() { f.released = true }, nil
}

type fakeNotifier struct {
	sent []notification.NotifyRequest
}

func (f *fakeNotifier) Notify(_ context.Context, req notification.NotifyRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeNotifier) List(_ context.Context, _ string, _, _ int) (*notification.ListResponse, error) {
	return &notification.ListResponse{}, nil
}

func (f *fakeNotifier) Stop() {}

func timeOfDay(hour, min int) time.Time {
	return time.Date(2000, 1, 1, hour, min, 0, 0, time.UTC)
}

func timeOfDayPtr(hour, min int) *time.Time {
	t := timeOfDay(hour, min)
	return &t
}

func newJobs(records *fakeRecordRepo, breaks *fakeBreakRepo, shifts *fakeShiftRepo, locker *fakeLocker, notifier *fakeNotifier) *AttendanceJobs {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAttendanceJobs(records, breaks, shifts, &fakeEmployeeRepo{}, &fakeUserRepo{},
		locker, 1, notifier, logger)
}

func TestRunAutoCheckout_ClosesOvernightSession(t *testing.T) {
	t.Parallel()

	shiftID := "shift-night"
	clockIn := time.Date(2026, 3, 10, 23, 0, 0, 0, testLoc).UTC()
	records := &fakeRecordRepo{open: []attendance.Record{{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc),
		ShiftID:    &shiftID,
		ClockIn:    &clockIn,
		Status:     attendance.StatusPresent,
	}}}
	shifts := &fakeShiftRepo{shifts: map[string]shift.Shift{
		shiftID: {ID: shiftID, StartTime: timeOfDayPtr(22, 0), EndTime: timeOfDay(6, 0)},
	}}
	locker := &fakeLocker{acquired: true}
	notifier := &fakeNotifier{}

	jobs := newJobs(records, &fakeBreakRepo{}, shifts, locker, notifier)

	now := time.Date(2026, 3, 10, 23, 30, 0, 0, testLoc)
	result, err := jobs.RunAutoCheckout(context.Background(), now, testLoc)
	require.NoError(t, err)

	assert.Equal(t, AutoCheckoutResult{Closed: 1}, result)
	assert.True(t, locker.released)

	updated := records.updated["rec-1"]
	require.NotNil(t, updated.ClockOut)
	assert.Equal(t,
		time.Date(2026, 3, 11, 6, 0, 0, 0, testLoc).Unix(),
		updated.ClockOut.Unix())
	require.NotNil(t, updated.NetWorkingMinutes)
	assert.Equal(t, 7*60, *updated.NetWorkingMinutes)

	// Status stays as it was
	assert.Equal(t, attendance.StatusPresent, updated.Status)

	// Employee and managers each got a notice
	require.Len(t, notifier.sent, 2)
	assert.Equal(t, notification.ScopeUsers, notifier.sent[0].Scope)
	assert.Equal(t, notification.ScopeDepartmentManagers, notifier.sent[1].Scope)
}

func TestRunAutoCheckout_SkipsRecordsWithoutShift(t *testing.T) {
	t.Parallel()

	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc).UTC()
	records := &fakeRecordRepo{open: []attendance.Record{{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		ClockIn:    &clockIn,
	}}}
	locker := &fakeLocker{acquired: true}

	jobs := newJobs(records, &fakeBreakRepo{}, &fakeShiftRepo{}, locker, &fakeNotifier{})

	result, err := jobs.RunAutoCheckout(context.Background(), time.Now(), testLoc)
	require.NoError(t, err)

	assert.Equal(t, AutoCheckoutResult{Skipped: 1}, result)
	assert.Empty(t, records.updated)
}

func TestRunAutoCheckout_FailureDoesNotAbortPass(t *testing.T) {
	t.Parallel()

	shiftID := "shift-day"
	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc).UTC()
	records := &fakeRecordRepo{
		open: []attendance.Record{
			{ID: "rec-bad", EmployeeID: "emp-1", ShiftID: &shiftID, ClockIn: &clockIn},
			{ID: "rec-good", EmployeeID: "emp-2", ShiftID: &shiftID, ClockIn: &clockIn},
		},
		failOnIDs: map[string]bool{"rec-bad": true},
	}
	shifts := &fakeShiftRepo{shifts: map[string]shift.Shift{
		shiftID: {ID: shiftID, StartTime: timeOfDayPtr(9, 0), EndTime: timeOfDay(17, 0)},
	}}
	locker := &fakeLocker{acquired: true}

	jobs := newJobs(records, &fakeBreakRepo{}, shifts, locker, &fakeNotifier{})

	result, err := jobs.RunAutoCheckout(context.Background(), time.Now(), testLoc)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Closed)
	assert.Contains(t, records.updated, "rec-good")
}

func TestRunAutoCheckout_LockHeldElsewhere(t *testing.T) {
	t.Parallel()

	records := &fakeRecordRepo{open: []attendance.Record{{ID: "rec-1"}}}
	locker := &fakeLocker{acquired: false}

	jobs := newJobs(records, &fakeBreakRepo{}, &fakeShiftRepo{}, locker, &fakeNotifier{})

	result, err := jobs.RunAutoCheckout(context.Background(), time.Now(), testLoc)
	require.NoError(t, err)

	assert.Equal(t, AutoCheckoutResult{}, result)
	assert.Empty(t, records.updated)
}

func TestRunAutoCheckout_SubtractsBreaksInsideWindow(t *testing.T) {
	t.Parallel()

	shiftID := "shift-day"
	clockIn := time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc).UTC()
	breakEnd := time.Date(2026, 3, 10, 13, 0, 0, 0, testLoc).UTC()
	lateBreakEnd := time.Date(2026, 3, 10, 18, 0, 0, 0, testLoc).UTC()

	records := &fakeRecordRepo{open: []attendance.Record{{
		ID: "rec-1", EmployeeID: "emp-1", ShiftID: &shiftID, ClockIn: &clockIn,
	}}}
	breaks := &fakeBreakRepo{byRecord: map[string][]attendance.Break{
		"rec-1": {
			{
				// Inside the window: subtracted
				BreakStart: time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc).UTC(),
				BreakEnd:   &breakEnd,
			},
			{
				// Ends after the auto checkout instant: ignored
				BreakStart: time.Date(2026, 3, 10, 16, 0, 0, 0, testLoc).UTC(),
				BreakEnd:   &lateBreakEnd,
			},
		},
	}}
	shifts := &fakeShiftRepo{shifts: map[string]shift.Shift{
		shiftID: {ID: shiftID, StartTime: timeOfDayPtr(9, 0), EndTime: timeOfDay(17, 0)},
	}}

	jobs := newJobs(records, breaks, shifts, &fakeLocker{acquired: true}, &fakeNotifier{})

	result, err := jobs.RunAutoCheckout(context.Background(), time.Now(), testLoc)
	require.NoError(t, err)
	require.Equal(t, 1, result.Closed)

	updated := records.updated["rec-1"]
	require.NotNil(t, updated.NetWorkingMinutes)
	// 8h window minus the 1h break that closed inside it
	assert.Equal(t, 7*60, *updated.NetWorkingMinutes)
}

func TestSchedulerNextRun(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewScheduler("23:30", testLoc, logger)

	before := time.Date(2026, 3, 10, 10, 0, 0, 0, testLoc)
	assert.Equal(t,
		time.Date(2026, 3, 10, 23, 30, 0, 0, testLoc).Unix(),
		s.nextRun(before).Unix())

	after := time.Date(2026, 3, 10, 23, 45, 0, 0, testLoc)
	assert.Equal(t,
		time.Date(2026, 3, 11, 23, 30, 0, 0, testLoc).Unix(),
		s.nextRun(after).Unix())
}
