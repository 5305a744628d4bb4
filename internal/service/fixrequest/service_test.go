package fixrequest

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/notification"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/database"
)

var testLoc = time.FixedZone("WIB", 7*3600)

func authedContext(t *testing.T, userID, employeeID, role string) context.Context {
	t.Helper()
	builder := jwt.NewBuilder().
		Claim("user_id", userID).
		Claim("role", role)
	if employeeID != "" {
		builder = builder.Claim("employee_id", employeeID)
	}
	token, err := builder.Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeFixRepo struct {
	requests   map[string]*fixrequest.FixRequest
	lastFilter fixrequest.ListFilter
	nextID     int
	updatedAt  time.Time
}

func newFakeFixRepo() *fakeFixRepo {
	return &fakeFixRepo{
		requests:  make(map[string]*fixrequest.FixRequest),
		updatedAt: time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC),
	}
}

func (f *fakeFixRepo) Create(_ context.Context, request fixrequest.FixRequest) (fixrequest.FixRequest, error) {
	f.nextID++
	request.ID = "fix-" + strconv.Itoa(f.nextID)
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeFixRepo) GetByID(_ context.Context, id string) (fixrequest.FixRequest, error) {
	if r, ok := f.requests[id]; ok {
		return *r, nil
	}
	return fixrequest.FixRequest{}, fixrequest.ErrFixRequestNotFound
}

func (f *fakeFixRepo) Update(_ context.Context, request fixrequest.FixRequest) (fixrequest.FixRequest, error) {
	if _, ok := f.requests[request.ID]; !ok {
		return fixrequest.FixRequest{}, fixrequest.ErrFixRequestNotFound
	}
	request.UpdatedAt = f.updatedAt
	f.requests[request.ID] = &request
	return request, nil
}

func (f *fakeFixRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return fixrequest.ErrFixRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeFixRepo) List(_ context.Context, filter fixrequest.ListFilter) ([]fixrequest.FixRequest, int64, error) {
	f.lastFilter = filter
	var out []fixrequest.FixRequest
	for _, r := range f.requests {
		if filter.MinRequesterLevel != nil &&
			(r.RequesterLevel == nil || *r.RequesterLevel <= *filter.MinRequesterLevel) {
			continue
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

type fakeRecordRepo struct {
	records map[string]*attendance.Record
	deleted []string
	nextID  int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*attendance.Record)}
}

func (f *fakeRecordRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	f.nextID++
	record.ID = "rec-" + strconv.Itoa(f.nextID)
	f.records[record.ID] = &record
	return record, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	if r, ok := f.records[id]; ok {
		return *r, nil
	}
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeRecordRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			rec := *r
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, record attendance.Record) error {
	if _, ok := f.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[record.ID] = &record
	return nil
}

func (f *fakeRecordRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(f.records, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRecordRepo) ListOpenForDate(_ context.Context, _ time.Time, _ attendance.Status) ([]attendance.Record, error) {
	return nil, nil
}

type fakeBreakRepo struct {
	replaced map[string][]attendance.Break
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{replaced: make(map[string][]attendance.Break)}
}

func (f *fakeBreakRepo) Create(_ context.Context, brk attendance.Break) (attendance.Break, error) {
	return brk, nil
}

func (f *fakeBreakRepo) GetOpenByRecord(_ context.Context, _ string) (*attendance.Break, error) {
	return nil, nil
}

func (f *fakeBreakRepo) Close(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (f *fakeBreakRepo) ListClosedByRecord(_ context.Context, recordID string) ([]attendance.Break, error) {
	var closed []attendance.Break
	for _, b := range f.replaced[recordID] {
		if b.BreakEnd != nil {
			closed = append(closed, b)
		}
	}
	return closed, nil
}

func (f *fakeBreakRepo) ReplaceForRecord(_ context.Context, recordID string, breaks []attendance.Break) error {
	f.replaced[recordID] = breaks
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(_ context.Context, _ string) (user.User, error) {
	for _, u := range f.users {
		if u.Role == user.RoleEmployee {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetDepartmentManagerIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetSubDepartmentLeadIDs(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) GetHRDirectorIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeGate struct {
	allow bool
}

func (f *fakeGate) CanApprove(_ context.Context, _ string, _ fixrequest.FixRequest) (bool, error) {
	return f.allow, nil
}

type fakeGuard struct {
	onLeave bool
}

func (f *fakeGuard) IsOnLeave(_ context.Context, _ string, _ time.Time) (bool, error) {
	return f.onLeave, nil
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

type testEnv struct {
	svc      *FixRequestService
	mock     pgxmock.PgxPoolIface
	fixRepo  *fakeFixRepo
	records  *fakeRecordRepo
	breaks   *fakeBreakRepo
	notifier *fakeNotifier
	gate     *fakeGate
	guard    *fakeGuard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	subDept := "subdept-1"
	shiftID := "shift-1"
	userID := "user-emp"
	env := &testEnv{
		mock:     mock,
		fixRepo:  newFakeFixRepo(),
		records:  newFakeRecordRepo(),
		breaks:   newFakeBreakRepo(),
		notifier: &fakeNotifier{},
		gate:     &fakeGate{allow: true},
		guard:    &fakeGuard{},
	}

	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {
			ID: "emp-1", UserID: &userID, ShiftID: &shiftID,
			DepartmentID: "dept-1", SubDepartmentID: &subDept, FullName: "Test Employee",
		},
	}}
	users := &fakeUserRepo{users: map[string]user.User{
		userID: {ID: userID, Role: user.RoleEmployee},
	}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.svc = NewFixRequestService(
		database.NewWithPool(mock),
		env.fixRepo, env.records, env.breaks, employees, users,
		env.gate, env.guard, env.notifier, logger, testLoc)
	env.svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, testLoc) }

	return env
}

func pendingRequest(env *testEnv, mutate func(*fixrequest.FixRequest)) fixrequest.FixRequest {
	level := 3
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, testLoc).UTC()
	checkOut := time.Date(2026, 3, 10, 17, 0, 0, 0, testLoc).UTC()
	request := fixrequest.FixRequest{
		EmployeeID:        "emp-1",
		Date:              time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc),
		RequestType:       fixrequest.TypeBoth,
		RequestedCheckIn:  &checkIn,
		RequestedCheckOut: &checkOut,
		Reason:            "forgot to clock",
		Status:            fixrequest.StatusPending,
		RequesterLevel:    &level,
	}
	if mutate != nil {
		mutate(&request)
	}
	created, _ := env.fixRepo.Create(context.Background(), request)
	return created
}

func TestSubmit_AnchorsTimesOnRequestDate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := authedContext(t, "user-emp", "emp-1", "employee")

	checkIn := "09:15"
	checkOut := "17:45"
	resp, err := env.svc.Submit(ctx, fixrequest.SubmitRequest{
		Date:              "2026-03-10",
		RequestType:       "both",
		RequestedCheckIn:  &checkIn,
		RequestedCheckOut: &checkOut,
		Reason:            "forgot to clock in",
	})
	require.NoError(t, err)
	assert.Equal(t, fixrequest.StatusPending, resp.Status)

	stored := env.fixRepo.requests[resp.ID]
	require.NotNil(t, stored.RequestedCheckIn)
	assert.Equal(t,
		time.Date(2026, 3, 10, 9, 15, 0, 0, testLoc).Unix(),
		stored.RequestedCheckIn.Unix())
	require.NotNil(t, stored.RequestedCheckOut)
	assert.Equal(t,
		time.Date(2026, 3, 10, 17, 45, 0, 0, testLoc).Unix(),
		stored.RequestedCheckOut.Unix())

	// Approvers are told who asked and why
	require.NotEmpty(t, env.notifier.sent)
	assert.Contains(t, env.notifier.sent[0].Message, "Test Employee")
	assert.Contains(t, env.notifier.sent[0].Message, "forgot to clock in")
}

func TestSubmit_MidnightCheckOutRollsToNextDay(t *testing.T) {
	t.Parallel()

	for _, checkOut := range []string{"00:00", "00:00:00"} {
		t.Run(checkOut, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			ctx := authedContext(t, "user-emp", "emp-1", "employee")

			checkOut := checkOut
			resp, err := env.svc.Submit(ctx, fixrequest.SubmitRequest{
				Date:              "2026-03-10",
				RequestType:       "check_out",
				RequestedCheckOut: &checkOut,
				Reason:            "worked until midnight",
			})
			require.NoError(t, err)

			stored := env.fixRepo.requests[resp.ID]
			require.NotNil(t, stored.RequestedCheckOut)
			assert.Equal(t,
				time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc).Unix(),
				stored.RequestedCheckOut.Unix())
		})
	}
}

func TestSubmit_SecondsInRequestedTimeAreKept(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := authedContext(t, "user-emp", "emp-1", "employee")

	checkIn := "09:00:30"
	resp, err := env.svc.Submit(ctx, fixrequest.SubmitRequest{
		Date:             "2026-03-10",
		RequestType:      "check_in",
		RequestedCheckIn: &checkIn,
		Reason:           "forgot to clock in",
	})
	require.NoError(t, err)

	stored := env.fixRepo.requests[resp.ID]
	require.NotNil(t, stored.RequestedCheckIn)
	assert.Equal(t,
		time.Date(2026, 3, 10, 9, 0, 30, 0, testLoc).Unix(),
		stored.RequestedCheckIn.Unix())
}

func TestSubmit_DuringApprovedLeave(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.guard.onLeave = true
	ctx := authedContext(t, "user-emp", "emp-1", "employee")

	checkIn := "09:00"
	_, err := env.svc.Submit(ctx, fixrequest.SubmitRequest{
		Date:             "2026-03-10",
		RequestType:      "check_in",
		RequestedCheckIn: &checkIn,
		Reason:           "forgot",
	})
	assert.ErrorIs(t, err, leave.ErrEmployeeOnLeave)
}

func TestDecide_ApproveWithNoLinkCreatesRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	request := pendingRequest(env, nil)

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	ctx := authedContext(t, "user-reviewer", "", "manager")
	resp, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "approved"})
	require.NoError(t, err)

	assert.Equal(t, fixrequest.StatusApproved, resp.Status)
	require.NotNil(t, resp.AttendanceRecordID)

	record := env.records.records[*resp.AttendanceRecordID]
	require.NotNil(t, record)
	assert.Equal(t, "emp-1", record.EmployeeID)
	assert.Equal(t, attendance.StatusPresent, record.Status)
	require.NotNil(t, record.ClockIn)
	require.NotNil(t, record.ClockOut)
	require.NotNil(t, record.NetWorkingMinutes)
	assert.Equal(t, 480, *record.NetWorkingMinutes)

	require.NoError(t, env.mock.ExpectationsWereMet())
}

func TestDecide_ApproveLinkedUpdatesOnlyRequestedFields(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	existingIn := time.Date(2026, 3, 10, 8, 0, 0, 0, testLoc).UTC()
	existingOut := time.Date(2026, 3, 10, 16, 0, 0, 0, testLoc).UTC()
	record, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc),
		ClockIn:    &existingIn,
		ClockOut:   &existingOut,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.RequestType = fixrequest.TypeCheckOut
		r.RequestedCheckIn = nil
		r.AttendanceRecordID = &record.ID
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	ctx := authedContext(t, "user-reviewer", "", "manager")
	_, err = env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "approved"})
	require.NoError(t, err)

	updated := env.records.records[record.ID]
	assert.Equal(t, existingIn.Unix(), updated.ClockIn.Unix())
	assert.Equal(t,
		time.Date(2026, 3, 10, 17, 0, 0, 0, testLoc).Unix(),
		updated.ClockOut.Unix())
}

func TestDecide_RejectMutatesNothing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	request := pendingRequest(env, nil)

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	remarks := "evidence missing"
	ctx := authedContext(t, "user-reviewer", "", "manager")
	resp, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{
		Decision: "rejected",
		Remarks:  &remarks,
	})
	require.NoError(t, err)

	assert.Equal(t, fixrequest.StatusRejected, resp.Status)
	assert.Nil(t, resp.AttendanceRecordID)
	assert.Empty(t, env.records.records)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "user-reviewer", *resp.ReviewedBy)
}

func TestDecide_NotPending(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.Status = fixrequest.StatusApproved
	})

	ctx := authedContext(t, "user-reviewer", "", "manager")
	_, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "rejected"})
	assert.ErrorIs(t, err, fixrequest.ErrNotPending)
}

func TestDecide_GateDenies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.gate.allow = false
	request := pendingRequest(env, nil)

	ctx := authedContext(t, "user-reviewer", "", "employee")
	_, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "approved"})
	assert.ErrorIs(t, err, fixrequest.ErrApprovalNotAllowed)
}

func TestDecide_ApprovedBreaksReplaceVerbatim(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	breakType := "bt-lunch"
	breakEnd := time.Date(2026, 3, 10, 13, 0, 0, 0, testLoc).UTC()
	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.RequestedBreaks = []fixrequest.RequestedBreak{{
			Start:       time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc).UTC(),
			End:         &breakEnd,
			BreakTypeID: &breakType,
		}}
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	ctx := authedContext(t, "user-reviewer", "", "manager")
	resp, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "approved"})
	require.NoError(t, err)

	require.NotNil(t, resp.AttendanceRecordID)
	replaced := env.breaks.replaced[*resp.AttendanceRecordID]
	require.Len(t, replaced, 1)
	assert.Equal(t, "bt-lunch", replaced[0].BreakTypeID)

	// Net minutes account for the one-hour requested break
	record := env.records.records[*resp.AttendanceRecordID]
	require.NotNil(t, record.NetWorkingMinutes)
	assert.Equal(t, 420, *record.NetWorkingMinutes)
}

func TestEdit_ReversingApprovalDeletesRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	record, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.Status = fixrequest.StatusApproved
		r.AttendanceRecordID = &record.ID
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	newStatus := "rejected"
	ctx := authedContext(t, "user-admin", "", "admin")
	resp, err := env.svc.Edit(ctx, request.ID, fixrequest.EditRequest{Status: &newStatus})
	require.NoError(t, err)

	assert.Equal(t, fixrequest.StatusRejected, resp.Status)
	assert.Nil(t, resp.AttendanceRecordID)
	assert.Contains(t, env.records.deleted, record.ID)
}

func TestEdit_IntoApprovedCreatesNoRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	request := pendingRequest(env, nil)

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	newStatus := "approved"
	ctx := authedContext(t, "user-admin", "", "admin")
	resp, err := env.svc.Edit(ctx, request.ID, fixrequest.EditRequest{Status: &newStatus})
	require.NoError(t, err)

	assert.Equal(t, fixrequest.StatusApproved, resp.Status)
	assert.Nil(t, resp.AttendanceRecordID)
	assert.Empty(t, env.records.records)
}

func TestEdit_AnchorsOnRequestDateWestOfUTC(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	west := time.FixedZone("UTC-5", -5*3600)
	env.svc.loc = west

	// A DATE column scans as UTC midnight regardless of the configured zone.
	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	checkIn := "09:00"
	ctx := authedContext(t, "user-admin", "", "admin")
	_, err := env.svc.Edit(ctx, request.ID, fixrequest.EditRequest{RequestedCheckIn: &checkIn})
	require.NoError(t, err)

	stored := env.fixRepo.requests[request.ID]
	require.NotNil(t, stored.RequestedCheckIn)
	assert.Equal(t,
		time.Date(2026, 3, 10, 9, 0, 0, 0, west).Unix(),
		stored.RequestedCheckIn.Unix())
}

func TestDecide_ResponseCarriesRefreshedUpdatedAt(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.UpdatedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	ctx := authedContext(t, "user-reviewer", "", "manager")
	resp, err := env.svc.Decide(ctx, request.ID, fixrequest.DecideRequest{Decision: "rejected"})
	require.NoError(t, err)

	assert.Equal(t, env.fixRepo.updatedAt.Format(time.RFC3339), resp.UpdatedAt)
}

func TestDelete_RemovesLinkedRecord(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	record, err := env.records.Create(context.Background(), attendance.Record{
		EmployeeID: "emp-1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc),
	})
	require.NoError(t, err)

	request := pendingRequest(env, func(r *fixrequest.FixRequest) {
		r.Status = fixrequest.StatusApproved
		r.AttendanceRecordID = &record.ID
	})

	env.mock.ExpectBegin()
	env.mock.ExpectCommit()

	ctx := authedContext(t, "user-admin", "", "admin")
	require.NoError(t, env.svc.Delete(ctx, request.ID))

	assert.Empty(t, env.fixRepo.requests)
	assert.Contains(t, env.records.deleted, record.ID)
}

func TestList_NonAdminGetsHierarchyFilter(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	level := 2
	reviewerID := "user-reviewer"
	env.svc.userRepo.(*fakeUserRepo).users[reviewerID] = user.User{
		ID: reviewerID, Role: user.RoleManager, SubRoleLevel: &level,
	}

	ctx := authedContext(t, reviewerID, "", "manager")
	_, err := env.svc.List(ctx, fixrequest.ListFilter{})
	require.NoError(t, err)

	require.NotNil(t, env.fixRepo.lastFilter.MinRequesterLevel)
	assert.Equal(t, 2, *env.fixRepo.lastFilter.MinRequesterLevel)
}

func TestList_AdminSeesAll(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	pendingRequest(env, nil)

	ctx := authedContext(t, "user-admin", "", "admin")
	result, err := env.svc.List(ctx, fixrequest.ListFilter{})
	require.NoError(t, err)

	assert.Nil(t, env.fixRepo.lastFilter.MinRequesterLevel)
	assert.Len(t, result.FixRequests, 1)
}
