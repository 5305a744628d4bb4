package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/jwt"
)

type AttendanceService struct {
	recordRepo    attendance.RecordRepository
	breakRepo     attendance.BreakRepository
	breakTypeRepo attendance.BreakTypeRepository
	employeeRepo  employee.Repository
	leaveGuard    leave.Guard
	loc           *time.Location

	now func() time.Time
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	breakRepo attendance.BreakRepository,
	breakTypeRepo attendance.BreakTypeRepository,
	employeeRepo employee.Repository,
	leaveGuard leave.Guard,
	loc *time.Location,
) *AttendanceService {
	return &AttendanceService{
		recordRepo:    recordRepo,
		breakRepo:     breakRepo,
		breakTypeRepo: breakTypeRepo,
		employeeRepo:  employeeRepo,
		leaveGuard:    leaveGuard,
		loc:           loc,
		now:           time.Now,
	}
}

// workDay truncates t to local midnight, the key half of the one-record-per
// (employee, day) rule.
func (s *AttendanceService) workDay(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

func (s *AttendanceService) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().UTC()

	onLeave, err := s.leaveGuard.IsOnLeave(ctx, claims.EmployeeID, now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if onLeave {
		return attendance.RecordResponse{}, leave.ErrEmployeeOnLeave
	}

	emp, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// No prior existence check: the store's unique constraint decides the
	// race and comes back as ErrAlreadyCheckedIn.
	record, err := s.recordRepo.Create(ctx, attendance.Record{
		EmployeeID: claims.EmployeeID,
		Date:       s.workDay(now),
		ShiftID:    emp.ShiftID,
		ClockIn:    &now,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(record), nil
}

func (s *AttendanceService) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now().UTC()

	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, s.workDay(now))
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if record == nil || record.ClockIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if record.ClockOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	breaks, err := s.breakRepo.ListClosedByRecord(ctx, record.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	net := attendance.NetWorkingMinutes(*record.ClockIn, now, breaks)
	record.ClockOut = &now
	record.NetWorkingMinutes = &net

	if err := s.recordRepo.Update(ctx, *record); err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(*record), nil
}

func (s *AttendanceService) TodayStatus(ctx context.Context) (attendance.TodayStatusResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, s.workDay(s.now()))
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	if record == nil {
		return attendance.TodayStatusResponse{}, nil
	}

	status := attendance.TodayStatusResponse{
		CheckedIn:  record.ClockIn != nil,
		CheckedOut: record.ClockOut != nil,
	}
	recordResp := toRecordResponse(*record)
	status.Record = &recordResp

	open, err := s.breakRepo.GetOpenByRecord(ctx, record.ID)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	if open != nil {
		breakResp := toBreakResponse(*open)
		status.ActiveBreak = &breakResp
	}

	return status, nil
}

func (s *AttendanceService) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	now := s.now().UTC()

	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, s.workDay(now))
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if record == nil || record.ClockIn == nil {
		return attendance.BreakResponse{}, attendance.ErrNotCheckedIn
	}

	breakType, err := s.breakTypeRepo.GetByName(ctx, req.BreakType)
	if err != nil {
		if errors.Is(err, attendance.ErrBreakTypeNotFound) {
			names, listErr := s.breakTypeRepo.ListNames(ctx)
			if listErr != nil {
				return attendance.BreakResponse{}, listErr
			}
			return attendance.BreakResponse{}, attendance.UnknownBreakTypeError(req.BreakType, names)
		}
		return attendance.BreakResponse{}, err
	}

	// The partial unique index on open breaks decides the race; a loser
	// comes back as ErrBreakAlreadyOpen.
	brk, err := s.breakRepo.Create(ctx, attendance.Break{
		AttendanceRecordID: record.ID,
		BreakTypeID:        breakType.ID,
		BreakStart:         now,
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	return toBreakResponse(brk), nil
}

func (s *AttendanceService) EndBreak(ctx context.Context) (attendance.BreakResponse, error) {
	claims, err := jwt.EmployeeClaims(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	now := s.now().UTC()

	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, claims.EmployeeID, s.workDay(now))
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if record == nil {
		return attendance.BreakResponse{}, attendance.ErrNotCheckedIn
	}

	open, err := s.breakRepo.GetOpenByRecord(ctx, record.ID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if open == nil {
		return attendance.BreakResponse{}, attendance.ErrNoOpenBreak
	}

	if err := s.breakRepo.Close(ctx, open.ID, now); err != nil {
		return attendance.BreakResponse{}, err
	}

	open.BreakEnd = &now
	return toBreakResponse(*open), nil
}

func toRecordResponse(record attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                record.ID,
		EmployeeID:        record.EmployeeID,
		EmployeeName:      record.EmployeeName,
		Date:              record.Date.Format("2006-01-02"),
		ShiftID:           record.ShiftID,
		NetWorkingMinutes: record.NetWorkingMinutes,
		Status:            record.Status,
		CreatedAt:         record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         record.UpdatedAt.Format(time.RFC3339),
	}
	if record.ClockIn != nil {
		v := record.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if record.ClockOut != nil {
		v := record.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}

func toBreakResponse(brk attendance.Break) attendance.BreakResponse {
	resp := attendance.BreakResponse{
		ID:                 brk.ID,
		AttendanceRecordID: brk.AttendanceRecordID,
		BreakTypeID:        brk.BreakTypeID,
		BreakStart:         brk.BreakStart.Format(time.RFC3339),
	}
	if brk.BreakEnd != nil {
		v := brk.BreakEnd.Format(time.RFC3339)
		resp.BreakEnd = &v
	}
	return resp
}
