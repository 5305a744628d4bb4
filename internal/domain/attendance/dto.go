package attendance

import (
	"fmt"
	"strings"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type StartBreakRequest struct {
	BreakType string `json:"break_type"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BreakType) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UnknownBreakTypeError builds the validation error returned when a break
// type name does not resolve; the message enumerates every valid name.
func UnknownBreakTypeError(name string, validNames []string) error {
	return validator.ValidationErrors{{
		Field:   "break_type",
		Message: fmt.Sprintf("unknown break type %q; valid types: %s", name, strings.Join(validNames, ", ")),
	}}
}

type RecordResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	Date              string  `json:"date"`
	ShiftID           *string `json:"shift_id,omitempty"`
	ClockIn           *string `json:"clock_in,omitempty"`
	ClockOut          *string `json:"clock_out,omitempty"`
	NetWorkingMinutes *int    `json:"net_working_minutes,omitempty"`
	Status            Status  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type BreakResponse struct {
	ID                 string  `json:"id"`
	AttendanceRecordID string  `json:"attendance_record_id"`
	BreakTypeID        string  `json:"break_type_id"`
	BreakStart         string  `json:"break_start"`
	BreakEnd           *string `json:"break_end,omitempty"`
}

type TodayStatusResponse struct {
	CheckedIn   bool            `json:"checked_in"`
	CheckedOut  bool            `json:"checked_out"`
	Record      *RecordResponse `json:"record,omitempty"`
	ActiveBreak *BreakResponse  `json:"active_break,omitempty"`
}
