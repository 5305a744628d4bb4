package response

import (
	"errors"
	"net/http"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/attendance"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/employee"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/leave"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/shift"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/jwt"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, jwt.ErrNoIdentity):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, jwt.ErrNoEmployee):
		Forbidden(w, "No employee profile linked to this account")

	// Reference data
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Clock sessions and breaks
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No break is in progress")
	case errors.Is(err, attendance.ErrBreakTypeNotFound):
		NotFound(w, "Break type not found")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrEmployeeOnLeave):
		Forbidden(w, "An approved leave covers this date")

	// Fix requests
	case errors.Is(err, fixrequest.ErrFixRequestNotFound):
		NotFound(w, "Fix request not found")
	case errors.Is(err, fixrequest.ErrNotPending):
		Conflict(w, "Fix request has already been decided")
	case errors.Is(err, fixrequest.ErrApprovalNotAllowed):
		Forbidden(w, "Not authorized to decide this fix request")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
