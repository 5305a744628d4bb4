package fixrequest

import (
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/pkg/validator"
)

// ========================================
// FIX REQUEST DTOs
// ========================================

// RequestedBreakPayload carries a break correction as submitted. Times are
// "HH:MM" time-of-day values anchored onto the request date by the service.
type RequestedBreakPayload struct {
	Start       string  `json:"start"`
	End         *string `json:"end,omitempty"`
	BreakTypeID *string `json:"break_type_id,omitempty"`
}

type SubmitRequest struct {
	Date              string                  `json:"date"` // YYYY-MM-DD
	RequestType       string                  `json:"request_type"`
	RequestedCheckIn  *string                 `json:"requested_check_in,omitempty"`  // HH:MM
	RequestedCheckOut *string                 `json:"requested_check_out,omitempty"` // HH:MM
	RequestedBreaks   []RequestedBreakPayload `json:"requested_breaks,omitempty"`
	Reason            string                  `json:"reason"`
}

var validRequestTypes = []string{string(TypeCheckIn), string(TypeCheckOut), string(TypeBoth)}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid date in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(r.RequestType, validRequestTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_type",
			Message: "request_type must be one of: check_in, check_out, both",
		})
	}

	rt := RequestType(r.RequestType)
	if rt.WantsCheckIn() && r.RequestedCheckIn == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_check_in",
			Message: "requested_check_in is required for this request type",
		})
	}
	if rt.WantsCheckOut() && r.RequestedCheckOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_check_out",
			Message: "requested_check_out is required for this request type",
		})
	}

	if r.RequestedCheckIn != nil {
		if _, ok := validator.IsValidClock(*r.RequestedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in",
				Message: "requested_check_in must be a time in HH:MM format",
			})
		}
	}
	if r.RequestedCheckOut != nil {
		if _, ok := validator.IsValidClock(*r.RequestedCheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_out",
				Message: "requested_check_out must be a time in HH:MM format",
			})
		}
	}

	for _, b := range r.RequestedBreaks {
		if b.BreakTypeID == nil || validator.IsEmpty(*b.BreakTypeID) {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_breaks",
				Message: "break_type_id is required on each break",
			})
			break
		}
		if _, ok := validator.IsValidClock(b.Start); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_breaks",
				Message: "break start must be a time in HH:MM format",
			})
			break
		}
		if b.End != nil {
			if _, ok := validator.IsValidClock(*b.End); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   "requested_breaks",
					Message: "break end must be a time in HH:MM format",
				})
				break
			}
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Decision string  `json:"decision"` // approved | rejected
	Remarks  *string `json:"remarks,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != string(StatusApproved) && r.Decision != string(StatusRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be either approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EditRequest struct {
	Status            *string `json:"status,omitempty"`
	Reason            *string `json:"reason,omitempty"`
	RequestType       *string `json:"request_type,omitempty"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`  // HH:MM
	RequestedCheckOut *string `json:"requested_check_out,omitempty"` // HH:MM
	Remarks           *string `json:"remarks,omitempty"`
}

func (r *EditRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status,
		[]string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if r.RequestType != nil && !validator.IsInSlice(*r.RequestType, validRequestTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_type",
			Message: "request_type must be one of: check_in, check_out, both",
		})
	}

	if r.RequestedCheckIn != nil {
		if _, ok := validator.IsValidClock(*r.RequestedCheckIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in",
				Message: "requested_check_in must be a time in HH:MM format",
			})
		}
	}
	if r.RequestedCheckOut != nil {
		if _, ok := validator.IsValidClock(*r.RequestedCheckOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_out",
				Message: "requested_check_out must be a time in HH:MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Status *string

	// MinRequesterLevel limits results to requests whose requester's
	// sub-role level is strictly greater than this value. nil means no
	// hierarchy filter (admin reviewers).
	MinRequesterLevel *int

	Page  int
	Limit int
}

type FixRequestResponse struct {
	ID                 string                  `json:"id"`
	EmployeeID         string                  `json:"employee_id"`
	EmployeeName       *string                 `json:"employee_name,omitempty"`
	Date               string                  `json:"date"`
	RequestType        RequestType             `json:"request_type"`
	RequestedCheckIn   *string                 `json:"requested_check_in,omitempty"`
	RequestedCheckOut  *string                 `json:"requested_check_out,omitempty"`
	RequestedBreaks    []RequestedBreakPayload `json:"requested_breaks,omitempty"`
	Reason             string                  `json:"reason"`
	Status             Status                  `json:"status"`
	AttendanceRecordID *string                 `json:"attendance_record_id,omitempty"`
	ReviewedBy         *string                 `json:"reviewed_by,omitempty"`
	ReviewedAt         *string                 `json:"reviewed_at,omitempty"`
	Remarks            *string                 `json:"remarks,omitempty"`
	CreatedAt          string                  `json:"created_at"`
	UpdatedAt          string                  `json:"updated_at"`
}

type ListResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	FixRequests []FixRequestResponse `json:"fix_requests"`
}
