package notification

import "time"

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeFixRequestSubmitted    NotificationType = "fix_request_submitted"
	TypeFixRequestDecided      NotificationType = "fix_request_decided"
	TypeAttendanceAutoCheckout NotificationType = "attendance_auto_checkout"
	TypeLeaveRequest           NotificationType = "leave_request"
)

// Scope selects the audience of a notification fan-out.
type Scope string

const (
	// ScopeUsers targets the user ids given directly
	ScopeUsers Scope = "users"
	// ScopeDepartmentManagers targets managers of the given department ids
	ScopeDepartmentManagers Scope = "department_managers"
	// ScopeSubDepartmentLeads targets leads of the given sub-department ids
	ScopeSubDepartmentLeads Scope = "sub_department_leads"
	// ScopeHRDirectors targets all HR directors; target ids are ignored
	ScopeHRDirectors Scope = "hr_directors"
)

// Notification is one delivered notice. How it reaches the recipient beyond
// the in-process hub is someone else's problem.
type Notification struct {
	ID          string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Visibility  string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
