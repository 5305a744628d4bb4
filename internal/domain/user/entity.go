package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"       // full access, bypasses hierarchy checks
	RoleHRDirector Role = "hr_director" // receives HR-wide approval notices
	RoleManager    Role = "manager"     // department-level approver
	RoleLead       Role = "lead"        // sub-department approver
	RoleEmployee   Role = "employee"
)

// SubRole carries the numeric authority level. Lower level = higher authority.
type SubRole struct {
	ID        string
	Name      string
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	SubRoleID *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	SubRoleLevel *int
}

// IsAdmin checks if user holds the top-level administrative role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// OutranksLevel reports whether a reviewer at reviewerLevel has authority over
// a requester at requesterLevel. The comparison is kept in one place because
// the direction is easy to invert by accident: a LOWER number means HIGHER
// authority, and equal levels never outrank each other.
func OutranksLevel(reviewerLevel, requesterLevel int) bool {
	return reviewerLevel < requesterLevel
}
