package employee

import "time"

type Employee struct {
	ID              string
	UserID          *string
	ShiftID         *string
	DepartmentID    string
	SubDepartmentID *string
	FullName        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
