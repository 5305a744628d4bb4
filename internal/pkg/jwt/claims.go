package jwt

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
)

var (
	// ErrNoIdentity is returned when no authenticated identity is present
	ErrNoIdentity = errors.New("no authenticated identity")

	// ErrNoEmployee is returned when the identity has no employee profile
	ErrNoEmployee = errors.New("user has no employee profile")
)

// Claims is the authenticated identity carried in the access token.
// Sub-role levels are deliberately absent; authorization loads them fresh
// from the store so a stale token cannot widen authority.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       user.Role
}

// ClaimsFromContext extracts the authenticated identity placed in the
// context by the verifier middleware.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, ErrNoIdentity
	}

	userID, _ := raw["user_id"].(string)
	if userID == "" {
		return Claims{}, ErrNoIdentity
	}

	c := Claims{UserID: userID}
	if employeeID, ok := raw["employee_id"].(string); ok {
		c.EmployeeID = employeeID
	}
	if role, ok := raw["role"].(string); ok {
		c.Role = user.Role(role)
	}

	return c, nil
}

// EmployeeClaims is ClaimsFromContext for endpoints that require the caller
// to be linked to an employee profile.
func EmployeeClaims(ctx context.Context) (Claims, error) {
	c, err := ClaimsFromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	if c.EmployeeID == "" {
		return Claims{}, ErrNoEmployee
	}
	return c, nil
}
