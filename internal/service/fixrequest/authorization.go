package fixrequest

import (
	"context"

	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/fixrequest"
	"github.com/saifullah-max/pegahcm-backend-sub000/internal/domain/user"
)

// hierarchyGate authorizes approvals by sub-role level. Levels come from the
// store on every check, never from token claims.
type hierarchyGate struct {
	userRepo user.Repository
}

func NewHierarchyGate(userRepo user.Repository) fixrequest.ApprovalGate {
	return &hierarchyGate{userRepo: userRepo}
}

func (g *hierarchyGate) CanApprove(ctx context.Context, reviewerID string, request fixrequest.FixRequest) (bool, error) {
	reviewer, err := g.userRepo.GetByID(ctx, reviewerID)
	if err != nil {
		return false, err
	}

	if reviewer.IsAdmin() {
		return true, nil
	}

	// Both sides need a sub-role level; a non-admin without one never
	// approves anything.
	if reviewer.SubRoleLevel == nil || request.RequesterLevel == nil {
		return false, nil
	}

	return user.OutranksLevel(*reviewer.SubRoleLevel, *request.RequesterLevel), nil
}
