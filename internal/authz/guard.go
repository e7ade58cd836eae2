// Package authz decides whether the signed-in caller may perform an action.
// The role is always re-read from the profiles table at the moment of the
// action; nothing cached in a token or on the client is trusted.
package authz

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auth"
)

type Capability string

const (
	EditOwn                Capability = "edit_own"
	TransitionApplications Capability = "transition_applications"
	DeleteApplications     Capability = "delete_applications"
	ManageContent          Capability = "manage_content"
	CreateUsers            Capability = "create_users"
	ChangeRoles            Capability = "change_roles"
	ForceSetPassword       Capability = "force_set_password"
	ViewActivity           Capability = "view_activity"
)

var (
	everyone  = []auth.Role{auth.RoleMember, auth.RoleAdmin, auth.RoleSuperAdmin}
	staff     = []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin}
	superOnly = []auth.Role{auth.RoleSuperAdmin}
)

var matrix = map[Capability][]auth.Role{
	EditOwn:                everyone,
	TransitionApplications: staff,
	DeleteApplications:     staff,
	ManageContent:          staff,
	CreateUsers:            staff,
	ChangeRoles:            superOnly,
	ForceSetPassword:       staff,
	ViewActivity:           staff,
}

// Allows reports whether role holds capability c.
func Allows(role auth.Role, c Capability) bool {
	for _, r := range matrix[c] {
		if r == role {
			return true
		}
	}
	return false
}

// ProfileSource reads profiles straight from persistence.
type ProfileSource interface {
	FindByID(ctx context.Context, id string) (*auth.Profile, error)
}

type Guard struct {
	profiles ProfileSource
	logger   *zap.Logger
}

func NewGuard(profiles ProfileSource, logger *zap.Logger) *Guard {
	return &Guard{profiles: profiles, logger: logger}
}

// Authorize returns the caller's freshly loaded profile when it holds c.
// A missing session is ErrUnauthenticated. A failed lookup or an
// insufficient role is ErrUnauthorized.
func (g *Guard) Authorize(ctx context.Context, sess auth.Session, c Capability) (*auth.Profile, error) {
	if !sess.Present() {
		return nil, apperror.ErrUnauthenticated
	}

	p, err := g.profiles.FindByID(ctx, sess.ProfileID)
	if err != nil {
		// the cause can carry driver text; it goes to the log only
		g.logger.Warn("profile lookup failed",
			zap.String("profile_id", sess.ProfileID),
			zap.String("capability", string(c)),
			zap.Error(err),
		)
		return nil, apperror.Unauthorized("profile lookup failed")
	}
	if !Allows(p.Role, c) {
		return nil, apperror.Unauthorized(fmt.Sprintf("role %s cannot %s", p.Role, c.describe()))
	}
	return p, nil
}

func (c Capability) describe() string {
	switch c {
	case EditOwn:
		return "edit this record"
	case TransitionApplications:
		return "change application status"
	case DeleteApplications:
		return "delete applications"
	case ManageContent:
		return "manage events and news"
	case CreateUsers:
		return "create users"
	case ChangeRoles:
		return "change user roles"
	case ForceSetPassword:
		return "set passwords for other users"
	case ViewActivity:
		return "view the activity log"
	}
	return string(c)
}
