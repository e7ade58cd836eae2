package users

import (
	"context"
	"crypto/rand"
	"fmt"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

type Service struct {
	profiles auth.Repository
	accounts auth.Service
	guard    *authz.Guard
	audit    auditlog.Recorder
	logger   *zap.Logger
}

func NewService(profiles auth.Repository, accounts auth.Service, guard *authz.Guard, audit auditlog.Recorder, logger *zap.Logger) *Service {
	return &Service{
		profiles: profiles,
		accounts: accounts,
		guard:    guard,
		audit:    audit,
		logger:   logger,
	}
}

// ================== USER MANAGEMENT ==================

// CreateUser opens an account with a temporary password. The new user must
// change it at first sign-in. Only a super-admin can create another
// super-admin.
func (s *Service) CreateUser(ctx context.Context, sess auth.Session, req CreateUserRequest) (*CreatedUser, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.CreateUsers)
	if err != nil {
		return nil, err
	}
	if !req.Role.Valid() {
		return nil, apperror.Validation("unknown role %q", req.Role)
	}
	if req.Role == auth.RoleSuperAdmin && actor.Role != auth.RoleSuperAdmin {
		return nil, apperror.Unauthorized("only a super-admin can create a super-admin")
	}

	password := req.Password
	if password == "" {
		password = rand.Text()
	}

	p, err := s.accounts.CreateProfile(ctx, auth.CreateProfileInput{
		DisplayName:     req.DisplayName,
		Email:           req.Email,
		Password:        password,
		Role:            req.Role,
		PasswordChanged: false,
		CreatedBy:       &actor.ID,
	})
	if err != nil {
		return nil, err
	}

	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUser,
		Text:    fmt.Sprintf("User created: %s (%s)", p.Email, p.Role),
		ActorID: &actor.ID,
	})
	s.logger.Info("user created",
		zap.String("profile_id", p.ID),
		zap.String("role", string(p.Role)),
		zap.String("actor_id", actor.ID),
	)
	return &CreatedUser{Profile: p, TemporaryPassword: password}, nil
}

// Get users with pagination and filters
func (s *Service) ListUsers(ctx context.Context, sess auth.Session, filter auth.ProfileFilter) ([]auth.Profile, int64, error) {
	if _, err := s.guard.Authorize(ctx, sess, authz.CreateUsers); err != nil {
		return nil, 0, err
	}
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, 0, apperror.Validation("unknown role %q", filter.Role)
	}
	return s.profiles.List(ctx, filter)
}

// UpdateUserRole changes another user's role. Super-admin only, and never
// on the caller's own profile.
func (s *Service) UpdateUserRole(ctx context.Context, sess auth.Session, targetID string, role auth.Role) (*auth.Profile, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.ChangeRoles)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperror.Validation("unknown role %q", role)
	}
	if targetID == actor.ID {
		return nil, apperror.Validation("you cannot change your own role")
	}

	target, err := s.profiles.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	previous := target.Role
	if err := s.profiles.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUser,
		Text:    fmt.Sprintf("Role of %s changed from %s to %s", target.Email, previous, role),
		ActorID: &actor.ID,
	})
	return s.profiles.FindByID(ctx, targetID)
}

// ================== PASSWORD RESET ==================

// ForceSetPassword replaces a user's password without the old one. The user
// is asked to pick a new password at next sign-in. Admins cannot do this to
// a super-admin.
func (s *Service) ForceSetPassword(ctx context.Context, sess auth.Session, targetID, password string) error {
	actor, err := s.guard.Authorize(ctx, sess, authz.ForceSetPassword)
	if err != nil {
		return err
	}

	target, err := s.profiles.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == auth.RoleSuperAdmin && actor.Role != auth.RoleSuperAdmin {
		return apperror.Unauthorized("only a super-admin can reset a super-admin password")
	}

	if err := s.accounts.AdminSetPassword(ctx, targetID, password); err != nil {
		return err
	}

	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeSecurity,
		Text:    fmt.Sprintf("Password reset by staff for %s", target.Email),
		ActorID: &actor.ID,
	})
	return nil
}
