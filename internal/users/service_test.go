package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/config"
	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/internal/testutil"
)

type fixture struct {
	svc      *Service
	accounts auth.Service
	profiles auth.Repository
	audit    auditlog.Service

	superAdmin auth.Session
	admin      auth.Session
	member     auth.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &auth.Profile{}, &auditlog.Activity{})
	profiles := auth.NewRepository(db)
	cfg := &config.Config{JWTAccessSecret: "test-secret", JWTAccessTTLHours: 1}
	accounts := auth.NewService(profiles, auth.NewMemoryTokenStore(), &notification.MemoryPublisher{}, cfg, zap.NewNop())
	audit := auditlog.NewService(auditlog.NewRepository(db), zap.NewNop())

	f := &fixture{
		svc:      NewService(profiles, accounts, authz.NewGuard(profiles, zap.NewNop()), audit, zap.NewNop()),
		accounts: accounts,
		profiles: profiles,
		audit:    audit,
	}
	f.superAdmin = f.seed(t, "root@association.org", auth.RoleSuperAdmin)
	f.admin = f.seed(t, "admin@association.org", auth.RoleAdmin)
	f.member = f.seed(t, "owner@seaside-inn.com", auth.RoleMember)
	return f
}

func (f *fixture) seed(t *testing.T, email string, role auth.Role) auth.Session {
	t.Helper()
	p, err := f.accounts.CreateProfile(context.Background(), auth.CreateProfileInput{
		DisplayName: email, Email: email, Password: "secret123", Role: role, PasswordChanged: true,
	})
	require.NoError(t, err)
	return auth.Session{ProfileID: p.ID}
}

func TestAdminCreatesUserWithTemporaryPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateUser(ctx, f.admin, CreateUserRequest{DisplayName: "Jun", Email: "jun@association.org", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, created.TemporaryPassword)
	assert.False(t, created.Profile.PasswordChanged)
	require.NotNil(t, created.Profile.CreatedBy)
	assert.Equal(t, f.admin.ProfileID, *created.Profile.CreatedBy)

	res, err := f.accounts.Login(ctx, auth.LoginInput{Email: "jun@association.org", Password: created.TemporaryPassword})
	require.NoError(t, err)
	assert.False(t, res.Profile.PasswordChanged)

	rows, err := f.audit.List(ctx, auditlog.Filter{Type: auditlog.TypeUser})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "User created: jun@association.org (admin)", rows[0].Text)
}

func TestOnlySuperAdminCreatesSuperAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateUser(ctx, f.admin, CreateUserRequest{DisplayName: "X", Email: "x@association.org", Role: auth.RoleSuperAdmin})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.svc.CreateUser(ctx, f.superAdmin, CreateUserRequest{DisplayName: "X", Email: "x@association.org", Role: auth.RoleSuperAdmin})
	assert.NoError(t, err)
}

func TestMemberCannotCreateUsers(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateUser(context.Background(), f.member, CreateUserRequest{DisplayName: "X", Email: "x@y.com", Role: auth.RoleMember})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAdminCannotChangeRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateUserRole(ctx, f.admin, f.member.ProfileID, auth.RoleAdmin)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	p, err := f.profiles.FindByID(ctx, f.member.ProfileID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleMember, p.Role)

	rows, err := f.audit.List(ctx, auditlog.Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSuperAdminChangesRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.UpdateUserRole(ctx, f.superAdmin, f.member.ProfileID, auth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, p.Role)

	rows, err := f.audit.List(ctx, auditlog.Filter{Type: auditlog.TypeUser})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Role of owner@seaside-inn.com changed from member to admin", rows[0].Text)
}

func TestCannotChangeOwnRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateUserRole(context.Background(), f.superAdmin, f.superAdmin.ProfileID, auth.RoleMember)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestUpdateRoleUnknownTarget(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateUserRole(context.Background(), f.superAdmin, "missing", auth.RoleAdmin)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
}

func TestForceSetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.ForceSetPassword(ctx, f.admin, f.member.ProfileID, "temporary1"))

	res, err := f.accounts.Login(ctx, auth.LoginInput{Email: "owner@seaside-inn.com", Password: "temporary1"})
	require.NoError(t, err)
	assert.False(t, res.Profile.PasswordChanged)

	rows, err := f.audit.List(ctx, auditlog.Filter{Type: auditlog.TypeSecurity})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	err = f.svc.ForceSetPassword(ctx, f.admin, f.superAdmin.ProfileID, "temporary1")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	err = f.svc.ForceSetPassword(ctx, f.member, f.admin.ProfileID, "temporary1")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestListUsersStaffOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profiles, total, err := f.svc.ListUsers(ctx, f.admin, auth.ProfileFilter{Role: auth.RoleMember})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, profiles, 1)

	_, _, err = f.svc.ListUsers(ctx, f.member, auth.ProfileFilter{})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
