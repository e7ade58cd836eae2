package hotel

import (
	"bytes"
	"context"
	"errors"
	"strings"
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
	"github.com/sharath018/hotel-association-backend/pkg/storage"
)

type fixture struct {
	svc       *Service
	repo      Repository
	profiles  auth.Repository
	audit     auditlog.Service
	auditRepo *switchableAuditRepo
	publisher *notification.MemoryPublisher

	admin  auth.Session
	member auth.Session
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, nil)
}

// newFixtureWith lets a test wrap the real repository to inject failures.
func newFixtureWith(t *testing.T, wrap func(Repository) Repository) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &Application{}, &auth.Profile{}, &auditlog.Activity{})

	repo := NewRepository(db)
	if wrap != nil {
		repo = wrap(repo)
	}
	profiles := auth.NewRepository(db)
	auditRepo := &switchableAuditRepo{Repository: auditlog.NewRepository(db)}
	audit := auditlog.NewService(auditRepo, zap.NewNop())
	pub := &notification.MemoryPublisher{}
	cfg := &config.Config{JWTAccessSecret: "test-secret", JWTAccessTTLHours: 1}
	accounts := auth.NewService(profiles, auth.NewMemoryTokenStore(), pub, cfg, zap.NewNop())

	store, err := storage.NewLocal(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	f := &fixture{
		svc:       NewService(repo, authz.NewGuard(profiles, zap.NewNop()), accounts, audit, store, pub, zap.NewNop()),
		repo:      repo,
		profiles:  profiles,
		audit:     audit,
		auditRepo: auditRepo,
		publisher: pub,
	}
	f.admin = f.seedProfile(t, "admin@association.org", auth.RoleAdmin)
	f.member = f.seedProfile(t, "owner@seaside-inn.com", auth.RoleMember)
	return f
}

func (f *fixture) seedProfile(t *testing.T, email string, role auth.Role) auth.Session {
	t.Helper()
	p := &auth.Profile{DisplayName: email, Email: email, PasswordHash: "x", Role: role, PasswordChanged: true}
	require.NoError(t, f.profiles.Create(context.Background(), p))
	return auth.Session{ProfileID: p.ID}
}

func (f *fixture) submit(t *testing.T, sess auth.Session, name string) *Application {
	t.Helper()
	res, err := f.svc.Submit(context.Background(), sess, SubmitInput{ProfileInput: validProfile(name)})
	require.NoError(t, err)
	return res.Application
}

func (f *fixture) activities(t *testing.T) []auditlog.Activity {
	t.Helper()
	rows, err := f.audit.List(context.Background(), auditlog.Filter{})
	require.NoError(t, err)
	return rows
}

// listed reports whether id would appear in the public directory, which
// shows approved applications only.
func (f *fixture) listed(t *testing.T, id string) bool {
	t.Helper()
	apps, err := f.repo.ListAll(context.Background())
	require.NoError(t, err)
	for _, a := range apps {
		if a.ID == id {
			return a.Status == StatusApproved
		}
	}
	return false
}

// switchableAuditRepo fails activity writes while fail is set.
type switchableAuditRepo struct {
	auditlog.Repository
	fail bool
}

func (r *switchableAuditRepo) Create(ctx context.Context, a *auditlog.Activity) error {
	if r.fail {
		return apperror.Persistence("create activity", errors.New("disk full"))
	}
	return r.Repository.Create(ctx, a)
}

func validProfile(name string) ProfileInput {
	return ProfileInput{
		Name:         name,
		City:         "Dumaguete",
		ContactEmail: "frontdesk@" + strings.ToLower(strings.ReplaceAll(name, " ", "-")) + ".com",
		StarRating:   4,
		RoomTypes:    []string{"Deluxe", "Suite", "Deluxe"},
	}
}

func TestSubmitStartsPendingAndAudits(t *testing.T) {
	f := newFixture(t)

	app := f.submit(t, f.member, "Seaside Inn")
	assert.Equal(t, StatusPending, app.Status)
	assert.True(t, app.IsOwnedBy(f.member.ProfileID))
	assert.Equal(t, []string{"Deluxe", "Suite"}, []string(app.RoomTypes))

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, auditlog.TypeRegistration, rows[0].Type)
	assert.Equal(t, "New registration: Seaside Inn", rows[0].Text)

	facts := f.publisher.Facts()
	require.Len(t, facts, 1)
	assert.Equal(t, notification.KindApplicationSubmitted, facts[0].Kind)
}

func TestSubmitWithAccountCreatesMember(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Submit(context.Background(), auth.Session{}, SubmitInput{
		ProfileInput: validProfile("Harbor View"),
		Account:      &AccountInput{DisplayName: "Ana", Email: "ana@harbor.com", Password: "secret123"},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Application.OwnerID)

	owner, err := f.profiles.FindByID(context.Background(), *res.Application.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleMember, owner.Role)
	assert.Equal(t, "ana@harbor.com", owner.Email)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := validProfile("Seaside Inn")
	bad.StarRating = 6
	_, err := f.svc.Submit(ctx, f.member, SubmitInput{ProfileInput: bad})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	bad = validProfile("Seaside Inn")
	bad.ContactEmail = "not-an-email"
	_, err = f.svc.Submit(ctx, f.member, SubmitInput{ProfileInput: bad})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	assert.Empty(t, f.activities(t))
}

func TestApproveAuditsAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	res, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Application.Status)
	assert.Equal(t, notification.LevelSuccess, res.Notice.Level)
	require.NotNil(t, res.Application.ReviewedBy)
	assert.Equal(t, f.admin.ProfileID, *res.Application.ReviewedBy)

	rows := f.activities(t)
	require.Len(t, rows, 2)
	assert.Equal(t, auditlog.TypeApproval, rows[0].Type)
	assert.Equal(t, "Seaside Inn was approved", rows[0].Text)
	require.NotNil(t, rows[0].ActorID)
	assert.Equal(t, f.admin.ProfileID, *rows[0].ActorID)

	facts := f.publisher.Facts()
	assert.Equal(t, notification.KindApplicationApproved, facts[len(facts)-1].Kind)
}

func TestRejectThenRestore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	res, err := f.svc.Reject(ctx, f.admin, app.ID, "missing permit")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Application.Status)
	assert.Equal(t, "missing permit", res.Application.RejectionReason)

	res, err = f.svc.RestoreToPending(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Application.Status)
	assert.Empty(t, res.Application.RejectionReason)

	rows := f.activities(t)
	require.Len(t, rows, 3)
	assert.Equal(t, auditlog.TypeUpdate, rows[0].Type)
	assert.Equal(t, "Seaside Inn moved back to Pending", rows[0].Text)
	assert.Equal(t, auditlog.TypeRejection, rows[1].Type)
}

func TestApprovedCanMoveBackToPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	res, err := f.svc.RestoreToPending(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, res.Application.Status)
}

func TestRestoreFromPendingIsRejected(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.RestoreToPending(context.Background(), f.admin, app.ID)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Len(t, f.activities(t), 1)
}

func TestReapproveIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	res, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Application.Status)

	approvals, err := f.audit.List(ctx, auditlog.Filter{Type: auditlog.TypeApproval})
	require.NoError(t, err)
	assert.Len(t, approvals, 2)
}

func TestMemberCannotTransition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(ctx, f.member, app.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	_, err = f.svc.Reject(ctx, f.member, app.ID, "")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	stored, err := f.repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Len(t, f.activities(t), 1)
}

func TestDemotedAdminLosesAccessImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	require.NoError(t, f.profiles.UpdateRole(ctx, f.admin.ProfileID, auth.RoleMember))

	_, err := f.svc.Approve(ctx, f.admin, app.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestAnonymousCannotTransition(t *testing.T) {
	f := newFixture(t)
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(context.Background(), auth.Session{}, app.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestTransitionUnknownApplication(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Approve(context.Background(), f.admin, "does-not-exist")
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
	assert.NotErrorIs(t, err, apperror.ErrUnauthorized)
	assert.Empty(t, f.activities(t))
}

type failingStatusRepo struct {
	Repository
}

func (failingStatusRepo) UpdateStatus(context.Context, string, Status, Review) error {
	return apperror.Persistence("update hotel status", errors.New("connection reset"))
}

func TestTransitionPersistenceFailureWritesNoAudit(t *testing.T) {
	f := newFixtureWith(t, func(r Repository) Repository { return failingStatusRepo{r} })
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(context.Background(), f.admin, app.ID)
	assert.ErrorIs(t, err, apperror.ErrPersistence)
	assert.Equal(t, "could not save changes", apperror.Message(err))
	assert.Len(t, f.activities(t), 1)
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name      string
		from      Status
		act       func(f *fixture, id string) (*Result, error)
		want      Status
		auditType auditlog.Type
		text      string
		listed    bool
	}{
		{
			name:      "pending to approved",
			from:      StatusPending,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.Approve(context.Background(), f.admin, id) },
			want:      StatusApproved,
			auditType: auditlog.TypeApproval,
			text:      "Seaside Inn was approved",
			listed:    true,
		},
		{
			name:      "pending to rejected",
			from:      StatusPending,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.Reject(context.Background(), f.admin, id, "no permit") },
			want:      StatusRejected,
			auditType: auditlog.TypeRejection,
			text:      "Seaside Inn was rejected",
		},
		{
			name:      "rejected to pending",
			from:      StatusRejected,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.RestoreToPending(context.Background(), f.admin, id) },
			want:      StatusPending,
			auditType: auditlog.TypeUpdate,
			text:      "Seaside Inn moved back to Pending",
		},
		{
			name:      "rejected to approved",
			from:      StatusRejected,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.Approve(context.Background(), f.admin, id) },
			want:      StatusApproved,
			auditType: auditlog.TypeApproval,
			text:      "Seaside Inn was approved",
			listed:    true,
		},
		{
			name:      "approved to pending",
			from:      StatusApproved,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.RestoreToPending(context.Background(), f.admin, id) },
			want:      StatusPending,
			auditType: auditlog.TypeUpdate,
			text:      "Seaside Inn moved back to Pending",
		},
		{
			name:      "approved to rejected",
			from:      StatusApproved,
			act:       func(f *fixture, id string) (*Result, error) { return f.svc.Reject(context.Background(), f.admin, id, "closed") },
			want:      StatusRejected,
			auditType: auditlog.TypeRejection,
			text:      "Seaside Inn was rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			app := f.submit(t, f.member, "Seaside Inn")

			switch tt.from {
			case StatusApproved:
				_, err := f.svc.Approve(ctx, f.admin, app.ID)
				require.NoError(t, err)
			case StatusRejected:
				_, err := f.svc.Reject(ctx, f.admin, app.ID, "")
				require.NoError(t, err)
			}
			before := len(f.activities(t))

			res, err := tt.act(f, app.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Application.Status)

			stored, err := f.repo.FindByID(ctx, app.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)

			rows := f.activities(t)
			require.Len(t, rows, before+1)
			assert.Equal(t, tt.auditType, rows[0].Type)
			assert.Equal(t, tt.text, rows[0].Text)
			assert.Contains(t, rows[0].Text, app.Name)

			assert.Equal(t, tt.listed, f.listed(t, app.ID))
		})
	}
}

func TestApprovedToRejectedLeavesDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	require.True(t, f.listed(t, app.ID))

	res, err := f.svc.Reject(ctx, f.admin, app.ID, "licence lapsed")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Application.Status)
	assert.Equal(t, "licence lapsed", res.Application.RejectionReason)
	assert.False(t, f.listed(t, app.ID))

	rejections, err := f.audit.List(ctx, auditlog.Filter{Type: auditlog.TypeRejection})
	require.NoError(t, err)
	require.Len(t, rejections, 1)
	assert.Equal(t, "Seaside Inn was rejected", rejections[0].Text)
}

func TestTransitionSucceedsWhenActivityWriteFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	f.auditRepo.fail = true
	res, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, res.Application.Status)
	assert.Equal(t, notification.LevelSuccess, res.Notice.Level)
	f.auditRepo.fail = false

	stored, err := f.repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, auditlog.TypeRegistration, rows[0].Type)
}

// vanishingStatusRepo behaves as if the row was deleted between the read
// and the status write.
type vanishingStatusRepo struct {
	Repository
}

func (vanishingStatusRepo) UpdateStatus(context.Context, string, Status, Review) error {
	return apperror.ErrNotFoundOrForbidden
}

func TestTransitionOnVanishedRowIsNotFound(t *testing.T) {
	f := newFixtureWith(t, func(r Repository) Repository { return vanishingStatusRepo{r} })
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Approve(context.Background(), f.admin, app.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)

	rows := f.activities(t)
	require.Len(t, rows, 1)
	assert.Equal(t, auditlog.TypeRegistration, rows[0].Type)
}

// rereadFailsRepo fails every FindByID once a status write has gone through.
type rereadFailsRepo struct {
	Repository
	written bool
}

func (r *rereadFailsRepo) UpdateStatus(ctx context.Context, id string, status Status, review Review) error {
	if err := r.Repository.UpdateStatus(ctx, id, status, review); err != nil {
		return err
	}
	r.written = true
	return nil
}

func (r *rereadFailsRepo) FindByID(ctx context.Context, id string) (*Application, error) {
	if r.written {
		return nil, apperror.Persistence("find hotel", errors.New("connection reset"))
	}
	return r.Repository.FindByID(ctx, id)
}

func TestTransitionRereadFailureStillReportsSuccess(t *testing.T) {
	var wrapped *rereadFailsRepo
	f := newFixtureWith(t, func(r Repository) Repository {
		wrapped = &rereadFailsRepo{Repository: r}
		return wrapped
	})
	app := f.submit(t, f.member, "Seaside Inn")

	res, err := f.svc.Reject(context.Background(), f.admin, app.ID, "no permit")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, res.Application.Status)
	assert.Equal(t, "Seaside Inn", res.Application.Name)
	assert.Equal(t, "no permit", res.Application.RejectionReason)
	require.NotNil(t, res.Application.ReviewedBy)
	assert.Equal(t, f.admin.ProfileID, *res.Application.ReviewedBy)
	assert.Equal(t, notification.LevelInfo, res.Notice.Level)

	wrapped.written = false
	stored, err := f.repo.FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, stored.Status)

	rows := f.activities(t)
	require.Len(t, rows, 2)
	assert.Equal(t, auditlog.TypeRejection, rows[0].Type)
}

func TestStaffCannotEditMemberApplication(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	got, err := f.svc.Get(ctx, f.admin, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seaside Inn", got.Name)

	_, err = f.svc.UpdateOwn(ctx, f.admin, app.ID, validProfile("Renamed By Staff"))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.svc.AttachImage(ctx, f.admin, app.ID, Upload{Filename: "lobby.jpg", Size: 3, Body: bytes.NewBufferString("img")})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.svc.AttachDocument(ctx, f.admin, app.ID, "business_permit", Upload{Filename: "permit.pdf", Size: 4, Body: bytes.NewBufferString("%PDF")})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	stored, err := f.repo.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seaside Inn", stored.Name)
	assert.Empty(t, stored.Images)
	assert.Empty(t, stored.DocumentMap())
	assert.Len(t, f.activities(t), 1)
}

func TestMemberListsOnlyOwnApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.seedProfile(t, "other@harbor.com", auth.RoleMember)

	f.submit(t, f.member, "Seaside Inn")
	f.submit(t, other, "Harbor View")

	apps, total, err := f.svc.List(ctx, f.member, Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, apps, 1)
	assert.Equal(t, "Seaside Inn", apps[0].Name)

	apps, total, err = f.svc.List(ctx, f.admin, Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, apps, 2)
}

func TestMemberCannotSeeOrEditOthers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.seedProfile(t, "other@harbor.com", auth.RoleMember)
	app := f.submit(t, other, "Harbor View")

	_, err := f.svc.Get(ctx, f.member, app.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)

	_, err = f.svc.UpdateOwn(ctx, f.member, app.ID, validProfile("Stolen"))
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)
}

func TestUpdateOwnKeepsStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")
	_, err := f.svc.Approve(ctx, f.admin, app.ID)
	require.NoError(t, err)

	in := validProfile("Seaside Inn and Spa")
	in.RoomCount = 40
	res, err := f.svc.UpdateOwn(ctx, f.member, app.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Seaside Inn and Spa", res.Application.Name)
	assert.Equal(t, 40, res.Application.RoomCount)
	assert.Equal(t, StatusApproved, res.Application.Status)

	rows := f.activities(t)
	assert.Equal(t, auditlog.TypeUpdate, rows[0].Type)
}

func TestAttachImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	res, err := f.svc.AttachImage(ctx, f.member, app.ID, Upload{Filename: "lobby.jpg", Size: 3, Body: bytes.NewBufferString("img")})
	require.NoError(t, err)
	require.Len(t, res.Application.Images, 1)
	assert.True(t, strings.HasPrefix(res.Application.Images[0], "http://localhost:8080/uploads/hotels/"+app.ID+"/images/"))

	_, err = f.svc.AttachImage(ctx, f.member, app.ID, Upload{Filename: "lobby.gif", Size: 3, Body: bytes.NewBufferString("img")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = f.svc.AttachImage(ctx, f.member, app.ID, Upload{Filename: "huge.jpg", Size: storage.MaxImageSize + 1, Body: bytes.NewBufferString("img")})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	res, err = f.svc.RemoveImage(ctx, f.member, app.ID, res.Application.Images[0])
	require.NoError(t, err)
	assert.Empty(t, res.Application.Images)
}

func TestAttachImageLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	for i := 0; i < MaxImages; i++ {
		_, err := f.svc.AttachImage(ctx, f.member, app.ID, Upload{Filename: "room.png", Size: 3, Body: bytes.NewBufferString("img")})
		require.NoError(t, err)
	}
	_, err := f.svc.AttachImage(ctx, f.member, app.ID, Upload{Filename: "room.png", Size: 3, Body: bytes.NewBufferString("img")})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestAttachDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	res, err := f.svc.AttachDocument(ctx, f.member, app.ID, "business_permit", Upload{Filename: "permit.pdf", Size: 4, Body: bytes.NewBufferString("%PDF")})
	require.NoError(t, err)
	assert.Contains(t, res.Application.DocumentMap()["business_permit"], "/documents/")

	_, err = f.svc.AttachDocument(ctx, f.member, app.ID, "birth_certificate", Upload{Filename: "x.pdf", Size: 4, Body: bytes.NewBufferString("%PDF")})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDeleteIsStaffOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	app := f.submit(t, f.member, "Seaside Inn")

	_, err := f.svc.Delete(ctx, f.member, app.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.svc.Delete(ctx, f.admin, app.ID)
	require.NoError(t, err)

	_, err = f.repo.FindByID(ctx, app.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFoundOrForbidden)

	rows := f.activities(t)
	assert.Equal(t, auditlog.TypeDeletion, rows[0].Type)
	assert.Equal(t, "Seaside Inn was deleted", rows[0].Text)
}

func TestCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.submit(t, f.member, "Seaside Inn")
	b := f.submit(t, f.member, "Harbor View")
	f.submit(t, f.member, "Hillside Lodge")

	_, err := f.svc.Approve(ctx, f.admin, a.ID)
	require.NoError(t, err)
	_, err = f.svc.Reject(ctx, f.admin, b.ID, "")
	require.NoError(t, err)

	counts, err := f.svc.Counts(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, StatusCounts{Pending: 1, Approved: 1, Rejected: 1}, *counts)

	_, err = f.svc.Counts(ctx, f.member)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
