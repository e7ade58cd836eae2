package hotel

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
	"github.com/sharath018/hotel-association-backend/internal/notification"
	"github.com/sharath018/hotel-association-backend/pkg/storage"
)

// AccountRegistrar provisions the member account that can come with a
// submission.
type AccountRegistrar interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.Profile, error)
}

// Result is an application as re-read after a mutation plus the notice for
// the console.
type Result struct {
	Application *Application        `json:"application,omitempty"`
	Notice      notification.Notice `json:"notice"`
}

type Service struct {
	repo      Repository
	guard     *authz.Guard
	accounts  AccountRegistrar
	audit     auditlog.Recorder
	store     storage.ObjectStore
	publisher notification.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	guard *authz.Guard,
	accounts AccountRegistrar,
	audit auditlog.Recorder,
	store storage.ObjectStore,
	publisher notification.Publisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:      repo,
		guard:     guard,
		accounts:  accounts,
		audit:     audit,
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ============================
// Status transitions

func (s *Service) Approve(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	return s.transition(ctx, sess, id, func(Status) Action { return ActionApprove }, "")
}

func (s *Service) Reject(ctx context.Context, sess auth.Session, id, reason string) (*Result, error) {
	return s.transition(ctx, sess, id, func(Status) Action { return ActionReject }, reason)
}

// RestoreToPending sends a rejected or approved application back to review.
func (s *Service) RestoreToPending(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	return s.transition(ctx, sess, id, restoreAction, "")
}

func (s *Service) transition(ctx context.Context, sess auth.Session, id string, pick func(Status) Action, reason string) (*Result, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.TransitionApplications)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	action := pick(current.Status)
	r, err := lookup(current.Status, action)
	if err != nil {
		return nil, err
	}

	review := Review{ReviewerID: actor.ID, At: s.now()}
	if action == ActionReject {
		review.Reason = reason
	}
	if err := s.repo.UpdateStatus(ctx, id, r.to, review); err != nil {
		return nil, err
	}

	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    r.auditType,
		Text:    activityText(action, current.Name),
		ActorID: &actor.ID,
	})

	// The status write is committed at this point; a failed re-read must not
	// turn it into an error for the caller.
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("re-read after status change failed",
			zap.String("hotel_id", id),
			zap.Error(err),
		)
		updated = current.withReview(r.to, review)
	}

	message := noticeText(action, current.Name)
	notification.Emit(ctx, s.publisher, s.logger, notification.Fact{
		Kind:      r.kind,
		Subject:   id,
		Recipient: updated.ContactEmail,
		Message:   message,
		Metadata:  map[string]string{"from": string(current.Status), "to": string(r.to)},
	})

	s.logger.Info("application status changed",
		zap.String("hotel_id", id),
		zap.String("action", string(action)),
		zap.String("from", string(current.Status)),
		zap.String("to", string(r.to)),
		zap.String("actor_id", actor.ID),
	)
	return &Result{Application: updated, Notice: notification.Notice{Level: r.level, Message: message}}, nil
}

// ============================
// Submission and owner edits

// Submit records a new registration as pending. It needs no session; a
// signed-in caller becomes the owner, otherwise the optional account block
// creates one.
func (s *Service) Submit(ctx context.Context, sess auth.Session, in SubmitInput) (*Result, error) {
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	var ownerID *string
	switch {
	case sess.Present():
		id := sess.ProfileID
		ownerID = &id
	case in.Account != nil:
		p, err := s.accounts.Register(ctx, auth.RegisterInput{
			DisplayName: in.Account.DisplayName,
			Email:       in.Account.Email,
			Password:    in.Account.Password,
		})
		if err != nil {
			return nil, err
		}
		ownerID = &p.ID
	}

	app := &Application{OwnerID: ownerID, Status: StatusPending}
	in.apply(app)
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeRegistration,
		Text:    fmt.Sprintf("New registration: %s", app.Name),
		ActorID: ownerID,
	})
	notification.Emit(ctx, s.publisher, s.logger, notification.Fact{
		Kind:      notification.KindApplicationSubmitted,
		Subject:   app.ID,
		Recipient: app.ContactEmail,
		Message:   fmt.Sprintf("We received the membership registration for %s", app.Name),
	})

	created, err := s.repo.FindByID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	return &Result{
		Application: created,
		Notice:      notification.Notice{Level: notification.LevelSuccess, Message: "Registration submitted for review"},
	}, nil
}

// List returns every application to staff and only their own to members.
func (s *Service) List(ctx context.Context, sess auth.Session, filter Filter) ([]Application, int64, error) {
	p, err := s.guard.Authorize(ctx, sess, authz.EditOwn)
	if err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperror.Validation("unknown status %q", filter.Status)
	}
	if !authz.Allows(p.Role, authz.TransitionApplications) {
		filter.OwnerID = &p.ID
	}
	return s.repo.List(ctx, filter)
}

// Get returns id to its owner or to staff.
func (s *Service) Get(ctx context.Context, sess auth.Session, id string) (*Application, error) {
	p, app, err := s.loadVisible(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !app.IsOwnedBy(p.ID) && !authz.Allows(p.Role, authz.TransitionApplications) {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return app, nil
}

func (s *Service) loadVisible(ctx context.Context, sess auth.Session, id string) (*auth.Profile, *Application, error) {
	p, err := s.guard.Authorize(ctx, sess, authz.EditOwn)
	if err != nil {
		return nil, nil, err
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, app, nil
}

// loadEditable loads id for its owner. Staff may read it but change it only
// through the status transitions. Other members get ErrNotFoundOrForbidden
// so existence is not revealed.
func (s *Service) loadEditable(ctx context.Context, sess auth.Session, id string) (*auth.Profile, *Application, error) {
	p, app, err := s.loadVisible(ctx, sess, id)
	if err != nil {
		return nil, nil, err
	}
	if app.IsOwnedBy(p.ID) {
		return p, app, nil
	}
	if authz.Allows(p.Role, authz.TransitionApplications) {
		return nil, nil, apperror.Unauthorized("only the owning member can edit this application")
	}
	return nil, nil, apperror.ErrNotFoundOrForbidden
}

// UpdateOwn edits the non-status fields. Status never changes here.
func (s *Service) UpdateOwn(ctx context.Context, sess auth.Session, id string, in ProfileInput) (*Result, error) {
	p, app, err := s.loadEditable(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(s.now()); err != nil {
		return nil, err
	}

	in.apply(app)
	if err := s.repo.UpdateProfile(ctx, app); err != nil {
		return nil, err
	}
	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUpdate,
		Text:    fmt.Sprintf("%s profile was updated", app.Name),
		ActorID: &p.ID,
	})
	return s.refetch(ctx, id, notification.LevelSuccess, "Changes saved")
}

// ============================
// Media

func (s *Service) AttachImage(ctx context.Context, sess auth.Session, id string, up Upload) (*Result, error) {
	p, app, err := s.loadEditable(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if len(app.Images) >= MaxImages {
		return nil, apperror.Validation("a hotel can have at most %d images", MaxImages)
	}
	contentType, ok := storage.ContentType(up.Filename, storage.AllowedImageTypes)
	if !ok {
		return nil, apperror.Validation("images must be jpg, png or webp")
	}
	if up.Size > storage.MaxImageSize {
		return nil, apperror.Validation("image exceeds %d MB", storage.MaxImageSize/(1024*1024))
	}

	ref, err := s.store.Upload(ctx, storage.ObjectKey(id, storage.FolderImages, up.Filename), contentType, up.Body, up.Size)
	if err != nil {
		return nil, apperror.Persistence("upload image", err)
	}

	images := append(slices.Clone([]string(app.Images)), ref)
	if err := s.repo.UpdateMedia(ctx, id, images, app.DocumentMap()); err != nil {
		return nil, err
	}
	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUpdate,
		Text:    fmt.Sprintf("%s gallery image added", app.Name),
		ActorID: &p.ID,
	})
	return s.refetch(ctx, id, notification.LevelSuccess, "Image uploaded")
}

func (s *Service) RemoveImage(ctx context.Context, sess auth.Session, id, ref string) (*Result, error) {
	p, app, err := s.loadEditable(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	idx := slices.Index([]string(app.Images), ref)
	if idx < 0 {
		return nil, apperror.Validation("image is not part of this gallery")
	}

	images := slices.Delete(slices.Clone([]string(app.Images)), idx, idx+1)
	if err := s.repo.UpdateMedia(ctx, id, images, app.DocumentMap()); err != nil {
		return nil, err
	}
	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUpdate,
		Text:    fmt.Sprintf("%s gallery image removed", app.Name),
		ActorID: &p.ID,
	})
	return s.refetch(ctx, id, notification.LevelInfo, "Image removed")
}

func (s *Service) AttachDocument(ctx context.Context, sess auth.Session, id, kind string, up Upload) (*Result, error) {
	p, app, err := s.loadEditable(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(DocumentKinds, kind) {
		return nil, apperror.Validation("unknown document kind %q", kind)
	}
	contentType, ok := storage.ContentType(up.Filename, storage.AllowedDocumentTypes)
	if !ok {
		return nil, apperror.Validation("documents must be pdf, jpg or png")
	}
	if up.Size > storage.MaxDocumentSize {
		return nil, apperror.Validation("document exceeds %d MB", storage.MaxDocumentSize/(1024*1024))
	}

	ref, err := s.store.Upload(ctx, storage.ObjectKey(id, storage.FolderDocuments, up.Filename), contentType, up.Body, up.Size)
	if err != nil {
		return nil, apperror.Persistence("upload document", err)
	}

	docs := app.DocumentMap()
	docs[kind] = ref
	if err := s.repo.UpdateMedia(ctx, id, []string(app.Images), docs); err != nil {
		return nil, err
	}
	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeUpdate,
		Text:    fmt.Sprintf("%s uploaded %s", app.Name, kind),
		ActorID: &p.ID,
	})
	return s.refetch(ctx, id, notification.LevelSuccess, "Document uploaded")
}

// ============================
// Administration

// Delete removes an application outright. Staff only.
func (s *Service) Delete(ctx context.Context, sess auth.Session, id string) (*Result, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.DeleteApplications)
	if err != nil {
		return nil, err
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeDeletion,
		Text:    fmt.Sprintf("%s was deleted", app.Name),
		ActorID: &actor.ID,
	})
	return &Result{Notice: notification.Notice{Level: notification.LevelInfo, Message: fmt.Sprintf("%s deleted", app.Name)}}, nil
}

func (s *Service) Counts(ctx context.Context, sess auth.Session) (*StatusCounts, error) {
	if _, err := s.guard.Authorize(ctx, sess, authz.TransitionApplications); err != nil {
		return nil, err
	}
	return s.repo.CountByStatus(ctx)
}

func (s *Service) refetch(ctx context.Context, id string, level notification.Level, message string) (*Result, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Result{Application: app, Notice: notification.Notice{Level: level, Message: message}}, nil
}
