package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

// Service wraps business logic for association events
type Service struct {
	Repo   *Repository
	Guard  *authz.Guard
	Audit  auditlog.Recorder
	Logger *zap.Logger
	now    func() time.Time
}

func NewService(r *Repository, guard *authz.Guard, audit auditlog.Recorder, logger *zap.Logger) *Service {
	return &Service{
		Repo:   r,
		Guard:  guard,
		Audit:  audit,
		Logger: logger,
		now:    time.Now,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(ctx context.Context, sess auth.Session, req EventRequest) (*Event, error) {
	actor, err := s.Guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}

	e := &Event{CreatedBy: actor.ID}
	if err := applyRequest(e, req); err != nil {
		return nil, err
	}
	if err := s.Repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, "Event created: %s", e.Title)
	return e, nil
}

// ===========================
// 🔍 Get / List Events
func (s *Service) GetEvent(ctx context.Context, sess auth.Session, id uint) (*Event, error) {
	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.Published && !s.isStaff(ctx, sess) {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return e, nil
}

// ListEvents returns published events to everyone. Staff asking for drafts
// get them too; anyone else asking for drafts is refused.
func (s *Service) ListEvents(ctx context.Context, sess auth.Session, q ListQuery) ([]Event, int64, error) {
	if q.IncludeDrafts {
		if _, err := s.Guard.Authorize(ctx, sess, authz.ManageContent); err != nil {
			return nil, 0, err
		}
	}
	return s.Repo.ListEvents(ctx, q, s.now())
}

// ===========================
// 🛠 Update Event
func (s *Service) UpdateEvent(ctx context.Context, sess auth.Session, id uint, req EventRequest) (*Event, error) {
	actor, err := s.Guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}

	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyRequest(e, req); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateEvent(ctx, e); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, "Event updated: %s", e.Title)
	return s.Repo.GetEventByID(ctx, id)
}

// ===========================
// 📣 Publish / Unpublish
func (s *Service) SetPublished(ctx context.Context, sess auth.Session, id uint, published bool) (*Event, error) {
	actor, err := s.Guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}

	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Published = published
	if err := s.Repo.UpdateEvent(ctx, e); err != nil {
		return nil, err
	}

	if published {
		s.record(ctx, actor.ID, "Event published: %s", e.Title)
	} else {
		s.record(ctx, actor.ID, "Event unpublished: %s", e.Title)
	}
	return e, nil
}

// ===========================
// ❌ Delete Event
func (s *Service) DeleteEvent(ctx context.Context, sess auth.Session, id uint) error {
	actor, err := s.Guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return err
	}

	e, err := s.Repo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor.ID, "Event deleted: %s", e.Title)
	return nil
}

func (s *Service) record(ctx context.Context, actorID, format string, args ...any) {
	s.Audit.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeEvent,
		Text:    fmt.Sprintf(format, args...),
		ActorID: &actorID,
	})
}

func (s *Service) isStaff(ctx context.Context, sess auth.Session) bool {
	if !sess.Present() {
		return false
	}
	_, err := s.Guard.Authorize(ctx, sess, authz.ManageContent)
	return err == nil
}

// 🔄 Parse dates from the request into e
func applyRequest(e *Event, req EventRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return apperror.Validation("event title is required")
	}

	startsAt, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return apperror.Validation("invalid event_date format. Use YYYY-MM-DD")
	}
	if req.EventTime != "" {
		t, err := time.Parse("15:04", req.EventTime)
		if err != nil {
			return apperror.Validation("invalid event_time format. Use HH:MM")
		}
		startsAt = startsAt.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}

	var endsAt *time.Time
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return apperror.Validation("invalid end_date format. Use YYYY-MM-DD")
		}
		end = end.Add(24*time.Hour - time.Second)
		if end.Before(startsAt) {
			return apperror.Validation("end_date cannot be before event_date")
		}
		endsAt = &end
	}

	e.Title = title
	e.Description = req.Description
	e.Location = strings.TrimSpace(req.Location)
	e.StartsAt = startsAt
	e.EndsAt = endsAt
	if req.Published != nil {
		e.Published = *req.Published
	}
	return nil
}
