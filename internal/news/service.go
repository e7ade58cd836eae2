package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
)

type Service interface {
	Create(ctx context.Context, sess auth.Session, req ArticleRequest) (*Article, error)
	Get(ctx context.Context, sess auth.Session, id uint) (*Article, error)
	List(ctx context.Context, sess auth.Session, search string, includeDrafts bool, limit, page int) ([]Article, int64, error)
	Update(ctx context.Context, sess auth.Session, id uint, req ArticleRequest) (*Article, error)
	SetPublished(ctx context.Context, sess auth.Session, id uint, published bool) (*Article, error)
	Delete(ctx context.Context, sess auth.Session, id uint) error
}

type service struct {
	repo  Repository
	guard *authz.Guard
	audit auditlog.Recorder
	now   func() time.Time
}

func NewService(repo Repository, guard *authz.Guard, audit auditlog.Recorder) Service {
	return &service{repo: repo, guard: guard, audit: audit, now: time.Now}
}

func (s *service) Create(ctx context.Context, sess auth.Session, req ArticleRequest) (*Article, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	a := &Article{
		Title:     strings.TrimSpace(req.Title),
		Summary:   req.Summary,
		Body:      req.Body,
		CreatedBy: actor.ID,
	}
	if req.Published != nil && *req.Published {
		s.publish(a)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, fmt.Sprintf("News created: %s", a.Title))
	return a, nil
}

func (s *service) Get(ctx context.Context, sess auth.Session, id uint) (*Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Published {
		return a, nil
	}
	if _, err := s.guard.Authorize(ctx, sess, authz.ManageContent); err != nil {
		return nil, apperror.ErrNotFoundOrForbidden
	}
	return a, nil
}

func (s *service) List(ctx context.Context, sess auth.Session, search string, includeDrafts bool, limit, page int) ([]Article, int64, error) {
	if includeDrafts {
		if _, err := s.guard.Authorize(ctx, sess, authz.ManageContent); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, search, includeDrafts, limit, page)
}

func (s *service) Update(ctx context.Context, sess auth.Session, id uint, req ArticleRequest) (*Article, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = strings.TrimSpace(req.Title)
	a.Summary = req.Summary
	a.Body = req.Body
	if req.Published != nil {
		if *req.Published {
			s.publish(a)
		} else {
			a.Published = false
		}
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, fmt.Sprintf("News updated: %s", a.Title))
	return a, nil
}

func (s *service) SetPublished(ctx context.Context, sess auth.Session, id uint, published bool) (*Article, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return nil, err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	verb := "unpublished"
	if published {
		s.publish(a)
		verb = "published"
	} else {
		a.Published = false
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.record(ctx, actor.ID, fmt.Sprintf("News %s: %s", verb, a.Title))
	return a, nil
}

func (s *service) Delete(ctx context.Context, sess auth.Session, id uint) error {
	actor, err := s.guard.Authorize(ctx, sess, authz.ManageContent)
	if err != nil {
		return err
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, actor.ID, fmt.Sprintf("News deleted: %s", a.Title))
	return nil
}

func (s *service) publish(a *Article) {
	a.Published = true
	if a.PublishedAt == nil {
		now := s.now().UTC()
		a.PublishedAt = &now
	}
}

func (s *service) record(ctx context.Context, actorID, text string) {
	s.audit.RecordSafe(ctx, auditlog.Entry{Type: auditlog.TypeNews, Text: text, ActorID: &actorID})
}

func validate(req ArticleRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperror.Validation("title is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperror.Validation("body is required")
	}
	if len(req.Summary) > 500 {
		return apperror.Validation("summary is limited to 500 characters")
	}
	return nil
}
