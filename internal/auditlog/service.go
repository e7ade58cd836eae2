package auditlog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

// Recorder is the write side used by every mutating service.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	// RecordSafe logs a failed write instead of returning it. The business
	// action that triggered it has already committed and is not rolled back.
	RecordSafe(ctx context.Context, e Entry)
}

type Service interface {
	Recorder
	List(ctx context.Context, filter Filter) ([]Activity, error)
	Stats(ctx context.Context) (map[Type]int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Record(ctx context.Context, e Entry) error {
	if !e.Type.Valid() {
		return apperror.Validation("unknown activity type %q", e.Type)
	}
	if strings.TrimSpace(e.Text) == "" {
		return apperror.Validation("activity text is required")
	}

	a := &Activity{
		Type:      e.Type,
		Text:      e.Text,
		ActorID:   e.ActorID,
		IPAddress: ClientIP(ctx),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrAuditWrite, err)
	}
	return nil
}

func (s *service) RecordSafe(ctx context.Context, e Entry) {
	if err := s.Record(ctx, e); err != nil {
		fields := []zap.Field{
			zap.String("type", string(e.Type)),
			zap.String("text", e.Text),
			zap.Error(err),
		}
		if e.ActorID != nil {
			fields = append(fields, zap.String("actor_id", *e.ActorID))
		}
		s.logger.Error("activity log write failed", fields...)
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]Activity, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperror.Validation("unknown activity type %q", filter.Type)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Stats(ctx context.Context) (map[Type]int64, error) {
	return s.repo.CountByType(ctx)
}

type clientIPKey struct{}

// WithClientIP stores the caller's IP so recorded entries can carry it.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
