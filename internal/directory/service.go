package directory

import (
	"context"
	"strings"

	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

// Source is the full application set. hotel.Repository satisfies it.
type Source interface {
	ListAll(ctx context.Context) ([]hotel.Application, error)
}

// Query narrows the public directory. Zero value returns every member.
type Query struct {
	City     string
	Search   string
	MinStars int
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// ListMembers re-reads the application set and projects it. There is no
// cache, so a transition is visible on the next call.
func (s *Service) ListMembers(ctx context.Context, q Query) ([]hotel.Application, error) {
	apps, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	members := Members(apps)
	if q == (Query{}) {
		return members, nil
	}

	out := members[:0]
	for _, m := range members {
		if q.matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (q Query) matches(a hotel.Application) bool {
	if q.City != "" && !strings.EqualFold(strings.TrimSpace(q.City), a.City) {
		return false
	}
	if q.MinStars > 0 && a.StarRating < q.MinStars {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		return strings.Contains(strings.ToLower(a.Name), s) || strings.Contains(strings.ToLower(a.City), s)
	}
	return true
}
