package event

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Event
func (r *Repository) CreateEvent(ctx context.Context, e *Event) error {
	if err := r.DB.WithContext(ctx).Create(e).Error; err != nil {
		return apperror.Persistence("create event", err)
	}
	return nil
}

// ===========================
// 🔍 Get Event By ID
func (r *Repository) GetEventByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	if err := r.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, apperror.Persistence("find event", err)
	}
	return &e, nil
}

// ===========================
// 📄 List Events With Pagination & Search
func (r *Repository) ListEvents(ctx context.Context, q ListQuery, now time.Time) ([]Event, int64, error) {
	var (
		events []Event
		total  int64
	)

	query := r.DB.WithContext(ctx).Model(&Event{})
	if !q.IncludeDrafts {
		query = query.Where("published = ?", true)
	}
	if q.UpcomingOnly {
		query = query.Where("starts_at >= ?", now)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count events", err)
	}

	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	err := query.
		Order("starts_at ASC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, apperror.Persistence("list events", err)
	}
	return events, total, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(ctx context.Context, e *Event) error {
	res := r.DB.WithContext(ctx).Model(e).
		Select("title", "description", "location", "starts_at", "ends_at", "published").
		Updates(e)
	if res.Error != nil {
		return apperror.Persistence("update event", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}

// ===========================
// ❌ Delete Event
func (r *Repository) DeleteEvent(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&Event{}, id)
	if res.Error != nil {
		return apperror.Persistence("delete event", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}
