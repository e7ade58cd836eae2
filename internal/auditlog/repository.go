package auditlog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

// Repository exposes no update or delete path. The log is append-only.
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	List(ctx context.Context, filter Filter) ([]Activity, error)
	CountByType(ctx context.Context) (map[Type]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return apperror.Persistence("insert activity", err)
	}
	return nil
}

// List returns the most recent entries first.
func (r *repository) List(ctx context.Context, filter Filter) ([]Activity, error) {
	var rows []Activity

	query := r.db.WithContext(ctx).Model(&Activity{})
	if filter.Type != "" {
		query = query.Where("activities.type = ?", filter.Type)
	}
	if q := strings.TrimSpace(filter.Text); q != "" {
		query = query.Where("LOWER(activities.text) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filter.ActorID != nil {
		query = query.Where("activities.actor_id = ?", *filter.ActorID)
	}
	if filter.FromDate != nil {
		query = query.Where("activities.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("activities.created_at <= ?", *filter.ToDate)
	}

	err := query.Order("activities.created_at DESC").
		Order("activities.id DESC").
		Limit(clampLimit(filter.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Persistence("list activities", err)
	}
	return rows, nil
}

func (r *repository) CountByType(ctx context.Context) (map[Type]int64, error) {
	var rows []struct {
		Type  Type
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&Activity{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Persistence("count activities", err)
	}

	out := make(map[Type]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Count
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
