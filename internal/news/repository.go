package news

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

type Repository interface {
	Create(ctx context.Context, a *Article) error
	FindByID(ctx context.Context, id uint) (*Article, error)
	List(ctx context.Context, search string, includeDrafts bool, limit, page int) ([]Article, int64, error)
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, a *Article) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return apperror.Persistence("create news", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Article, error) {
	var a Article
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, apperror.Persistence("find news", err)
	}
	return &a, nil
}

// List orders published articles by publish date, drafts by creation.
func (r *repository) List(ctx context.Context, search string, includeDrafts bool, limit, page int) ([]Article, int64, error) {
	var (
		articles []Article
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&Article{})
	if !includeDrafts {
		query = query.Where("published = ?", true)
	}
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(body) LIKE ?", like, like)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count news", err)
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	err := query.
		Order("published_at IS NULL").
		Order("published_at DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&articles).Error
	if err != nil {
		return nil, 0, apperror.Persistence("list news", err)
	}
	return articles, total, nil
}

func (r *repository) Update(ctx context.Context, a *Article) error {
	res := r.db.WithContext(ctx).Model(a).
		Select("title", "summary", "body", "published", "published_at").
		Updates(a)
	if res.Error != nil {
		return apperror.Persistence("update news", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Article{}, id)
	if res.Error != nil {
		return apperror.Persistence("delete news", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}
