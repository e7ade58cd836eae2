package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]Profile, int64, error)
	UpdatePassword(ctx context.Context, id, hash string, changed bool) error
	UpdateRole(ctx context.Context, id string, role Role) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	p.Email = normalizeEmail(p.Email)
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return apperror.Validation("an account with email %s already exists", p.Email)
		}
		return apperror.Persistence("create profile", err)
	}
	return nil
}

// FindByID always reads from the database; callers must not cache the result
// across actions.
func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, apperror.Persistence("find profile", err)
	}
	return &p, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, apperror.Persistence("find profile by email", err)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter ProfileFilter) ([]Profile, int64, error) {
	var (
		profiles []Profile
		total    int64
	)

	query := r.db.WithContext(ctx).Model(&Profile{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count profiles", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, apperror.Persistence("list profiles", err)
	}
	return profiles, total, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id, hash string, changed bool) error {
	res := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":    hash,
		"password_changed": changed,
	})
	return rowsOrError(res, "update password")
}

func (r *repository) UpdateRole(ctx context.Context, id string, role Role) error {
	res := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Update("role", role)
	return rowsOrError(res, "update role")
}

func rowsOrError(res *gorm.DB, op string) error {
	if res.Error != nil {
		return apperror.Persistence(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFoundOrForbidden
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
