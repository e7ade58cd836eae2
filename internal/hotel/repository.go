package hotel

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
)

type Repository interface {
	Create(ctx context.Context, app *Application) error
	FindByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, filter Filter) ([]Application, int64, error)
	ListAll(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, review Review) error
	UpdateProfile(ctx context.Context, app *Application) error
	UpdateMedia(ctx context.Context, id string, images []string, documents map[string]string) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (*StatusCounts, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// editableColumns are the fields an owner may change. status and the review
// columns are written only by UpdateStatus.
var editableColumns = []string{
	"name", "address", "city", "district", "contact_email", "contact_phone", "website",
	"owner_name", "manager_name", "registration_number", "year_established",
	"employee_count", "room_count", "star_rating", "room_types", "facilities", "amenities",
	"tax_id", "tourism_license_no", "compliance_remarks",
	"signee_name", "signee_position", "signed_on",
}

func (r *repository) Create(ctx context.Context, app *Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return apperror.Persistence("create hotel", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Application, error) {
	var app Application
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFoundOrForbidden
		}
		return nil, apperror.Persistence("find hotel", err)
	}
	return &app, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Application, int64, error) {
	var (
		apps  []Application
		total int64
	)

	query := r.db.WithContext(ctx).Model(&Application{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(contact_email) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Persistence("count hotels", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	err := query.Order("created_at DESC").Order("id ASC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&apps).Error
	if err != nil {
		return nil, 0, apperror.Persistence("list hotels", err)
	}
	return apps, total, nil
}

// ListAll returns the full application set for projections.
func (r *repository) ListAll(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id ASC").Find(&apps).Error; err != nil {
		return nil, apperror.Persistence("list hotels", err)
	}
	return apps, nil
}

// UpdateStatus writes the new status. Zero affected rows means the record is
// gone or hidden from the caller and is reported as ErrNotFoundOrForbidden.
func (r *repository) UpdateStatus(ctx context.Context, id string, status Status, review Review) error {
	res := r.db.WithContext(ctx).Model(&Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           status,
		"reviewed_by":      review.ReviewerID,
		"reviewed_at":      review.At,
		"rejection_reason": review.Reason,
	})
	return rowsOrError(res, "update hotel status")
}

func (r *repository) UpdateProfile(ctx context.Context, app *Application) error {
	res := r.db.WithContext(ctx).Model(app).
		Select(editableColumns).
		Updates(app)
	return rowsOrError(res, "update hotel")
}

func (r *repository) UpdateMedia(ctx context.Context, id string, images []string, documents map[string]string) error {
	res := r.db.WithContext(ctx).Model(&Application{}).Where("id = ?", id).Updates(map[string]interface{}{
		"images":    datatypes.NewJSONSlice(images),
		"documents": datatypes.NewJSONType(documents),
	})
	return rowsOrError(res, "update hotel media")
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Application{})
	return rowsOrError(res, "delete hotel")
}

func (r *repository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Persistence("count hotels by status", err)
	}

	counts := &StatusCounts{}
	for _, row := range rows {
		switch row.Status {
		case StatusPending:
			counts.Pending = row.Count
		case StatusApproved:
			counts.Approved = row.Count
		case StatusRejected:
			counts.Rejected = row.Count
		}
	}
	return counts, nil
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
