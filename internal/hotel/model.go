package hotel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status of a membership application. The set is closed.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// MaxImages is the gallery size limit per application.
const MaxImages = 10

// DocumentKinds are the compliance documents an application can carry.
var DocumentKinds = []string{
	"business_permit",
	"tourism_license",
	"tax_certificate",
	"fire_safety_certificate",
	"sanitary_permit",
}

// Application is a hotel's membership registration. It is listed in the
// public directory exactly when Status is approved.
type Application struct {
	ID      string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID *string `gorm:"type:varchar(36);index" json:"owner_id,omitempty"`
	Status  Status  `gorm:"type:varchar(20);not null;default:pending;index;check:chk_hotels_status,status IN ('pending','approved','rejected')" json:"status"`

	// Profile
	Name               string                      `gorm:"size:255;not null" json:"name"`
	Address            string                      `gorm:"type:text" json:"address"`
	City               string                      `gorm:"size:100;index" json:"city"`
	District           string                      `gorm:"size:100" json:"district"`
	ContactEmail       string                      `gorm:"size:255;not null" json:"contact_email"`
	ContactPhone       string                      `gorm:"size:30" json:"contact_phone"`
	Website            string                      `gorm:"size:255" json:"website"`
	OwnerName          string                      `gorm:"size:255" json:"owner_name"`
	ManagerName        string                      `gorm:"size:255" json:"manager_name"`
	RegistrationNumber string                      `gorm:"size:100" json:"registration_number"`
	YearEstablished    int                         `json:"year_established"`
	EmployeeCount      int                         `json:"employee_count"`
	RoomCount          int                         `json:"room_count"`
	StarRating         int                         `gorm:"not null;default:1" json:"star_rating"`
	RoomTypes          datatypes.JSONSlice[string] `json:"room_types"`
	Facilities         datatypes.JSONSlice[string] `json:"facilities"`
	Amenities          string                      `gorm:"type:text" json:"amenities"`

	// Compliance
	TaxID             string                                 `gorm:"size:100" json:"tax_id"`
	TourismLicenseNo  string                                 `gorm:"size:100" json:"tourism_license_no"`
	ComplianceRemarks string                                 `gorm:"type:text" json:"compliance_remarks"`
	Documents         datatypes.JSONType[map[string]string] `json:"documents"`

	// Commitment
	SigneeName     string     `gorm:"size:255" json:"signee_name"`
	SigneePosition string     `gorm:"size:255" json:"signee_position"`
	SignedOn       *time.Time `json:"signed_on,omitempty"`

	// Media, ordered, at most MaxImages
	Images datatypes.JSONSlice[string] `json:"images"`

	ReviewedBy      *string    `gorm:"type:varchar(36)" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string {
	return "hotels"
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DocumentMap returns the document references keyed by kind, never nil.
func (a *Application) DocumentMap() map[string]string {
	docs := a.Documents.Data()
	if docs == nil {
		docs = map[string]string{}
	}
	return docs
}

// IsOwnedBy reports whether profileID submitted this application.
func (a *Application) IsOwnedBy(profileID string) bool {
	return a.OwnerID != nil && *a.OwnerID == profileID
}

// Filter narrows application listings.
type Filter struct {
	Status  Status
	Search  string
	City    string
	OwnerID *string
	Limit   int
	Page    int
}

// Review carries the reviewer metadata written with a status change.
type Review struct {
	ReviewerID string
	At         time.Time
	Reason     string
}

// withReview returns a copy of a as UpdateStatus leaves it.
func (a *Application) withReview(status Status, review Review) *Application {
	cp := *a
	cp.Status = status
	reviewer, at := review.ReviewerID, review.At
	cp.ReviewedBy = &reviewer
	cp.ReviewedAt = &at
	cp.RejectionReason = review.Reason
	return &cp
}

// StatusCounts backs the dashboard approval counters.
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
