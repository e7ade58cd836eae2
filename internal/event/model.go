package event

import (
	"time"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `gorm:"type:text" json:"location"`
	StartsAt    time.Time  `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	CreatedBy   string     `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// ============================
// 🟡 Create / Update Event Request
type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"` // "2006-01-02"
	EventTime   string `json:"event_time,omitempty"`          // "15:04"
	EndDate     string `json:"end_date,omitempty"`            // "2006-01-02"
	Published   *bool  `json:"published,omitempty"`
}

// ListQuery narrows event listings. Drafts are only visible to staff.
type ListQuery struct {
	Search        string
	UpcomingOnly  bool
	IncludeDrafts bool
	Limit         int
	Page          int
}
