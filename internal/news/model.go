package news

import "time"

// Article is an association news post. PublishedAt is set the first time it
// is published and kept on later unpublish/publish cycles.
type Article struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Summary     string     `gorm:"size:500" json:"summary"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
	CreatedBy   string     `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Article) TableName() string {
	return "news"
}

type ArticleRequest struct {
	Title     string `json:"title" binding:"required" example:"New tourism levy guidelines"`
	Summary   string `json:"summary"`
	Body      string `json:"body" binding:"required"`
	Published *bool  `json:"published,omitempty"`
}
