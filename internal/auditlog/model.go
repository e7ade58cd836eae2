package auditlog

import (
	"time"
)

// Type classifies an activity entry. The set is closed.
type Type string

const (
	TypeRegistration Type = "registration"
	TypeApproval     Type = "approval"
	TypeRejection    Type = "rejection"
	TypeUpdate       Type = "update"
	TypeDeletion     Type = "deletion"
	TypeUser         Type = "user"
	TypeEvent        Type = "event"
	TypeNews         Type = "news"
	TypeSecurity     Type = "security"
)

var types = []Type{
	TypeRegistration, TypeApproval, TypeRejection, TypeUpdate,
	TypeDeletion, TypeUser, TypeEvent, TypeNews, TypeSecurity,
}

func (t Type) Valid() bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// Activity represents the activities table. Rows are only ever inserted.
type Activity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      Type      `gorm:"type:varchar(20);not null;index" json:"type"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ActorID   *string   `gorm:"type:varchar(36);index" json:"actor_id,omitempty"` // nil for anonymous submissions
	IPAddress string    `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}

// Entry is what callers hand to the recorder.
type Entry struct {
	Type    Type
	Text    string
	ActorID *string
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Filter represents filters for querying the activity log
type Filter struct {
	Limit    int        `json:"limit"`
	Type     Type       `json:"type"`
	Text     string     `json:"text"` // case-insensitive containment
	ActorID  *string    `json:"actor_id"`
	FromDate *time.Time `json:"from_date"`
	ToDate   *time.Time `json:"to_date"`
}
