package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the persisted authority level of a profile.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r is admin or super-admin.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile is a console account. Role is authoritative only as stored here.
type Profile struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	DisplayName     string    `gorm:"size:255;not null" json:"display_name"`
	Email           string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"not null" json:"-"`
	Role            Role      `gorm:"type:varchar(20);not null;default:member;index" json:"role"`
	PasswordChanged bool      `gorm:"not null;default:false" json:"password_changed"`
	CreatedBy       *string   `gorm:"type:varchar(36)" json:"created_by,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Session identifies the signed-in caller. It deliberately carries no role.
type Session struct {
	ProfileID string
	TokenID   string
	ExpiresAt time.Time
}

// Present reports whether a caller is signed in.
func (s Session) Present() bool {
	return s.ProfileID != ""
}

// ProfileFilter narrows profile listings.
type ProfileFilter struct {
	Role   Role
	Search string
	Limit  int
	Page   int
}
