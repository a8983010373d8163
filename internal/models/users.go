package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold. Staff/superuser status is carried by the flags
// below, not by an extra role value.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Username    string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Password    string     `gorm:"column:password_hash;not null;default:''" json:"-"` // empty hash = unusable password
	Role        string     `gorm:"default:'user';not null" json:"role"`
	Bio         string     `gorm:"type:text;default:''" json:"bio"`
	FirstName   string     `gorm:"size:40;default:''" json:"first_name"`
	LastName    string     `gorm:"size:40;default:''" json:"last_name"`
	// IsActive must not carry a column default: gorm omits zero-valued
	// fields with a default tag from the INSERT, and signup relies on a
	// false value being written for unconfirmed accounts.
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsStaff     bool       `gorm:"default:false" json:"-"`
	IsAdmin     bool       `gorm:"default:false" json:"-"`
	IsSuperuser bool       `gorm:"default:false" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
