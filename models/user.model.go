package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is a closed set; authorization checks switch on it exhaustively
// instead of comparing free-text strings.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username     string `gorm:"size:20;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"size:20;default:'student'" json:"role"`

	// Profile
	Bio           string `json:"bio"`
	Qualification string `json:"qualification"`
	Institution   string `json:"institution"`
	Website       string `json:"website"`
	Twitter       string `json:"twitter"`
	LinkedIn      string `json:"linkedin"`
	ProfileImage  string `gorm:"default:'default.jpg'" json:"profile_image"`
	SignatureFile string `json:"signature_file"`

	// Transient email-change state. Cleared once the code is confirmed.
	PendingEmail      string     `json:"-"`
	EmailChangeCode   string     `gorm:"size:6" json:"-"`
	EmailChangeSentAt *time.Time `json:"-"`
}
