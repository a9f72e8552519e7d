// Package models contains data structures for the marketplace domain.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the coarse authorization class of a user.
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// User is an account on the marketplace.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:80;not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;size:160;not null" json:"email,omitempty"`
	Password  string         `gorm:"not null" json:"-"`
	Phone     string         `gorm:"size:32" json:"phone,omitempty"`
	Role      Role           `gorm:"size:16;not null;default:guest;index" json:"role"`
	Disabled  bool           `gorm:"not null;default:false" json:"disabled"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsAdmin reports whether the user holds the admin role and is active.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin && !u.Disabled
}
