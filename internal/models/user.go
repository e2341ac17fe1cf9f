// Package models contains data structures for the application's domain models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role tags a user account. Stored and issued in token claims, but not
// consulted by any authorization check yet.
type Role string

const (
	// RoleUser is the default role for new accounts.
	RoleUser Role = "USER"
	// RoleAdmin marks an administrative account.
	RoleAdmin Role = "ADMIN"
)

// DefaultProfileImageURL is assigned to accounts without an uploaded avatar.
const DefaultProfileImageURL = "/images/default_pfp.png"

// User represents a registered author.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"not null" json:"username"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	ProfileImgURL string         `gorm:"not null;default:'/images/default_pfp.png'" json:"profileImgURL"`
	Role          Role           `gorm:"type:varchar(16);not null;default:'USER'" json:"role"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Posts         []Post         `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// PublicUser is the sanitized view of a user returned by auth endpoints.
type PublicUser struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	ProfileImgURL string `json:"profileImgURL"`
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
// Uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Public returns the sanitized view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          u.Role,
		ProfileImgURL: u.ProfileImgURL,
	}
}
