// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an identity in the application. Users are created by
// sign-in and never mutated afterwards.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SignInResult tags a sign-in outcome so callers can tell a new user from an
// existing one.
type SignInResult struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Created bool   `json:"created"`
}

const (
	SignInCreatedMessage  = "User created"
	SignInExistingMessage = "User already exists"
)
