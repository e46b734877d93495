package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a post filed under a community. Deletion is soft: DeletedAt
// is set and the row is retained.
type Post struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Community   Community      `gorm:"size:32;not null;index" json:"community"`
	UserID      string         `gorm:"size:36;not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsDeleted reports whether the post has been soft-deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt.Valid
}

// MessageResponse confirms an operation that has no entity to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// PostFilter narrows post listings. Zero values mean "no filter".
type PostFilter struct {
	Search    string
	Community Community
}
