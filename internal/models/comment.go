package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post. The post is referenced by id; a
// post's comments are loaded on demand rather than embedded.
type Comment struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Description string         `gorm:"type:text;not null" json:"description"`
	UserID      string         `gorm:"size:36;not null;index" json:"user_id"`
	PostID      string         `gorm:"size:36;not null;index" json:"post_id"`
	User        *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post        *Post          `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// BeforeCreate assigns a fresh UUID when none was set.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
