package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is immutable once created. A comment becomes a reply when some
// ReplyLink lists its id; it carries no parent pointer of its own.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ClaimID   string    `gorm:"size:36;not null;index" json:"claim_id"`
	Claim     Claim     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    string    `gorm:"size:36;not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
