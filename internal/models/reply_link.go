package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReplyLink groups the reply comments under one parent comment. It is
// created lazily on the first reply and mutated append-only afterwards.
// Reply keeps insertion order (oldest first) and never holds duplicates.
type ReplyLink struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	CommentID string                      `gorm:"uniqueIndex;size:36;not null" json:"comment_id"`
	Comment   Comment                     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reply     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"reply"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

func (l *ReplyLink) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Contains reports whether id is already in the member list.
func (l *ReplyLink) Contains(id string) bool {
	for _, rid := range l.Reply {
		if rid == id {
			return true
		}
	}
	return false
}
