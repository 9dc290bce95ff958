package services

import "github.com/ngocthb/OJT-BE/internal/models"

// Store contracts consumed by CommentService. Absent rows are reported as
// gorm.ErrRecordNotFound; any other error is treated as a persistence fault.

type UserStore interface {
	FindByID(id string) (*models.User, error)
}

type ClaimStore interface {
	// FindByID returns the claim with its owner (email) populated.
	FindByID(id string) (*models.Claim, error)
}

type CommentStore interface {
	// FindByID returns the comment with its author and role populated.
	FindByID(id string) (*models.Comment, error)
	// FindByClaim returns every comment on the claim in insertion order,
	// authors and role names populated.
	FindByClaim(claimID string) ([]models.Comment, error)
	Create(comment *models.Comment) error
}

type ReplyLinkStore interface {
	FindByParent(parentID string) (*models.ReplyLink, error)
	FindByParentIn(parentIDs []string) ([]models.ReplyLink, error)
	// AppendReply finds or creates the parent's link and appends replyID if
	// absent. Must be atomic under concurrent replies to the same parent.
	AppendReply(parentID, replyID string) (*models.ReplyLink, error)
}

type NotificationKind string

const (
	NotificationComment NotificationKind = "comment"
	NotificationReply   NotificationKind = "reply"
)

// Notification carries everything the mail layer needs; rendering and
// delivery belong to the Notifier.
type Notification struct {
	RecipientEmail string
	ActorName      string
	ActorRole      string
	ActorEmail     string
	Content        string
	ClaimID        string
	Kind           NotificationKind
}

type Notifier interface {
	Notify(n Notification) error
}
