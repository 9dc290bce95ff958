package services

import (
	"errors"
	"log"
	"time"

	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/gorm"
)

// AuthorSummary is the resolved identity attached to comments and replies.
type AuthorSummary struct {
	ID       string `json:"id"`
	UserName string `json:"user_name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

type ReplyView struct {
	ID        string         `json:"id"`
	ClaimID   string         `json:"claim_id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	User      *AuthorSummary `json:"user"`
}

type CommentView struct {
	ID        string         `json:"id"`
	ClaimID   string         `json:"claim_id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	User      *AuthorSummary `json:"user"`
	Replies   []ReplyView    `json:"replies"`
}

// CommentService owns the comment and reply flows on claims: thread
// assembly, comment creation, reply authorization and linking, and the
// owner-notification policy shared by both write paths.
type CommentService struct {
	users      UserStore
	claims     ClaimStore
	comments   CommentStore
	replyLinks ReplyLinkStore
	notifier   Notifier
}

func NewCommentService(users UserStore, claims ClaimStore, comments CommentStore, replyLinks ReplyLinkStore, notifier Notifier) *CommentService {
	return &CommentService{
		users:      users,
		claims:     claims,
		comments:   comments,
		replyLinks: replyLinks,
		notifier:   notifier,
	}
}

func authorSummary(u *models.User) *AuthorSummary {
	if u == nil || u.ID == "" {
		return nil
	}
	return &AuthorSummary{
		ID:       u.ID,
		UserName: u.UserName,
		Avatar:   u.Avatar,
		Role:     u.Role.Name,
	}
}

// GetComments assembles the thread for a claim: every top-level comment in
// insertion order, each carrying its ordered reply list. A comment listed in
// any ReplyLink is a reply and is excluded from the top level. Zero comments
// is success with an empty slice.
func (s *CommentService) GetComments(claimID string) ([]CommentView, error) {
	comments, err := s.comments.FindByClaim(claimID)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	if len(comments) == 0 {
		return []CommentView{}, nil
	}

	ids := make([]string, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}

	links, err := s.replyLinks.FindByParentIn(ids)
	if err != nil {
		return nil, storeUnavailable(err)
	}

	// A comment id in any link's member list is a reply, no matter which
	// link listed it.
	replied := make(map[string]struct{})
	for _, link := range links {
		for _, rid := range link.Reply {
			replied[rid] = struct{}{}
		}
	}

	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		comment := &comments[i]
		if _, isReply := replied[comment.ID]; isReply {
			continue
		}

		view := CommentView{
			ID:        comment.ID,
			ClaimID:   comment.ClaimID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			User:      authorSummary(&comment.User),
			Replies:   []ReplyView{},
		}

		link, err := s.replyLinks.FindByParent(comment.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storeUnavailable(err)
		}
		if link != nil {
			for _, rid := range link.Reply {
				reply, err := s.comments.FindByID(rid)
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				if err != nil {
					return nil, storeUnavailable(err)
				}
				view.Replies = append(view.Replies, ReplyView{
					ID:        reply.ID,
					ClaimID:   reply.ClaimID,
					Content:   reply.Content,
					CreatedAt: reply.CreatedAt,
					User:      authorSummary(&reply.User),
				})
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// CreateComment persists a new comment on the claim and notifies the claim
// owner unless the actor is the owner. A failed notification never fails the
// comment itself.
func (s *CommentService) CreateComment(userID, claimID, content, roleLabel string) (*models.Comment, error) {
	actor, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}

	claim, err := s.claims.FindByID(claimID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("claim not found")
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}

	comment := &models.Comment{
		ClaimID: claimID,
		UserID:  userID,
		Content: content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, storeUnavailable(err)
	}

	s.notifyOwner(claim.User.Email, actor, content, claimID, roleLabel, NotificationComment)

	return comment, nil
}

// CheckComment is the existence guard used by the creation and reply flows.
func (s *CommentService) CheckComment(commentID string) (*models.Comment, error) {
	comment, err := s.comments.FindByID(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("comment not found")
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}
	return comment, nil
}

// ReplyComment links an existing comment as a reply under a parent comment.
// The reply comment must already exist, and the actor must own the parent
// comment; ownership is compared by email, not by user id. Appending an
// already-linked reply id is a no-op.
func (s *CommentService) ReplyComment(userID, parentCommentID, replyCommentID, claimID, content, roleLabel string) (*models.ReplyLink, error) {
	actor, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user not found")
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}

	if _, err := s.comments.FindByID(replyCommentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reply comment not found")
		}
		return nil, storeUnavailable(err)
	}

	parent, err := s.comments.FindByID(parentCommentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("comment not found")
	}
	if err != nil {
		return nil, storeUnavailable(err)
	}

	if parent.User.Email != actor.Email {
		return nil, forbidden("you are not the owner of this comment")
	}

	link, err := s.replyLinks.AppendReply(parentCommentID, replyCommentID)
	if err != nil {
		return nil, storeUnavailable(err)
	}

	s.notifyOwner(parent.User.Email, actor, content, claimID, roleLabel, NotificationReply)

	return link, nil
}

// notifyOwner applies the shared notification policy: the owner is notified
// only when the actor's email differs from theirs. Delivery failure is
// logged and swallowed; the write already succeeded.
func (s *CommentService) notifyOwner(ownerEmail string, actor *models.User, content, claimID, roleLabel string, kind NotificationKind) {
	if ownerEmail == "" || ownerEmail == actor.Email {
		return
	}
	err := s.notifier.Notify(Notification{
		RecipientEmail: ownerEmail,
		ActorName:      actor.UserName,
		ActorRole:      roleLabel,
		ActorEmail:     actor.Email,
		Content:        content,
		ClaimID:        claimID,
		Kind:           kind,
	})
	if err != nil {
		log.Printf("Failed to notify %s about %s on claim %s: %v", ownerEmail, kind, claimID, err)
	}
}
