package stores

import (
	"errors"

	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReplyLinkStore struct {
	db *gorm.DB
}

func NewReplyLinkStore(db *gorm.DB) *ReplyLinkStore {
	return &ReplyLinkStore{db: db}
}

func (s *ReplyLinkStore) FindByParent(parentID string) (*models.ReplyLink, error) {
	var link models.ReplyLink
	if err := s.db.First(&link, "comment_id = ?", parentID).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *ReplyLinkStore) FindByParentIn(parentIDs []string) ([]models.ReplyLink, error) {
	var links []models.ReplyLink
	if err := s.db.Where("comment_id IN ?", parentIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// AppendReply finds or creates the link row for parentID and appends replyID
// if it is not already a member. The row is locked for the duration of the
// transaction so concurrent replies to the same parent cannot lose updates
// or insert duplicates; comment_id carries a unique index as a second guard.
func (s *ReplyLinkStore) AppendReply(parentID, replyID string) (*models.ReplyLink, error) {
	var link models.ReplyLink
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&link, "comment_id = ?", parentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			link = models.ReplyLink{
				CommentID: parentID,
				Reply:     datatypes.NewJSONSlice([]string{replyID}),
			}
			return tx.Create(&link).Error
		}
		if err != nil {
			return err
		}
		if link.Contains(replyID) {
			return nil
		}
		link.Reply = append(link.Reply, replyID)
		return tx.Save(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}
