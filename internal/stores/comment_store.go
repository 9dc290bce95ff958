package stores

import (
	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/gorm"
)

type CommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *CommentStore {
	return &CommentStore{db: db}
}

func (s *CommentStore) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.Preload("User.Role").First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentStore) FindByClaim(claimID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("User.Role").
		Where("claim_id = ?", claimID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentStore) Create(comment *models.Comment) error {
	return s.db.Create(comment).Error
}
