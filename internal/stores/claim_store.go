package stores

import (
	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/gorm"
)

type ClaimStore struct {
	db *gorm.DB
}

func NewClaimStore(db *gorm.DB) *ClaimStore {
	return &ClaimStore{db: db}
}

func (s *ClaimStore) FindByID(id string) (*models.Claim, error) {
	var claim models.Claim
	if err := s.db.Preload("User").First(&claim, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &claim, nil
}
