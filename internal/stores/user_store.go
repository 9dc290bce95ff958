package stores

import (
	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail is used by the login flow only; the comment service resolves
// users by id.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
