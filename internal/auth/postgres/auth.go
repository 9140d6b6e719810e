package auth

import (
	"errors"

	userdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/user"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(user *userdm.User) error {
	return r.db.Create(user).Error
}

// GetByEmail returns (nil, nil) when no account matches. Callers treat
// a missing account and a wrong password the same way.
func (r *Repository) GetByEmail(email string) (*userdm.User, error) {
	var user userdm.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetByID(userID string) (*userdm.User, error) {
	var user userdm.User
	err := r.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
