package category

import (
	"errors"

	categorydm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"

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

func (r *Repository) Create(category *categorydm.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) GetByName(userID, name string) (*categorydm.Category, error) {
	var category categorydm.Category
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) GetByID(userID, categoryID string) (*categorydm.Category, error) {
	var category categorydm.Category
	err := r.db.Where("user_id = ? AND id = ?", userID, categoryID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Exists reports whether the category belongs to the user. Ownership
// checks from other modules go through this instead of loading rows.
func (r *Repository) Exists(userID, categoryID string) (bool, error) {
	var count int64
	err := r.db.Model(&categorydm.Category{}).
		Where("user_id = ? AND id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListByUser(userID string) ([]*categorydm.Category, error) {
	var categories []*categorydm.Category
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
