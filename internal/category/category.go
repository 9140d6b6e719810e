package category

import (
	categorydm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
)

// Category is the API-facing view of a spending category.
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
}

// Repository defines the data access methods for categories.
type Repository interface {
	Create(category *categorydm.Category) error
	GetByName(userID, name string) (*categorydm.Category, error)
	GetByID(userID, categoryID string) (*categorydm.Category, error)
	ListByUser(userID string) ([]*categorydm.Category, error)
}

// ServiceAPI is what the HTTP handler needs from the category service.
type ServiceAPI interface {
	CreateCategory(userID string, dto CreateCategoryDTO) (Category, error)
	ListCategories(userID string) ([]Category, error)
}

func fromDatamodel(c *categorydm.Category) Category {
	return Category{ID: c.ID, UserID: c.UserID, Name: c.Name}
}
