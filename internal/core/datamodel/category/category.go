package category

import "time"

// Category is a per-user spending category. Names are unique within a
// user, not globally.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_categories_user_name"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_categories_user_name"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "categories"
}
