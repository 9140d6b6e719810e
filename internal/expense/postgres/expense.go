package expense

import (
	expensedm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/budget-tracker/internal/expense"

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

func (r *Repository) Create(e *expensedm.Expense) error {
	return r.db.Create(e).Error
}

// ListByUser returns expenses newest first, with created_at as the tie
// breaker for same-day rows.
func (r *Repository) ListByUser(userID, month string, limit, offset int) ([]expense.ExpenseRow, error) {
	query := r.db.
		Table("expenses e").
		Select("e.*, c.name AS category_name").
		Joins("JOIN categories c ON c.id = e.category_id").
		Where("e.user_id = ?", userID)

	if month != "" {
		query = query.Where("e.budget_month = ?", month)
	}

	var rows []expense.ExpenseRow
	err := query.
		Order("e.expense_date DESC, e.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
