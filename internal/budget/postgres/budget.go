package postgres

import (
	"errors"

	"github.com/frahmantamala/budget-tracker/internal/alert"
	budgetdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Upsert writes the budget row and upserts each category limit keyed on
// (budget_id, category_id), all in one transaction. Limits for
// categories not in the slice keep their stored value.
func (r *Repository) Upsert(budget *budgetdm.Budget, limits []*budgetdm.CategoryLimit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(budget).Error; err != nil {
			return err
		}
		if len(limits) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "budget_id"}, {Name: "category_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"limit_cents"}),
			}).Create(limits).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// BudgetForMonth returns nil, nil when the user has no budget for the
// month.
func (r *Repository) BudgetForMonth(userID, month string) (*budgetdm.Budget, error) {
	var budget budgetdm.Budget
	err := r.db.Where("user_id = ? AND month = ?", userID, month).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// LimitsForBudget loads a budget's category limits joined with category
// names, ordered by name for deterministic evaluation and rendering.
func (r *Repository) LimitsForBudget(budgetID string) ([]alert.CategoryLimit, error) {
	var limits []alert.CategoryLimit
	err := r.db.
		Table("category_limits cl").
		Select("cl.category_id, c.name AS category_name, cl.limit_cents").
		Joins("JOIN categories c ON c.id = cl.category_id").
		Where("cl.budget_id = ?", budgetID).
		Order("c.name ASC").
		Scan(&limits).Error
	if err != nil {
		return nil, err
	}
	return limits, nil
}
