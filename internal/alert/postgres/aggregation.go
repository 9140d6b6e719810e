package postgres

import (
	"github.com/frahmantamala/budget-tracker/internal/alert"
	"gorm.io/gorm"
)

// AggregationRepository reads the spend snapshot straight from the
// ledger tables. Both queries run inside one transaction so a
// concurrent expense insert for the same user cannot land between the
// total and the per-category pass.
type AggregationRepository struct {
	db *gorm.DB
}

func NewAggregationRepository(db *gorm.DB) alert.AggregationReader {
	return &AggregationRepository{db: db}
}

func (r *AggregationRepository) Aggregate(userID, month string) (*alert.Aggregates, error) {
	agg := &alert.Aggregates{PerCategory: []alert.CategorySpend{}}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		totalQuery := `SELECT COALESCE(SUM(amount_cents), 0)
		               FROM expenses
		               WHERE user_id = ? AND budget_month = ?`
		if err := tx.Raw(totalQuery, userID, month).Row().Scan(&agg.TotalSpendCents); err != nil {
			return err
		}

		// LEFT JOIN keeps zero-spend categories in the result: absence
		// of spend is a reportable zero, not an omission.
		perCategoryQuery := `SELECT c.id AS category_id, c.name AS category_name,
		                            COALESCE(SUM(e.amount_cents), 0) AS spend_cents
		                     FROM categories c
		                     LEFT JOIN expenses e
		                       ON e.category_id = c.id
		                      AND e.user_id = ?
		                      AND e.budget_month = ?
		                     WHERE c.user_id = ?
		                     GROUP BY c.id, c.name
		                     ORDER BY c.name ASC`
		rows, err := tx.Raw(perCategoryQuery, userID, month, userID).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var cs alert.CategorySpend
			if err := rows.Scan(&cs.CategoryID, &cs.CategoryName, &cs.SpendCents); err != nil {
				return err
			}
			agg.PerCategory = append(agg.PerCategory, cs)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return agg, nil
}
