package alert

import (
	"fmt"
	"sort"

	budgetDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// WarningAt returns the spend level at which a warning fires for a
// limit, using integer floor division. No floating point is involved
// anywhere in threshold classification.
func WarningAt(limitCents int64, thresholdPct int) int64 {
	return limitCents * int64(thresholdPct) / 100
}

// Evaluate maps the spend snapshot against a budget and its category
// limits to an ordered list of candidate alerts.
//
// Per scope the classification is a three-way partition:
//
//	spend >= limit              → exceeded (always wins over warning)
//	warningAt <= spend < limit  → warning
//	spend < warningAt           → nothing
//
// Scopes are fully independent: a category crossing its limit says
// nothing about the overall budget and vice versa. The overall alert
// (if any) comes first, then category alerts sorted by category name
// ascending, so the output order is reproducible and dedup keys are
// enumerated stably.
//
// A nil budget yields no candidates: alerting is opt-in per month.
// Limits of zero cents mean "no limit set" and are skipped.
func Evaluate(budget *budgetDatamodel.Budget, limits []CategoryLimit, agg *Aggregates) []Alert {
	if budget == nil || agg == nil {
		return nil
	}

	var alerts []Alert

	if budget.TotalLimitCents > 0 {
		spend := agg.TotalSpendCents
		limit := budget.TotalLimitCents
		switch {
		case spend >= limit:
			alerts = append(alerts, Alert{
				Scope: ScopeOverall,
				Type:  notificationDatamodel.TypeBudgetExceeded,
				Message: fmt.Sprintf("Monthly budget exceeded: %s / %s",
					FormatMoney(spend), FormatMoney(limit)),
			})
		case spend >= WarningAt(limit, budget.WarningThresholdPct):
			alerts = append(alerts, Alert{
				Scope: ScopeOverall,
				Type:  notificationDatamodel.TypeBudgetWarning,
				Message: fmt.Sprintf("Approaching monthly budget (%d%%): %s / %s",
					budget.WarningThresholdPct, FormatMoney(spend), FormatMoney(limit)),
			})
		}
	}

	spendByCategory := make(map[string]int64, len(agg.PerCategory))
	for _, cs := range agg.PerCategory {
		spendByCategory[cs.CategoryID] = cs.SpendCents
	}

	ordered := make([]CategoryLimit, len(limits))
	copy(ordered, limits)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CategoryName < ordered[j].CategoryName
	})

	for _, cl := range ordered {
		if cl.LimitCents <= 0 {
			continue
		}
		spend := spendByCategory[cl.CategoryID]
		switch {
		case spend >= cl.LimitCents:
			alerts = append(alerts, Alert{
				Scope:      ScopeCategory,
				CategoryID: cl.CategoryID,
				Type:       notificationDatamodel.TypeCategoryExceeded,
				Message: fmt.Sprintf("Category exceeded (%s): %s / %s",
					cl.CategoryName, FormatMoney(spend), FormatMoney(cl.LimitCents)),
			})
		case spend >= WarningAt(cl.LimitCents, budget.WarningThresholdPct):
			alerts = append(alerts, Alert{
				Scope:      ScopeCategory,
				CategoryID: cl.CategoryID,
				Type:       notificationDatamodel.TypeCategoryWarning,
				Message: fmt.Sprintf("Approaching category limit (%s): %s / %s",
					cl.CategoryName, FormatMoney(spend), FormatMoney(cl.LimitCents)),
			})
		}
	}

	return alerts
}
