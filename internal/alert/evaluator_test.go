package alert_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-tracker/internal/alert"
	budgetDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

func TestAlert(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Alert Suite")
}

var _ = Describe("Evaluate", func() {
	var (
		budget *budgetDatamodel.Budget
		limits []alert.CategoryLimit
	)

	BeforeEach(func() {
		budget = &budgetDatamodel.Budget{
			ID:                  "bud_1",
			UserID:              "usr_1",
			Month:               "2026-08",
			TotalLimitCents:     10000,
			WarningThresholdPct: 80,
		}
		limits = nil
	})

	aggregates := func(total int64, perCategory ...alert.CategorySpend) *alert.Aggregates {
		return &alert.Aggregates{TotalSpendCents: total, PerCategory: perCategory}
	}

	Context("overall scope", func() {
		It("emits nothing below the warning threshold", func() {
			// warningAt = floor(10000 * 80 / 100) = 8000
			alerts := alert.Evaluate(budget, limits, aggregates(7999))
			Expect(alerts).To(BeEmpty())
		})

		It("emits a warning exactly at the threshold", func() {
			alerts := alert.Evaluate(budget, limits, aggregates(8000))
			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0].Type).To(Equal(notificationDatamodel.TypeBudgetWarning))
			Expect(alerts[0].Scope).To(Equal(alert.ScopeOverall))
			Expect(alerts[0].Message).To(Equal("Approaching monthly budget (80%): $80.00 / $100.00"))
		})

		It("emits exceeded, never both, at the limit", func() {
			alerts := alert.Evaluate(budget, limits, aggregates(10000))
			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0].Type).To(Equal(notificationDatamodel.TypeBudgetExceeded))
			Expect(alerts[0].Message).To(Equal("Monthly budget exceeded: $100.00 / $100.00"))
		})

		It("skips the overall scope when the total limit is zero", func() {
			budget.TotalLimitCents = 0
			alerts := alert.Evaluate(budget, limits, aggregates(5000))
			Expect(alerts).To(BeEmpty())
		})
	})

	Context("category scopes", func() {
		BeforeEach(func() {
			limits = []alert.CategoryLimit{
				{CategoryID: "cat_g", CategoryName: "Groceries", LimitCents: 5000},
				{CategoryID: "cat_t", CategoryName: "Transport", LimitCents: 3000},
			}
		})

		It("evaluates each category independently of the overall scope", func() {
			// Groceries exceeded, overall well under its warning level.
			agg := aggregates(5500,
				alert.CategorySpend{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 5500},
				alert.CategorySpend{CategoryID: "cat_t", CategoryName: "Transport", SpendCents: 0},
			)

			alerts := alert.Evaluate(budget, limits, agg)
			Expect(alerts).To(HaveLen(1))
			Expect(alerts[0].Type).To(Equal(notificationDatamodel.TypeCategoryExceeded))
			Expect(alerts[0].CategoryID).To(Equal("cat_g"))
		})

		It("does not let one exceeded category alter another category's outcome", func() {
			agg := aggregates(8100,
				alert.CategorySpend{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 5600},
				alert.CategorySpend{CategoryID: "cat_t", CategoryName: "Transport", SpendCents: 2500},
			)

			alerts := alert.Evaluate(budget, limits, agg)
			Expect(alerts).To(HaveLen(3))
			// overall warning (8100 >= 8000), groceries exceeded, transport
			// warning (2500 >= floor(3000*80/100)=2400).
			Expect(alerts[0].Type).To(Equal(notificationDatamodel.TypeBudgetWarning))
			Expect(alerts[1].CategoryID).To(Equal("cat_g"))
			Expect(alerts[1].Type).To(Equal(notificationDatamodel.TypeCategoryExceeded))
			Expect(alerts[2].CategoryID).To(Equal("cat_t"))
			Expect(alerts[2].Type).To(Equal(notificationDatamodel.TypeCategoryWarning))
		})

		It("orders the overall alert first, then categories by name ascending", func() {
			limits = []alert.CategoryLimit{
				{CategoryID: "cat_t", CategoryName: "Transport", LimitCents: 1000},
				{CategoryID: "cat_g", CategoryName: "Groceries", LimitCents: 1000},
			}
			agg := aggregates(10000,
				alert.CategorySpend{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 1000},
				alert.CategorySpend{CategoryID: "cat_t", CategoryName: "Transport", SpendCents: 1000},
			)

			alerts := alert.Evaluate(budget, limits, agg)
			Expect(alerts).To(HaveLen(3))
			Expect(alerts[0].Scope).To(Equal(alert.ScopeOverall))
			Expect(alerts[1].CategoryID).To(Equal("cat_g"))
			Expect(alerts[2].CategoryID).To(Equal("cat_t"))
		})

		It("treats a zero-cent limit as no limit set", func() {
			limits = []alert.CategoryLimit{
				{CategoryID: "cat_g", CategoryName: "Groceries", LimitCents: 0},
			}
			agg := aggregates(100,
				alert.CategorySpend{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 100},
			)

			alerts := alert.Evaluate(budget, limits, agg)
			Expect(alerts).To(BeEmpty())
		})

		It("treats a category missing from aggregates as zero spend", func() {
			agg := aggregates(0)
			alerts := alert.Evaluate(budget, limits, agg)
			Expect(alerts).To(BeEmpty())
		})
	})

	Context("without a budget", func() {
		It("returns no candidates", func() {
			alerts := alert.Evaluate(nil, limits, aggregates(999999))
			Expect(alerts).To(BeEmpty())
		})
	})
})

var _ = Describe("FormatMoney", func() {
	It("renders cents as dollars without floating point artifacts", func() {
		Expect(alert.FormatMoney(0)).To(Equal("$0.00"))
		Expect(alert.FormatMoney(5)).To(Equal("$0.05"))
		Expect(alert.FormatMoney(4500)).To(Equal("$45.00"))
		Expect(alert.FormatMoney(10001)).To(Equal("$100.01"))
		Expect(alert.FormatMoney(-250)).To(Equal("-$2.50"))
	})
})
