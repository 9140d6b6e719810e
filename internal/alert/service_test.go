package alert_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-tracker/internal/alert"
	budgetDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	notificationDatamodel "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
)

// Mock aggregation reader for testing
type mockAggregationReader struct {
	aggregates *alert.Aggregates
	err        error
}

func (m *mockAggregationReader) Aggregate(userID, month string) (*alert.Aggregates, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.aggregates, nil
}

// Mock budget reader for testing
type mockBudgetReader struct {
	budget    *budgetDatamodel.Budget
	limits    []alert.CategoryLimit
	budgetErr error
	limitsErr error
}

func (m *mockBudgetReader) BudgetForMonth(userID, month string) (*budgetDatamodel.Budget, error) {
	if m.budgetErr != nil {
		return nil, m.budgetErr
	}
	return m.budget, nil
}

func (m *mockBudgetReader) LimitsForBudget(budgetID string) ([]alert.CategoryLimit, error) {
	if m.limitsErr != nil {
		return nil, m.limitsErr
	}
	return m.limits, nil
}

// Mock notification store that records rows in memory and answers the
// window query by scanning them, like the real repository does.
type mockNotificationStore struct {
	notifications []*notificationDatamodel.Notification
	createErr     error
}

func (m *mockNotificationStore) ExistsSince(userID, month, notifType, message string, since time.Time) (bool, error) {
	for _, n := range m.notifications {
		if n.UserID == userID && n.Month == month && n.Type == notifType && n.Message == message &&
			!n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationStore) Create(n *notificationDatamodel.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.notifications = append(m.notifications, n)
	return nil
}

var _ = Describe("AlertService", func() {
	var (
		service *alert.Service
		reader  *mockAggregationReader
		budgets *mockBudgetReader
		store   *mockNotificationStore
		logger  *slog.Logger
	)

	const (
		userID = "usr_1"
		month  = "2026-08"
	)

	newBudget := func(totalLimit int64) *budgetDatamodel.Budget {
		return &budgetDatamodel.Budget{
			ID:                  "bud_1",
			UserID:              userID,
			Month:               month,
			TotalLimitCents:     totalLimit,
			WarningThresholdPct: 80,
		}
	}

	BeforeEach(func() {
		reader = &mockAggregationReader{aggregates: &alert.Aggregates{}}
		budgets = &mockBudgetReader{}
		store = &mockNotificationStore{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = alert.NewService(reader, budgets, store, 24*time.Hour, logger)
	})

	Context("when no budget exists for the month", func() {
		It("creates nothing and does not error", func() {
			budgets.budget = nil

			created, err := service.EvaluateAndNotify(userID, month)

			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeEmpty())
			Expect(store.notifications).To(BeEmpty())
		})
	})

	Context("when spend crosses the warning threshold", func() {
		BeforeEach(func() {
			budgets.budget = newBudget(10000)
			reader.aggregates = &alert.Aggregates{TotalSpendCents: 8000}
		})

		It("persists a notification with a fresh id and nil read marker", func() {
			created, err := service.EvaluateAndNotify(userID, month)

			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].ID).To(HavePrefix("ntf_"))
			Expect(created[0].UserID).To(Equal(userID))
			Expect(created[0].Month).To(Equal(month))
			Expect(created[0].Type).To(Equal(notificationDatamodel.TypeBudgetWarning))
			Expect(created[0].ReadAt).To(BeNil())
		})

		It("suppresses an identical alert on re-evaluation inside the window", func() {
			first, err := service.EvaluateAndNotify(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(first).To(HaveLen(1))

			second, err := service.EvaluateAndNotify(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(BeEmpty())
			Expect(store.notifications).To(HaveLen(1))
		})

		It("re-raises the same alert after the dedup window elapses", func() {
			store.notifications = append(store.notifications, &notificationDatamodel.Notification{
				ID:        "ntf_old",
				UserID:    userID,
				Month:     month,
				Type:      notificationDatamodel.TypeBudgetWarning,
				Message:   "Approaching monthly budget (80%): $80.00 / $100.00",
				CreatedAt: time.Now().Add(-25 * time.Hour),
			})

			created, err := service.EvaluateAndNotify(userID, month)

			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(store.notifications).To(HaveLen(2))
		})
	})

	Context("end-to-end month scenario", func() {
		// Budget $100 at 80%, Groceries limit $50.
		BeforeEach(func() {
			budgets.budget = newBudget(10000)
			budgets.limits = []alert.CategoryLimit{
				{CategoryID: "cat_g", CategoryName: "Groceries", LimitCents: 5000},
			}
		})

		It("walks warning then exceeded without re-emitting or touching the overall scope", func() {
			// First expense: $45 in Groceries.
			reader.aggregates = &alert.Aggregates{
				TotalSpendCents: 4500,
				PerCategory: []alert.CategorySpend{
					{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 4500},
				},
			}

			created, err := service.EvaluateAndNotify(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].Type).To(Equal(notificationDatamodel.TypeCategoryWarning))

			// Second expense: another $10 in Groceries.
			reader.aggregates = &alert.Aggregates{
				TotalSpendCents: 5500,
				PerCategory: []alert.CategorySpend{
					{CategoryID: "cat_g", CategoryName: "Groceries", SpendCents: 5500},
				},
			}

			created, err = service.EvaluateAndNotify(userID, month)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(HaveLen(1))
			Expect(created[0].Type).To(Equal(notificationDatamodel.TypeCategoryExceeded))

			// Only the warning and the exceeded rows exist; overall never fired.
			Expect(store.notifications).To(HaveLen(2))
			for _, n := range store.notifications {
				Expect(n.Type).ToNot(Equal(notificationDatamodel.TypeBudgetWarning))
				Expect(n.Type).ToNot(Equal(notificationDatamodel.TypeBudgetExceeded))
			}
		})
	})

	Context("when collaborators fail", func() {
		It("propagates aggregation errors", func() {
			budgets.budget = newBudget(10000)
			reader.err = errors.New("connection reset")

			created, err := service.EvaluateAndNotify(userID, month)

			Expect(err).To(HaveOccurred())
			Expect(created).To(BeNil())
		})

		It("propagates persistence errors", func() {
			budgets.budget = newBudget(10000)
			reader.aggregates = &alert.Aggregates{TotalSpendCents: 10000}
			store.createErr = errors.New("insert failed")

			_, err := service.EvaluateAndNotify(userID, month)

			Expect(err).To(HaveOccurred())
		})
	})
})
