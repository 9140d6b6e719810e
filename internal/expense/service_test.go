package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	expensedm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	notificationdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/notification"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/expense"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestExpense(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Suite")
}

type mockExpenseRepository struct {
	created   []*expensedm.Expense
	rows      []expense.ExpenseRow
	createErr error
}

func (m *mockExpenseRepository) Create(e *expensedm.Expense) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, e)
	return nil
}

func (m *mockExpenseRepository) ListByUser(userID, month string, limit, offset int) ([]expense.ExpenseRow, error) {
	var out []expense.ExpenseRow
	for _, row := range m.rows {
		if row.UserID != userID {
			continue
		}
		if month != "" && row.BudgetMonth != month {
			continue
		}
		out = append(out, row)
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type mockCategoryReader struct {
	owned map[string]bool
}

func (m *mockCategoryReader) Exists(userID, categoryID string) (bool, error) {
	return m.owned[userID+"/"+categoryID], nil
}

type mockAlertEvaluator struct {
	calls         []string // userID + "/" + month
	notifications []*notificationdm.Notification
	err           error
}

func (m *mockAlertEvaluator) EvaluateAndNotify(userID, month string) ([]*notificationdm.Notification, error) {
	m.calls = append(m.calls, userID+"/"+month)
	if m.err != nil {
		return nil, m.err
	}
	return m.notifications, nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.published = append(p.published, event)
}

var _ = Describe("Expense Service", func() {
	var (
		repo       *mockExpenseRepository
		categories *mockCategoryReader
		alerts     *mockAlertEvaluator
		bus        *recordingPublisher
		service    *expense.Service
	)

	BeforeEach(func() {
		repo = &mockExpenseRepository{}
		categories = &mockCategoryReader{owned: map[string]bool{"usr_1/cat_groceries": true}}
		alerts = &mockAlertEvaluator{}
		bus = &recordingPublisher{}
		service = expense.NewService(repo, categories, alerts, bus, nil)
	})

	Describe("CreateExpense", func() {
		It("persists the expense with the month derived from the date", func() {
			result, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Expense.ID).To(HavePrefix("exp_"))
			Expect(result.Expense.BudgetMonth).To(Equal("2026-08"))
			Expect(repo.created).To(HaveLen(1))
			Expect(repo.created[0].AmountCents).To(Equal(int64(4500)))
		})

		It("evaluates alerts for the expense's month", func() {
			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(alerts.calls).To(Equal([]string{"usr_1/2026-08"}))
		})

		It("returns triggered notifications in the response", func() {
			alerts.notifications = []*notificationdm.Notification{
				{ID: "ntf_1", Type: notificationdm.TypeBudgetWarning, Message: "Budget warning: $80.00 / $100.00"},
			}

			result, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Notifications).To(HaveLen(1))
			Expect(result.Notifications[0].ID).To(Equal("ntf_1"))
		})

		It("publishes expense and notification events", func() {
			alerts.notifications = []*notificationdm.Notification{
				{ID: "ntf_1", Type: notificationdm.TypeBudgetWarning},
			}

			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(bus.published).To(HaveLen(2))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeExpenseCreated))
			Expect(bus.published[1].EventType()).To(Equal(events.EventTypeNotificationCreated))
		})

		It("keeps the expense when alert evaluation fails", func() {
			alerts.err = errors.New("aggregation unavailable")

			result, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Expense.ID).To(HavePrefix("exp_"))
			Expect(result.Notifications).To(BeEmpty())
			Expect(repo.created).To(HaveLen(1))
		})

		It("rejects a category the caller does not own", func() {
			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_foreign",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})

			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
			Expect(repo.created).To(BeEmpty())
			Expect(alerts.calls).To(BeEmpty())
		})

		It("rejects a non-positive amount", func() {
			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 0,
				ExpenseDate: "2026-08-14",
			})
			Expect(err).To(BeAssignableToTypeOf(expense.ValidationError{}))
		})

		It("rejects a malformed date", func() {
			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-32",
			})
			Expect(err).To(BeAssignableToTypeOf(expense.ValidationError{}))
		})

		It("propagates repository failures", func() {
			repo.createErr = errors.New("db down")
			_, err := service.CreateExpense("usr_1", expense.CreateExpenseDTO{
				CategoryID:  "cat_groceries",
				AmountCents: 4500,
				ExpenseDate: "2026-08-14",
			})
			Expect(err).To(MatchError("db down"))
			Expect(alerts.calls).To(BeEmpty())
		})
	})

	Describe("ListExpenses", func() {
		BeforeEach(func() {
			repo.rows = []expense.ExpenseRow{
				{
					Expense: expensedm.Expense{
						ID: "exp_2", UserID: "usr_1", BudgetMonth: "2026-08",
						CategoryID: "cat_groceries", AmountCents: 1000,
						ExpenseDate: "2026-08-15", CreatedAt: time.Now(),
					},
					CategoryName: "Groceries",
				},
				{
					Expense: expensedm.Expense{
						ID: "exp_1", UserID: "usr_1", BudgetMonth: "2026-07",
						CategoryID: "cat_groceries", AmountCents: 2000,
						ExpenseDate: "2026-07-01", CreatedAt: time.Now().Add(-time.Hour),
					},
					CategoryName: "Groceries",
				},
			}
		})

		It("returns all of the caller's expenses with category names", func() {
			listed, err := service.ListExpenses("usr_1", expense.ListParams{})

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(2))
			Expect(listed[0].CategoryName).To(Equal("Groceries"))
		})

		It("filters by month when given", func() {
			listed, err := service.ListExpenses("usr_1", expense.ListParams{Month: "2026-08"})

			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(1))
			Expect(listed[0].ID).To(Equal("exp_2"))
		})

		It("rejects a malformed month filter", func() {
			_, err := service.ListExpenses("usr_1", expense.ListParams{Month: "08-2026"})
			Expect(err).To(BeAssignableToTypeOf(expense.ValidationError{}))
		})

		It("returns an empty slice for another user", func() {
			listed, err := service.ListExpenses("usr_2", expense.ListParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})
	})
})
