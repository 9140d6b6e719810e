package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	expensedm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// EventPublisher decouples the service from the full event bus surface.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Service handles the expense write path. A write is: validate, persist,
// evaluate alerts, respond. Alert evaluation runs synchronously so the
// triggered notifications are part of the write's response.
type Service struct {
	repo       Repository
	categories CategoryReader
	alerts     AlertEvaluator
	eventBus   EventPublisher
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryReader, alerts AlertEvaluator, eventBus EventPublisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		categories: categories,
		alerts:     alerts,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// CreateExpense records a ledger row and runs budget evaluation for the
// row's month. The expense write itself never fails because evaluation
// failed; a persisted expense with no alert beats a lost expense.
func (s *Service) CreateExpense(userID string, dto CreateExpenseDTO) (CreateResult, error) {
	if err := dto.Validate(); err != nil {
		return CreateResult{}, err
	}
	if !internal.ValidDate(dto.ExpenseDate) {
		return CreateResult{}, ValidationError{Msg: "expenseDate must be in YYYY-MM-DD format"}
	}

	ok, err := s.categories.Exists(userID, dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to check category ownership", "error", err, "user_id", userID)
		return CreateResult{}, err
	}
	if !ok {
		return CreateResult{}, internal.ErrCategoryNotFound
	}

	month := internal.MonthOfDate(dto.ExpenseDate)
	record := &expensedm.Expense{
		ID:          internal.NewID("exp"),
		UserID:      userID,
		BudgetMonth: month,
		CategoryID:  dto.CategoryID,
		AmountCents: dto.AmountCents,
		Description: dto.Description,
		ExpenseDate: dto.ExpenseDate,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return CreateResult{}, err
	}

	notifications, err := s.alerts.EvaluateAndNotify(userID, month)
	if err != nil {
		s.logger.Error("alert evaluation failed after expense write",
			"error", err, "user_id", userID, "month", month, "expense_id", record.ID)
		notifications = nil
	}

	if s.eventBus != nil {
		ctx := context.Background()
		s.eventBus.Publish(ctx, events.NewExpenseCreatedEvent(userID, record.ID, month))
		for _, n := range notifications {
			s.eventBus.Publish(ctx, events.NewNotificationCreatedEvent(userID, n))
		}
	}

	return CreateResult{
		Expense:       toView(ExpenseRow{Expense: *record}),
		Notifications: notifications,
	}, nil
}

// ListExpenses returns the caller's expenses, newest first.
func (s *Service) ListExpenses(userID string, params ListParams) ([]Expense, error) {
	if params.Month != "" && !internal.ValidMonth(params.Month) {
		return nil, ValidationError{Msg: "month must be in YYYY-MM format"}
	}
	if params.Limit <= 0 {
		params.Limit = DefaultListLimit
	}
	if params.Limit > MaxListLimit {
		params.Limit = MaxListLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	rows, err := s.repo.ListByUser(userID, params.Month, params.Limit, params.Offset)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, err
	}

	expenses := make([]Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, toView(row))
	}
	return expenses, nil
}

func toView(row ExpenseRow) Expense {
	return Expense{
		ID:           row.ID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		AmountCents:  row.AmountCents,
		Description:  row.Description,
		ExpenseDate:  row.ExpenseDate,
		BudgetMonth:  row.BudgetMonth,
		CreatedAt:    row.CreatedAt,
	}
}
