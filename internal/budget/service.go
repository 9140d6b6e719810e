package budget

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/alert"
	budgetdm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/budget"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
)

// EventPublisher decouples the service from the full event bus surface.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Service handles budget business logic.
type Service struct {
	repo       Repository
	categories CategoryReader
	aggregates alert.AggregationReader
	eventBus   EventPublisher
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryReader, aggregates alert.AggregationReader, eventBus EventPublisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		categories: categories,
		aggregates: aggregates,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// SaveBudget creates or updates the budget for a month. Category limits
// are upserted by category; limits for categories not named in the
// request keep their stored value. Saving never triggers alert
// evaluation, the next expense write picks up the new limits.
func (s *Service) SaveBudget(userID, month string, dto SaveBudgetDTO) (BudgetView, error) {
	if !internal.ValidMonth(month) {
		return BudgetView{}, ValidationError{Msg: "month must be in YYYY-MM format"}
	}
	if err := dto.Validate(); err != nil {
		return BudgetView{}, err
	}

	for _, cl := range dto.CategoryLimits {
		ok, err := s.categories.Exists(userID, cl.CategoryID)
		if err != nil {
			s.logger.Error("failed to check category ownership", "error", err, "user_id", userID)
			return BudgetView{}, err
		}
		if !ok {
			return BudgetView{}, internal.ErrCategoryNotFound
		}
	}

	now := time.Now().UTC()
	record := &budgetdm.Budget{
		ID:                  internal.NewID("bud"),
		UserID:              userID,
		Month:               month,
		TotalLimitCents:     dto.TotalLimitCents,
		WarningThresholdPct: dto.WarningThresholdPct,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	// Saving twice for the same month updates in place.
	if existing, err := s.repo.BudgetForMonth(userID, month); err != nil {
		return BudgetView{}, err
	} else if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}

	limits := make([]*budgetdm.CategoryLimit, 0, len(dto.CategoryLimits))
	for _, cl := range dto.CategoryLimits {
		limits = append(limits, &budgetdm.CategoryLimit{
			ID:         internal.NewID("clm"),
			BudgetID:   record.ID,
			CategoryID: cl.CategoryID,
			LimitCents: cl.LimitCents,
		})
	}

	if err := s.repo.Upsert(record, limits); err != nil {
		s.logger.Error("failed to save budget", "error", err, "user_id", userID, "month", month)
		return BudgetView{}, err
	}

	if s.eventBus != nil {
		s.eventBus.Publish(context.Background(), events.NewBudgetUpdatedEvent(userID, month))
	}

	return s.buildView(record)
}

// GetBudget returns the budget for a month with its category limits.
func (s *Service) GetBudget(userID, month string) (BudgetView, error) {
	if !internal.ValidMonth(month) {
		return BudgetView{}, ValidationError{Msg: "month must be in YYYY-MM format"}
	}

	record, err := s.repo.BudgetForMonth(userID, month)
	if err != nil {
		return BudgetView{}, err
	}
	if record == nil {
		return BudgetView{}, internal.ErrBudgetNotFound
	}

	return s.buildView(record)
}

// GetSummary reports spend against limits for a month. It reuses the
// same aggregation the alert evaluator reads, so the numbers shown to
// the user match the ones alerts fired on.
func (s *Service) GetSummary(userID, month string) (Summary, error) {
	if !internal.ValidMonth(month) {
		return Summary{}, ValidationError{Msg: "month must be in YYYY-MM format"}
	}

	record, err := s.repo.BudgetForMonth(userID, month)
	if err != nil {
		return Summary{}, err
	}
	if record == nil {
		return Summary{}, internal.ErrBudgetNotFound
	}

	limits, err := s.repo.LimitsForBudget(record.ID)
	if err != nil {
		return Summary{}, err
	}

	agg, err := s.aggregates.Aggregate(userID, month)
	if err != nil {
		s.logger.Error("failed to aggregate spend", "error", err, "user_id", userID, "month", month)
		return Summary{}, err
	}

	limitByCategory := make(map[string]int64, len(limits))
	for _, l := range limits {
		limitByCategory[l.CategoryID] = l.LimitCents
	}

	categories := make([]SummaryCategory, 0, len(agg.PerCategory))
	for _, cs := range agg.PerCategory {
		limit := limitByCategory[cs.CategoryID]
		categories = append(categories, SummaryCategory{
			CategoryID:     cs.CategoryID,
			CategoryName:   cs.CategoryName,
			LimitCents:     limit,
			SpendCents:     cs.SpendCents,
			RemainingCents: limit - cs.SpendCents,
			Status:         statusFor(limit, record.WarningThresholdPct, cs.SpendCents),
		})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CategoryName < categories[j].CategoryName
	})

	return Summary{
		Month:               month,
		TotalLimitCents:     record.TotalLimitCents,
		TotalSpendCents:     agg.TotalSpendCents,
		RemainingCents:      record.TotalLimitCents - agg.TotalSpendCents,
		WarningThresholdPct: record.WarningThresholdPct,
		Status:              statusFor(record.TotalLimitCents, record.WarningThresholdPct, agg.TotalSpendCents),
		Categories:          categories,
	}, nil
}

// statusFor classifies spend against a limit with the same floor math
// the evaluator uses. A zero limit is unenforced and always "ok".
func statusFor(limitCents int64, thresholdPct int, spendCents int64) string {
	if limitCents <= 0 {
		return StatusOK
	}
	switch {
	case spendCents >= limitCents:
		return StatusExceeded
	case spendCents >= alert.WarningAt(limitCents, thresholdPct):
		return StatusWarning
	default:
		return StatusOK
	}
}

func (s *Service) buildView(record *budgetdm.Budget) (BudgetView, error) {
	limits, err := s.repo.LimitsForBudget(record.ID)
	if err != nil {
		return BudgetView{}, err
	}

	views := make([]CategoryLimitView, 0, len(limits))
	for _, l := range limits {
		views = append(views, CategoryLimitView{
			CategoryID:   l.CategoryID,
			CategoryName: l.CategoryName,
			LimitCents:   l.LimitCents,
		})
	}

	return BudgetView{
		ID:                  record.ID,
		Month:               record.Month,
		TotalLimitCents:     record.TotalLimitCents,
		WarningThresholdPct: record.WarningThresholdPct,
		CategoryLimits:      views,
	}, nil
}
