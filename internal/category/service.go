package category

import (
	"log/slog"

	"github.com/frahmantamala/budget-tracker/internal"
	categorydm "github.com/frahmantamala/budget-tracker/internal/core/datamodel/category"
)

// Service handles category business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateCategory creates a category owned by the caller. Names are
// unique per user, compared after trimming.
func (s *Service) CreateCategory(userID string, dto CreateCategoryDTO) (Category, error) {
	if err := dto.Validate(); err != nil {
		return Category{}, err
	}

	existing, err := s.repo.GetByName(userID, dto.Name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err, "user_id", userID)
		return Category{}, err
	}
	if existing != nil {
		return Category{}, internal.ErrCategoryExists
	}

	record := &categorydm.Category{
		ID:     internal.NewID("cat"),
		UserID: userID,
		Name:   dto.Name,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return Category{}, err
	}

	return fromDatamodel(record), nil
}

// ListCategories returns the caller's categories sorted by name.
func (s *Service) ListCategories(userID string) ([]Category, error) {
	records, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, err
	}

	categories := make([]Category, 0, len(records))
	for _, r := range records {
		categories = append(categories, fromDatamodel(r))
	}
	return categories, nil
}
