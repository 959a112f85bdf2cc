package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptbox/internal/config"
	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
	"promptbox/internal/domain/services"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// categoryService implements the CategoryService interface
type categoryService struct {
	categoryRepo repositories.CategoryRepository
	promptRepo   repositories.PromptRepository
	txManager    repositories.TransactionManager
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepository,
	promptRepo repositories.PromptRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		promptRepo:   promptRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateCategory creates a category appended at the end of the order
func (s *categoryService) CreateCategory(ctx context.Context, req *services.CreateCategoryRequest) (*models.Category, error) {
	if err := s.validateCategoryFields(req.Name, req.Color); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category := &models.Category{
		Name:  strings.TrimSpace(req.Name),
		Color: req.Color,
		Icon:  models.NormalizeIcon(req.Icon),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		"id", category.ID,
		"name", category.Name,
		"position", category.Position,
	)

	return category, nil
}

// ListCategories retrieves all categories in display order
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// UpdateCategory updates a category's name, color and icon
func (s *categoryService) UpdateCategory(ctx context.Context, id string, req *services.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.validateCategoryFields(req.Name, req.Color); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Color = req.Color
	category.Icon = models.NormalizeIcon(req.Icon)

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category updated",
		"id", category.ID,
		"name", category.Name,
	)

	return category, nil
}

// DeleteCategory removes a category. Prompts referencing it are detached
// (uncategorized, never dangling) and the remaining positions are renumbered
// to stay dense, all in one transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.promptRepo.ClearCategory(ctx, id); err != nil {
			return err
		}
		if err := s.categoryRepo.Delete(ctx, id); err != nil {
			return err
		}
		return s.categoryRepo.Renumber(ctx)
	})
	if err != nil {
		return err
	}

	s.logger.Info("category deleted", "id", id)

	return nil
}

// Reorder reassigns positions so they match the given id sequence. The
// sequence must contain every existing id exactly once; anything else is a
// caller contract violation rejected before any position is written. The
// whole reorder commits or rolls back as one transaction.
func (s *categoryService) Reorder(ctx context.Context, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return &domain.PreconditionError{
				Message: fmt.Sprintf("reorder sequence contains category %s twice", id),
			}
		}
		seen[id] = true
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		existing, err := s.categoryRepo.ListIDs(ctx)
		if err != nil {
			return err
		}

		if len(ids) != len(existing) {
			return &domain.PreconditionError{
				Message: fmt.Sprintf("reorder sequence has %d ids, expected %d", len(ids), len(existing)),
			}
		}
		for _, id := range existing {
			if !seen[id] {
				return &domain.PreconditionError{
					Message: fmt.Sprintf("reorder sequence is missing category %s", id),
				}
			}
		}

		for position, id := range ids {
			if err := s.categoryRepo.SetPosition(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("categories reordered", "count", len(ids))

	return nil
}

// validateCategoryFields validates a category name and optional color
func (s *categoryService) validateCategoryFields(name string, color *string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxCategoryNameLength),
		validation.By(validateNonBlank("name")),
	)
	if err != nil {
		return fmt.Errorf("name: %v", err)
	}

	if color != nil && !hexColorPattern.MatchString(*color) {
		return fmt.Errorf("color: must be a hex string like #4f46e5")
	}

	return nil
}

// validateNonBlank rejects values that are empty after trimming
func validateNonBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s must be a string", field)
		}
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be blank", field)
		}
		return nil
	}
}
