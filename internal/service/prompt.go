package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"promptbox/internal/config"
	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
	"promptbox/internal/domain/services"
)

// promptService implements the PromptService interface
type promptService struct {
	promptRepo   repositories.PromptRepository
	categoryRepo repositories.CategoryRepository
	logger       *slog.Logger
}

// NewPromptService creates a new prompt service
func NewPromptService(
	promptRepo repositories.PromptRepository,
	categoryRepo repositories.CategoryRepository,
	logger *slog.Logger,
) services.PromptService {
	return &promptService{
		promptRepo:   promptRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreatePrompt creates a new prompt
func (s *promptService) CreatePrompt(ctx context.Context, req *services.CreatePromptRequest) (*models.Prompt, error) {
	if err := s.validatePromptFields(req.Name, req.Tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	prompt := &models.Prompt{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Tags:        normalizeTags(req.Tags),
		CategoryID:  req.CategoryID,
	}

	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created",
		"id", prompt.ID,
		"name", prompt.Name,
	)

	return prompt, nil
}

// GetPrompt retrieves a prompt by ID
func (s *promptService) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	return s.promptRepo.GetByID(ctx, id)
}

// ListPrompts retrieves prompts matching the request, newest first
func (s *promptService) ListPrompts(ctx context.Context, req *services.ListPromptsRequest) ([]models.Prompt, error) {
	filter := repositories.PromptFilter{
		CategoryID: req.CategoryID,
		Favorite:   req.Favorite,
		Search:     strings.TrimSpace(req.Search),
	}
	return s.promptRepo.List(ctx, filter)
}

// UpdatePrompt updates a prompt's name, description, tags and category
func (s *promptService) UpdatePrompt(ctx context.Context, id string, req *services.UpdatePromptRequest) (*models.Prompt, error) {
	if err := s.validatePromptFields(req.Name, req.Tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	prompt, err := s.promptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	prompt.Name = strings.TrimSpace(req.Name)
	prompt.Description = req.Description
	prompt.Tags = normalizeTags(req.Tags)
	prompt.CategoryID = req.CategoryID

	if err := s.promptRepo.Update(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt updated",
		"id", prompt.ID,
		"name", prompt.Name,
	)

	return prompt, nil
}

// ToggleFavorite flips the favorite flag and returns the updated prompt
func (s *promptService) ToggleFavorite(ctx context.Context, id string) (*models.Prompt, error) {
	prompt, err := s.promptRepo.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("prompt favorite toggled",
		"id", prompt.ID,
		"favorite", prompt.Favorite,
	)

	return prompt, nil
}

// DeletePrompt removes a prompt and all of its versions
func (s *promptService) DeletePrompt(ctx context.Context, id string) error {
	if _, err := s.promptRepo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.promptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("prompt deleted", "id", id)

	return nil
}

// validatePromptFields validates a prompt name and tag list
func (s *promptService) validatePromptFields(name string, tags []string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxPromptNameLength),
		validation.By(validateNonBlank("name")),
	)
	if err != nil {
		return fmt.Errorf("name: %v", err)
	}

	if len(tags) > config.MaxTags {
		return fmt.Errorf("tags: at most %d tags allowed", config.MaxTags)
	}
	for _, tag := range tags {
		if err := validation.Validate(tag, validation.Required, validation.Length(1, config.MaxTagLength)); err != nil {
			return fmt.Errorf("tag %q: %v", tag, err)
		}
	}

	return nil
}

// normalizeTags trims tags and drops blanks and duplicates. Tag order is not
// significant; first occurrence wins.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
