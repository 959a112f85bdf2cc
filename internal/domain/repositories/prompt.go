package repositories

import (
	"context"
	"time"

	"promptbox/internal/domain/models"
)

// PromptFilter narrows a prompt listing. Zero values mean "no filter".
type PromptFilter struct {
	CategoryID string
	Favorite   *bool
	Search     string // matched against name and description
}

// PromptRepository defines data access operations for prompts
type PromptRepository interface {
	// Create creates a new prompt and fills in the generated id and
	// timestamps.
	Create(ctx context.Context, prompt *models.Prompt) error

	// GetByID retrieves a prompt by ID
	GetByID(ctx context.Context, id string) (*models.Prompt, error)

	// List retrieves prompts matching the filter, ordered by updated_at DESC
	List(ctx context.Context, filter PromptFilter) ([]models.Prompt, error)

	// Update updates a prompt's name, description, tags and category
	Update(ctx context.Context, prompt *models.Prompt) error

	// ToggleFavorite atomically flips the favorite flag and returns the
	// updated prompt.
	ToggleFavorite(ctx context.Context, id string) (*models.Prompt, error)

	// Touch bumps a prompt's updated_at timestamp.
	Touch(ctx context.Context, id string, at time.Time) error

	// ClearCategory detaches every prompt referencing the given category.
	ClearCategory(ctx context.Context, categoryID string) error

	// Delete removes a prompt; its versions go with it (FK cascade).
	Delete(ctx context.Context, id string) error
}
