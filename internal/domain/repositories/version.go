package repositories

import (
	"context"

	"promptbox/internal/domain/models"
)

// VersionRepository defines data access operations for the append-only
// version log. There is deliberately no update or reorder method.
type VersionRepository interface {
	// Append inserts a new version numbered one past the prompt's current
	// maximum (1 when the prompt has none) and fills in the generated id,
	// number and timestamp. A UNIQUE(prompt_id, version_num) constraint
	// turns a lost race over the next number into a conflict instead of a
	// duplicate.
	Append(ctx context.Context, version *models.Version) error

	// ListByPrompt retrieves a prompt's versions ordered by version_num DESC
	ListByPrompt(ctx context.Context, promptID string) ([]models.Version, error)

	// GetByID retrieves a version by ID
	GetByID(ctx context.Context, id string) (*models.Version, error)
}
