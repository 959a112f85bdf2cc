package repositories

import (
	"context"

	"promptbox/internal/domain/models"
)

// CategoryRepository defines data access operations for categories.
//
// Reorder-related methods (ListIDs, SetPosition, Renumber) are primitives;
// the service composes them inside a transaction so a reorder is observed
// all-or-nothing.
type CategoryRepository interface {
	// Create inserts a category at the end of the collection
	// (position = current max + 1, or 0 when empty) and fills in the
	// generated id and timestamp.
	Create(ctx context.Context, category *models.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id string) (*models.Category, error)

	// List retrieves all categories ordered by position, with creation
	// time and id as deterministic tie-breakers.
	List(ctx context.Context) ([]models.Category, error)

	// ListIDs returns the ids of all categories in display order.
	ListIDs(ctx context.Context) ([]string, error)

	// Update updates a category's name, color and icon. Position is not
	// touched here; it only changes through SetPosition/Renumber.
	Update(ctx context.Context, category *models.Category) error

	// SetPosition assigns an explicit sort position to one category.
	SetPosition(ctx context.Context, id string, position int) error

	// Renumber reassigns dense positions 0..N-1 following the current
	// display order, closing any gaps.
	Renumber(ctx context.Context) error

	// Delete removes a category by ID.
	Delete(ctx context.Context, id string) error
}
