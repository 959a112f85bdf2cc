package services

import (
	"context"

	"promptbox/internal/domain/models"
)

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  string  `json:"icon,omitempty"`
}

// UpdateCategoryRequest is the input for updating a category. Position is
// not part of it; ordering only changes through Reorder.
type UpdateCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  string  `json:"icon,omitempty"`
}

// CategoryService defines business logic for the ordered category collection
type CategoryService interface {
	// CreateCategory creates a category appended at the end of the order
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error)

	// ListCategories retrieves all categories in display order
	ListCategories(ctx context.Context) ([]models.Category, error)

	// UpdateCategory updates a category's name, color and icon
	UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*models.Category, error)

	// DeleteCategory removes a category, detaches its prompts and closes
	// the position gap so the remaining order stays dense.
	DeleteCategory(ctx context.Context, id string) error

	// Reorder reassigns positions so they match the given id sequence.
	// The sequence must be an exact permutation of all stored ids; anything
	// else is rejected with a PreconditionError before any write. The new
	// order is applied in a single transaction.
	Reorder(ctx context.Context, ids []string) error
}
