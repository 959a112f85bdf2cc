package services

import (
	"context"

	"promptbox/internal/domain/models"
)

// CreateVersionRequest is the input for appending a version. Content may be
// any string, including empty; saving is a log append, not a validation
// gate.
type CreateVersionRequest struct {
	Content   string  `json:"content"`
	Changelog *string `json:"changelog,omitempty"`
}

// VersionService defines business logic for a prompt's version history
type VersionService interface {
	// Append records a new snapshot as the prompt's next version and bumps
	// the prompt's updated_at, both in one transaction.
	Append(ctx context.Context, promptID string, req *CreateVersionRequest) (*models.Version, error)

	// List retrieves a prompt's versions, newest first
	List(ctx context.Context, promptID string) ([]models.Version, error)

	// Restore returns the content of the given version so the caller can
	// stage it as the working draft. It never creates a version and never
	// mutates history.
	Restore(ctx context.Context, versionID string) (string, error)
}
