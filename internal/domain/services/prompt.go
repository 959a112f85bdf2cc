package services

import (
	"context"

	"promptbox/internal/domain/models"
)

// CreatePromptRequest is the input for creating a prompt
type CreatePromptRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
}

// UpdatePromptRequest is the input for updating a prompt
type UpdatePromptRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryID  *string  `json:"category_id,omitempty"`
}

// ListPromptsRequest narrows a prompt listing
type ListPromptsRequest struct {
	CategoryID string
	Favorite   *bool
	Search     string
}

// PromptService defines business logic for prompts
type PromptService interface {
	// CreatePrompt creates a new prompt
	CreatePrompt(ctx context.Context, req *CreatePromptRequest) (*models.Prompt, error)

	// GetPrompt retrieves a prompt by ID
	GetPrompt(ctx context.Context, id string) (*models.Prompt, error)

	// ListPrompts retrieves prompts matching the request, newest first
	ListPrompts(ctx context.Context, req *ListPromptsRequest) ([]models.Prompt, error)

	// UpdatePrompt updates a prompt's name, description, tags and category
	UpdatePrompt(ctx context.Context, id string, req *UpdatePromptRequest) (*models.Prompt, error)

	// ToggleFavorite flips the favorite flag and returns the updated prompt
	ToggleFavorite(ctx context.Context, id string) (*models.Prompt, error)

	// DeletePrompt removes a prompt and all of its versions
	DeletePrompt(ctx context.Context, id string) error
}
