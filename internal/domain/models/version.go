package models

import (
	"time"
)

// Version is an immutable snapshot of a prompt's content. Numbers start at 1
// per prompt and increase strictly; a version is never updated or reordered
// after creation.
type Version struct {
	ID        string    `json:"id" db:"id"`
	PromptID  string    `json:"prompt_id" db:"prompt_id"`
	Number    int       `json:"version_num" db:"version_num"`
	Content   string    `json:"content" db:"content"`
	Changelog *string   `json:"changelog,omitempty" db:"changelog"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
