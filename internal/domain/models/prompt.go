package models

import (
	"time"
)

// Prompt is a library entry. CategoryID is a nullable reference resolved by
// lookup at read time; deleting a category clears it rather than leaving a
// dangling id.
type Prompt struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Tags        []string  `json:"tags" db:"tags"`
	CategoryID  *string   `json:"category_id,omitempty" db:"category_id"`
	Favorite    bool      `json:"favorite" db:"favorite"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
