package config

const (
	// MaxPromptNameLength is the maximum length for prompt names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxPromptNameLength = 255

	// MaxCategoryNameLength is the maximum length for category names.
	// Same as prompt names for consistency.
	MaxCategoryNameLength = 255

	// MaxDescriptionLength is the maximum length for prompt descriptions.
	MaxDescriptionLength = 2000

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 64

	// MaxTags is the maximum number of tags on one prompt.
	MaxTags = 20

	// MaxChangelogLength is the maximum length of a version changelog note.
	MaxChangelogLength = 500
)
