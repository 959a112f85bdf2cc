package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
)

// PostgresPromptRepository implements the PromptRepository interface
type PostgresPromptRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPromptRepository creates a new prompt repository
func NewPromptRepository(config *RepositoryConfig) repositories.PromptRepository {
	return &PostgresPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new prompt
func (r *PostgresPromptRepository) Create(ctx context.Context, prompt *models.Prompt) error {
	if prompt.ID == "" {
		prompt.ID = uuid.NewString()
	}
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, tags, category_id, favorite, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		prompt.ID,
		prompt.Name,
		prompt.Description,
		prompt.Tags,
		prompt.CategoryID,
		prompt.Favorite,
	).Scan(&prompt.CreatedAt, &prompt.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("category %v: %w", prompt.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("create prompt: %w", err)
	}

	return nil
}

// GetByID retrieves a prompt by ID
func (r *PostgresPromptRepository) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, tags, category_id, favorite, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	var prompt models.Prompt
	err := db.QueryRow(ctx, query, id).Scan(
		&prompt.ID,
		&prompt.Name,
		&prompt.Description,
		&prompt.Tags,
		&prompt.CategoryID,
		&prompt.Favorite,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get prompt: %w", err)
	}

	return &prompt, nil
}

// List retrieves prompts matching the filter, ordered by updated_at DESC
func (r *PostgresPromptRepository) List(ctx context.Context, filter repositories.PromptFilter) ([]models.Prompt, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, tags, category_id, favorite, created_at, updated_at
		FROM %s
	`, r.tables.Prompts)

	var conditions []string
	var args []interface{}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, "category_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Favorite != nil {
		args = append(args, *filter.Favorite)
		conditions = append(conditions, "favorite = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE $"+n+" OR description ILIKE $"+n+")")
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY updated_at DESC"

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var prompt models.Prompt
		err := rows.Scan(
			&prompt.ID,
			&prompt.Name,
			&prompt.Description,
			&prompt.Tags,
			&prompt.CategoryID,
			&prompt.Favorite,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prompts: %w", err)
	}

	if prompts == nil {
		prompts = []models.Prompt{}
	}

	return prompts, nil
}

// Update updates a prompt's name, description, tags and category
func (r *PostgresPromptRepository) Update(ctx context.Context, prompt *models.Prompt) error {
	if prompt.Tags == nil {
		prompt.Tags = []string{}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, tags = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		prompt.Name,
		prompt.Description,
		prompt.Tags,
		prompt.CategoryID,
		prompt.ID,
	).Scan(&prompt.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("prompt %s: %w", prompt.ID, domain.ErrNotFound)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("category %v: %w", prompt.CategoryID, domain.ErrNotFound)
		}
		return fmt.Errorf("update prompt: %w", err)
	}

	return nil
}

// ToggleFavorite atomically flips the favorite flag
func (r *PostgresPromptRepository) ToggleFavorite(ctx context.Context, id string) (*models.Prompt, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET favorite = NOT favorite, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, tags, category_id, favorite, created_at, updated_at
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	var prompt models.Prompt
	err := db.QueryRow(ctx, query, id).Scan(
		&prompt.ID,
		&prompt.Name,
		&prompt.Description,
		&prompt.Tags,
		&prompt.CategoryID,
		&prompt.Favorite,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	return &prompt, nil
}

// Touch bumps a prompt's updated_at timestamp
func (r *PostgresPromptRepository) Touch(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET updated_at = $1
		WHERE id = $2
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("touch prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ClearCategory detaches every prompt referencing the given category
func (r *PostgresPromptRepository) ClearCategory(ctx context.Context, categoryID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET category_id = NULL
		WHERE category_id = $1
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	if _, err := db.Exec(ctx, query, categoryID); err != nil {
		return fmt.Errorf("clear prompt category: %w", err)
	}

	return nil
}

// Delete removes a prompt; versions cascade via FK
func (r *PostgresPromptRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Prompts)

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
