package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"promptbox/internal/domain"
	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
)

// PostgresCategoryRepository implements the CategoryRepository interface
type PostgresCategoryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &PostgresCategoryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a category at the end of the collection
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, name, color, icon, position, created_at)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position) + 1, 0), NOW()
		FROM %[1]s
		RETURNING position, created_at
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		category.ID,
		category.Name,
		category.Color,
		category.Icon,
	).Scan(&category.Position, &category.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			existingID, queryErr := r.getExistingCategoryID(ctx, category.Name)
			if queryErr != nil {
				return fmt.Errorf("category '%s' already exists: %w", category.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category '%s' already exists", category.Name),
				ResourceType: "category",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, icon, position, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	var category models.Category
	err := db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Color,
		&category.Icon,
		&category.Position,
		&category.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

// List retrieves all categories in display order. Creation time and id are
// deterministic tie-breakers should two rows ever share a position.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	query := fmt.Sprintf(`
		SELECT id, name, color, icon, position, created_at
		FROM %s
		ORDER BY position, created_at, id
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Color,
			&category.Icon,
			&category.Position,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	if categories == nil {
		categories = []models.Category{}
	}

	return categories, nil
}

// ListIDs returns the ids of all categories in display order
func (r *PostgresCategoryRepository) ListIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		ORDER BY position, created_at, id
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list category ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category ids: %w", err)
	}

	return ids, nil
}

// Update updates a category's name, color and icon
func (r *PostgresCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, color = $2, icon = $3
		WHERE id = $4
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query,
		category.Name,
		category.Color,
		category.Icon,
		category.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			existingID, queryErr := r.getExistingCategoryID(ctx, category.Name)
			if queryErr != nil {
				return fmt.Errorf("category name '%s' already exists: %w", category.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("category name '%s' already exists", category.Name),
				ResourceType: "category",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("update category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, domain.ErrNotFound)
	}

	return nil
}

// SetPosition assigns an explicit sort position to one category
func (r *PostgresCategoryRepository) SetPosition(ctx context.Context, id string, position int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET position = $1
		WHERE id = $2
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, position, id)
	if err != nil {
		return fmt.Errorf("set category position: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Renumber reassigns dense positions 0..N-1 following the current display
// order, closing any gaps.
func (r *PostgresCategoryRepository) Renumber(ctx context.Context) error {
	query := fmt.Sprintf(`
		WITH ordered AS (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position, created_at, id) - 1 AS new_position
			FROM %[1]s
		)
		UPDATE %[1]s c
		SET position = o.new_position
		FROM ordered o
		WHERE c.id = o.id
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("renumber categories: %w", err)
	}

	return nil
}

// Delete removes a category by ID
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	result, err := db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// getExistingCategoryID queries for an existing category by name
func (r *PostgresCategoryRepository) getExistingCategoryID(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id
		FROM %s
		WHERE name = $1
	`, r.tables.Categories)

	db := GetExecutor(ctx, r.pool)
	var id string
	if err := db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return "", fmt.Errorf("get existing category ID: %w", err)
	}

	return id, nil
}
