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

// PostgresVersionRepository implements the VersionRepository interface.
// The versions table is append-only; this type has no update or delete
// methods on purpose.
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *RepositoryConfig) repositories.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Append inserts the prompt's next version. The number is computed in the
// same statement as the insert; UNIQUE(prompt_id, version_num) makes a lost
// race surface as a conflict rather than a duplicate number.
func (r *PostgresVersionRepository) Append(ctx context.Context, version *models.Version) error {
	if version.ID == "" {
		version.ID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, prompt_id, version_num, content, changelog, created_at)
		SELECT $1, $2, COALESCE(MAX(version_num), 0) + 1, $3, $4, NOW()
		FROM %[1]s
		WHERE prompt_id = $2
		RETURNING version_num, created_at
	`, r.tables.Versions)

	db := GetExecutor(ctx, r.pool)
	err := db.QueryRow(ctx, query,
		version.ID,
		version.PromptID,
		version.Content,
		version.Changelog,
	).Scan(&version.Number, &version.CreatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("prompt %s: %w", version.PromptID, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("version number race for prompt %s", version.PromptID),
				ResourceType: "version",
			}
		}
		return fmt.Errorf("append version: %w", err)
	}

	return nil
}

// ListByPrompt retrieves a prompt's versions ordered by version_num DESC
func (r *PostgresVersionRepository) ListByPrompt(ctx context.Context, promptID string) ([]models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, prompt_id, version_num, content, changelog, created_at
		FROM %s
		WHERE prompt_id = $1
		ORDER BY version_num DESC
	`, r.tables.Versions)

	db := GetExecutor(ctx, r.pool)
	rows, err := db.Query(ctx, query, promptID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		var version models.Version
		err := rows.Scan(
			&version.ID,
			&version.PromptID,
			&version.Number,
			&version.Content,
			&version.Changelog,
			&version.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}

	if versions == nil {
		versions = []models.Version{}
	}

	return versions, nil
}

// GetByID retrieves a version by ID
func (r *PostgresVersionRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	query := fmt.Sprintf(`
		SELECT id, prompt_id, version_num, content, changelog, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Versions)

	db := GetExecutor(ctx, r.pool)
	var version models.Version
	err := db.QueryRow(ctx, query, id).Scan(
		&version.ID,
		&version.PromptID,
		&version.Number,
		&version.Content,
		&version.Changelog,
		&version.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("version %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get version: %w", err)
	}

	return &version, nil
}
