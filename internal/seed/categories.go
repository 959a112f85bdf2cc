// Package seed loads the default category set shipped with a fresh install.
package seed

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"promptbox/internal/domain/models"
	"promptbox/internal/domain/repositories"
)

//go:embed defaults.yaml
var defaultsFile embed.FS

type defaultsDoc struct {
	Categories []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
		Icon  string `yaml:"icon"`
	} `yaml:"categories"`
}

// DefaultCategories returns the built-in category set in seed order.
func DefaultCategories() ([]models.Category, error) {
	data, err := defaultsFile.ReadFile("defaults.yaml")
	if err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}

	var doc defaultsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}

	categories := make([]models.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		color := c.Color
		categories = append(categories, models.Category{
			Name:  c.Name,
			Color: &color,
			Icon:  models.NormalizeIcon(c.Icon),
		})
	}
	return categories, nil
}

// EnsureDefaultCategories seeds the default categories when the collection
// is empty. An already-populated collection is left untouched.
func EnsureDefaultCategories(ctx context.Context, repo repositories.CategoryRepository, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	defaults, err := DefaultCategories()
	if err != nil {
		return err
	}

	for i := range defaults {
		if err := repo.Create(ctx, &defaults[i]); err != nil {
			return fmt.Errorf("seed category %q: %w", defaults[i].Name, err)
		}
	}

	logger.Info("default categories seeded", "count", len(defaults))
	return nil
}
