package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryBySlug returns a category, or (nil, nil) when the slug is unknown.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	err := s.pool.QueryRow(ctx,
		"SELECT id, slug, name FROM categories WHERE slug = $1", slug,
	).Scan(&c.ID, &c.Slug, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("category by slug: %w", err)
	}
	return &c, nil
}

// UpsertCategory inserts a category or returns the existing row for the slug.
func (s *Store) UpsertCategory(ctx context.Context, slug, name string) (*Category, error) {
	c := Category{ID: uuid.New(), Slug: slug, Name: name}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (id, slug, name) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = categories.name
		RETURNING id, slug, name`,
		c.ID, slug, name,
	).Scan(&c.ID, &c.Slug, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("upsert category: %w", err)
	}
	return &c, nil
}
