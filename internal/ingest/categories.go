package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

// CategoryCache memoizes category slug→id lookups for the duration of a
// run. It is an explicit injected object, not package state, so concurrent
// runs and tests each get their own view. Safe for use from concurrent
// source jobs.
type CategoryCache struct {
	mu    sync.Mutex
	ids   map[string]uuid.UUID
	store Catalog
}

// NewCategoryCache creates an empty cache over the given store.
func NewCategoryCache(store Catalog) *CategoryCache {
	return &CategoryCache{
		ids:   make(map[string]uuid.UUID),
		store: store,
	}
}

// LookupOrCreate resolves a display name to a category id, creating the
// category on first sight.
func (c *CategoryCache) LookupOrCreate(ctx context.Context, name string) (uuid.UUID, error) {
	slug := Slugify(name)
	if slug == "" {
		return uuid.Nil, fmt.Errorf("category name %q produced an empty slug", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[slug]; ok {
		return id, nil
	}

	cat, err := c.store.UpsertCategory(ctx, slug, name)
	if err != nil {
		return uuid.Nil, err
	}
	c.ids[slug] = cat.ID
	return cat.ID, nil
}

// Slugify lowercases a name and joins its alphanumeric runs with hyphens.
func Slugify(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)
	return strings.Join(strings.Fields(cleaned), "-")
}
