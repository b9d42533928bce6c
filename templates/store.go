// Package templates loads the per-category attribute templates that drive
// attribute ordering in the editor.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
)

// Source is the upstream that serves category templates and defaults.
type Source interface {
	FetchCategoryTemplates(ctx context.Context, categoryID int64) ([]document.TemplateRow, error)
	FetchCategoryDefaults(ctx context.Context, categoryID int64) (document.CategoryDefaults, error)
}

// Store fetches templates through an optional cache.
// Template data is advisory: failures degrade to empty results and are only logged.
type Store struct {
	src   Source
	cache Cache
	ttl   time.Duration
	log   *logger.Logger
}

type Option func(*Store)

// WithCache puts cache in front of the source, keeping entries for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Store) {
		s.cache = cache
		s.ttl = ttl
	}
}

func NewStore(src Source, log *logger.Logger, opts ...Option) *Store {
	s := &Store{src: src, log: log.With("service", "TemplateStore")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load returns the template index of a category. Sections without rows map
// to empty templates. Fetch failures yield an empty index.
func (s *Store) Load(ctx context.Context, categoryID int64) document.TemplateIndex {
	key := fmt.Sprintf("catalog:templates:%d", categoryID)

	var rows []document.TemplateRow
	if s.cached(ctx, key, &rows) {
		return document.BuildIndex(rows)
	}

	rows, err := s.src.FetchCategoryTemplates(ctx, categoryID)
	if err != nil {
		s.log.Warn("template fetch failed, using empty templates", "category_id", categoryID, "error", err)
		return document.EmptyIndex()
	}
	s.store(ctx, key, rows)
	return document.BuildIndex(rows)
}

// LoadDefaults returns the default fields of a category, or nil when they
// cannot be fetched.
func (s *Store) LoadDefaults(ctx context.Context, categoryID int64) document.CategoryDefaults {
	key := fmt.Sprintf("catalog:defaults:%d", categoryID)

	var defaults document.CategoryDefaults
	if s.cached(ctx, key, &defaults) {
		return defaults
	}

	defaults, err := s.src.FetchCategoryDefaults(ctx, categoryID)
	if err != nil {
		s.log.Warn("category defaults fetch failed", "category_id", categoryID, "error", err)
		return nil
	}
	s.store(ctx, key, defaults)
	return defaults
}

func (s *Store) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) store(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return
	}
	s.cache.Set(ctx, key, raw, s.ttl)
}
