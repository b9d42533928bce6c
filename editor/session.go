// Package editor holds the working copy of a product being authored, tracks
// it against the last saved snapshot and builds the documents sent on save.
package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mytheresa/catalog-editor/attributes"
	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
)

// Catalog is the product API the session loads from and saves to.
type Catalog interface {
	FetchProduct(ctx context.Context, id int64) (*document.ProductDocument, error)
	SaveProduct(ctx context.Context, id *int64, doc document.SaveDocument) (*document.ProductDocument, error)
}

// TemplateLoader serves category templates; templates.Store implements it.
type TemplateLoader interface {
	Load(ctx context.Context, categoryID int64) document.TemplateIndex
	LoadDefaults(ctx context.Context, categoryID int64) document.CategoryDefaults
}

// Session is the state container of one editing workflow. It owns the
// working copy, the snapshot and the installed template index. All methods
// are safe for concurrent use; network calls run without holding the lock.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	log        *logger.Logger
	catalog    Catalog
	templates  TemplateLoader
	working    *Product
	snapshots  Snapshots
	index      document.TemplateIndex
	defaults   document.CategoryDefaults
	isNew      bool
	generation uint64
}

// NewSession starts a session for a new, empty product.
func NewSession(catalog Catalog, templates TemplateLoader, log *logger.Logger) *Session {
	id := uuid.New()
	return &Session{
		ID:        id,
		log:       log.With("service", "EditorSession", "session", id.String()),
		catalog:   catalog,
		templates: templates,
		working:   &Product{IsActive: true},
		index:     document.EmptyIndex(),
		isNew:     true,
	}
}

// Open loads an existing product, orders its attributes by its category's
// templates and takes the initial snapshot.
func (s *Session) Open(ctx context.Context, productID int64) error {
	doc, err := s.catalog.FetchProduct(ctx, productID)
	if err != nil {
		return err
	}
	p := FromDocument(doc)

	idx := document.EmptyIndex()
	if p.CategoryID != nil {
		idx, _, err = s.fetchTemplates(ctx, *p.CategoryID, false)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.index = idx
	s.defaults = nil
	for i := range p.Variants {
		applyTemplates(&p.Variants[i], idx, nil)
	}
	s.working = p
	s.snapshots.Take(p)
	s.isNew = false
	s.log.Info("product opened", "product_id", productID, "variants", len(p.Variants))
	return nil
}

// SelectCategory switches the working copy to categoryID and installs that
// category's templates and defaults once they arrive. If another category is
// selected before the fetch completes the result is dropped and
// ErrSuperseded is returned.
func (s *Session) SelectCategory(ctx context.Context, categoryID int64) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.working.CategoryID = &categoryID
	s.mu.Unlock()

	idx, defaults, err := s.fetchTemplates(ctx, categoryID, true)
	if err != nil {
		return err
	}
	return s.install(gen, categoryID, idx, defaults)
}

func (s *Session) install(gen uint64, categoryID int64, idx document.TemplateIndex, defaults document.CategoryDefaults) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Info("discarding stale templates", "category_id", categoryID, "generation", gen, "current_generation", s.generation)
		return ErrSuperseded
	}
	s.index = idx
	s.defaults = defaults
	for i := range s.working.Variants {
		applyTemplates(&s.working.Variants[i], idx, defaults)
	}
	s.log.Debug("templates installed", "category_id", categoryID, "variants", len(s.working.Variants))
	return nil
}

// fetchTemplates loads the template index and, when asked, the defaults of a
// category concurrently.
func (s *Session) fetchTemplates(ctx context.Context, categoryID int64, withDefaults bool) (document.TemplateIndex, document.CategoryDefaults, error) {
	var (
		idx      document.TemplateIndex
		defaults document.CategoryDefaults
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx = s.templates.Load(gctx, categoryID)
		return nil
	})
	if withDefaults {
		g.Go(func() error {
			defaults = s.templates.LoadDefaults(gctx, categoryID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	// an abandoned fetch degrades to empty templates; never install that
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return idx, defaults, nil
}

// applyTemplates merges defaults into every section of v, adopts the
// template's sort orders and reconciles the display order.
func applyTemplates(v *Variant, idx document.TemplateIndex, defaults document.CategoryDefaults) {
	for _, sec := range document.Sections {
		tpl := idx.Template(sec)
		entries := v.Section(sec)
		if defaults != nil {
			entries = attributes.MergeDefaults(entries, tpl, defaults[sec])
		}
		entries = attributes.ApplyTemplateOrder(entries, tpl)
		v.SetSection(sec, attributes.Reconcile(entries, sec, tpl))
	}
}

// Working returns a copy of the working copy.
func (s *Session) Working() *Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Snapshot returns the last saved state, or nil for a product never saved.
func (s *Session) Snapshot() *Product {
	return s.snapshots.Get()
}

// Templates returns the installed template index.
func (s *Session) Templates() document.TemplateIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) IsNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isNew
}

// HasUnsavedChanges reports whether the working copy differs from the last
// saved state. It gates the leave-page confirmation.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HasUnsavedChanges(s.working, s.snapshots.Get(), s.isNew)
}

// VariantStatuses classifies every variant of the working copy.
func (s *Session) VariantStatuses() []document.ChangeStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	var originals []Variant
	if snap := s.snapshots.Get(); snap != nil && !s.isNew {
		originals = snap.Variants
	}
	out := make([]document.ChangeStatus, len(s.working.Variants))
	for i := range s.working.Variants {
		v := &s.working.Variants[i]
		out[i] = VariantStatus(v, matchOriginal(v, i, originals))
	}
	return out
}
