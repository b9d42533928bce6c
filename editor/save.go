package editor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/mytheresa/catalog-editor/document"
)

// Validate lists the problems that must be fixed before p can be saved.
func Validate(p *Product) error {
	var problems []string
	if strings.TrimSpace(p.Title) == "" {
		problems = append(problems, "title is required")
	}
	if p.CategoryID == nil {
		problems = append(problems, "category is required")
	}
	for i := range p.Variants {
		if p.Variants[i].ColorID == nil {
			problems = append(problems, fmt.Sprintf("variant %d: color is required", i+1))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Payload builds the document the next Save would send.
func (s *Session) Payload() document.SaveDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildSavePayload(s.working, s.snapshots.Get(), s.isNew)
}

// Save validates the working copy, sends it and, on success, replaces both
// the snapshot and the working copy with the server's response. On failure
// neither is touched; timeouts wrap ErrSaveTimeout.
func (s *Session) Save(ctx context.Context) (*Product, error) {
	s.mu.Lock()
	if err := Validate(s.working); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	payload := BuildSavePayload(s.working, s.snapshots.Get(), s.isNew)
	id := cloneID(s.working.ID)
	if s.isNew {
		id = nil
	}
	s.mu.Unlock()

	s.log.Info("saving product", "product_id", id, "fields", len(payload.Fields), "variants", len(payload.Variants))
	doc, err := s.catalog.SaveProduct(ctx, id, payload)
	if err != nil {
		if isTimeout(err) {
			s.log.Warn("product save timed out", "product_id", id, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrSaveTimeout, err)
		}
		s.log.Error("product save failed", "product_id", id, "error", err)
		return nil, fmt.Errorf("save product: %w", err)
	}

	saved := FromDocument(doc)
	if saved == nil {
		return nil, fmt.Errorf("save product: %w", ErrNoProduct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range saved.Variants {
		applyTemplates(&saved.Variants[i], s.index, nil)
	}
	s.snapshots.Take(saved)
	s.working = saved.Clone()
	s.isNew = false
	s.log.Info("product saved", "product_id", doc.ID)
	return s.working.Clone(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
