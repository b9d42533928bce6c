// Package client talks to the catalog API on behalf of the editor. It
// implements editor.Catalog and templates.Source.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
)

// ErrNotFound matches a StatusError carrying 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog api %s %s: http %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

type Client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("missing catalog API base URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		log:  log.With("client", "CatalogClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// FetchCategoryTemplates walks every page of a category's template listing
// and returns the rows in fetch order.
func (c *Client) FetchCategoryTemplates(ctx context.Context, categoryID int64) ([]document.TemplateRow, error) {
	var rows []document.TemplateRow
	offset := 0
	for {
		q := url.Values{}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(c.cfg.PageSize))
		path := fmt.Sprintf("/categories/%d/templates?%s", categoryID, q.Encode())

		page, err := doJSON[document.TemplatePage](c, ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page.Templates...)
		offset += len(page.Templates)
		if len(page.Templates) == 0 || offset >= page.Total {
			break
		}
	}
	c.log.Debug("templates fetched", "category_id", categoryID, "rows", len(rows))
	return rows, nil
}

func (c *Client) FetchCategoryDefaults(ctx context.Context, categoryID int64) (document.CategoryDefaults, error) {
	out, err := doJSON[document.CategoryDefaults](c, ctx, http.MethodGet, fmt.Sprintf("/categories/%d/defaults", categoryID), nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (c *Client) FetchProduct(ctx context.Context, id int64) (*document.ProductDocument, error) {
	return doJSON[document.ProductDocument](c, ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
}

// SaveProduct creates the product when id is nil and patches it otherwise.
func (c *Client) SaveProduct(ctx context.Context, id *int64, doc document.SaveDocument) (*document.ProductDocument, error) {
	if id == nil {
		return doJSON[document.ProductDocument](c, ctx, http.MethodPost, "/products", doc)
	}
	return doJSON[document.ProductDocument](c, ctx, http.MethodPatch, fmt.Sprintf("/products/%d", *id), doc)
}

// -------------------- helpers --------------------

func doJSON[T any](c *Client, ctx context.Context, method, path string, body any) (*T, error) {
	var rd io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
		rd = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, rd)
	if err != nil {
		return nil, err
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("catalog api call failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Warn("catalog api read failed", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("catalog api %s %s read body: %w", method, path, err)
	}
	c.log.Debug("catalog api call", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID, "elapsed", time.Since(start))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("catalog api %s %s decode: %w", method, path, err)
	}
	return &out, nil
}
