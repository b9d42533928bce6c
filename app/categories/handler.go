package categories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mytheresa/catalog-editor/app/web"
	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
	"github.com/mytheresa/catalog-editor/models"
)

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	GetTemplates(ctx context.Context, categoryID int64, offset, limit int) ([]models.CategoryTemplate, int64, error)
	GetDefaults(ctx context.Context, categoryID int64) ([]models.CategoryTemplate, error)
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *logger.Logger
}

func NewCategoryHandler(r CategoryProvider, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo: r,
		log:  log.With("handler", "CategoryHandler"),
	}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}/templates", h.HandleTemplates)
		r.Get("/{id}/defaults", h.HandleDefaults)
	})
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		h.log.Error("list categories failed", "error", err)
		web.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Code: c.Code,
			Name: c.Name,
		}
	}

	web.JSON(w, http.StatusOK, response)
}

type templateInput struct {
	Section   string `json:"section"`
	FieldName string `json:"field_name"`
	SortOrder int    `json:"sort_order"`
	IsDefault bool   `json:"is_default"`
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Code      string          `json:"code"`
		Name      string          `json:"name"`
		Templates []templateInput `json:"templates"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Code == "" || input.Name == "" {
		web.Error(w, http.StatusBadRequest, "Missing code or name")
		return
	}

	category := &models.Category{
		Code: input.Code,
		Name: input.Name,
	}
	for _, t := range input.Templates {
		section, ok := document.ParseSection(t.Section)
		if !ok {
			web.Error(w, http.StatusBadRequest, "Unknown section "+t.Section)
			return
		}
		name := strings.TrimSpace(t.FieldName)
		if name == "" {
			web.Error(w, http.StatusBadRequest, "Missing template field name")
			return
		}
		category.Templates = append(category.Templates, models.CategoryTemplate{
			Section:   string(section),
			FieldName: name,
			SortOrder: t.SortOrder,
			IsDefault: t.IsDefault,
		})
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		h.log.Error("create category failed", "code", input.Code, "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.log.Info("category created", "code", category.Code, "templates", len(category.Templates))
	web.JSON(w, http.StatusCreated, map[string]string{
		"message": "Category created successfully",
	})
}

// HandleTemplates serves one page of a category's templates.
func (h *CategoryHandler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}
	offset, limit := web.Pagination(r)

	rows, total, err := h.repo.GetTemplates(r.Context(), id, offset, limit)
	if err != nil {
		h.writeError(w, "list templates failed", id, err)
		return
	}

	page := document.TemplatePage{
		Total:     int(total),
		Templates: make([]document.TemplateRow, len(rows)),
	}
	for i, t := range rows {
		page.Templates[i] = document.TemplateRow{
			Section:   document.Section(t.Section),
			FieldName: t.FieldName,
			SortOrder: t.SortOrder,
		}
	}
	web.JSON(w, http.StatusOK, page)
}

// HandleDefaults serves the default fields grouped by section. Every section
// is present, empty when the category has no defaults for it.
func (h *CategoryHandler) HandleDefaults(w http.ResponseWriter, r *http.Request) {
	id, ok := categoryID(w, r)
	if !ok {
		return
	}

	rows, err := h.repo.GetDefaults(r.Context(), id)
	if err != nil {
		h.writeError(w, "list defaults failed", id, err)
		return
	}

	defaults := make(document.CategoryDefaults, len(document.Sections))
	for _, s := range document.Sections {
		defaults[s] = []document.TemplateEntry{}
	}
	for _, t := range rows {
		s := document.Section(t.Section)
		if !s.Valid() {
			continue
		}
		defaults[s] = append(defaults[s], document.TemplateEntry{FieldName: t.FieldName, SortOrder: t.SortOrder})
	}
	web.JSON(w, http.StatusOK, defaults)
}

func (h *CategoryHandler) writeError(w http.ResponseWriter, msg string, id int64, err error) {
	if errors.Is(err, models.ErrCategoryNotFound) {
		web.Error(w, http.StatusNotFound, "Category not found")
		return
	}
	h.log.Error(msg, "category_id", id, "error", err)
	web.Error(w, http.StatusInternalServerError, err.Error())
}

func categoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := web.PathID(chi.URLParam(r, "id"))
	if !ok {
		web.Error(w, http.StatusBadRequest, "Invalid category id")
	}
	return id, ok
}
