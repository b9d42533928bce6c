package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/catalog-editor/app/web"
	"github.com/mytheresa/catalog-editor/document"
	"github.com/mytheresa/catalog-editor/logger"
	"github.com/mytheresa/catalog-editor/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Product is the catalog listing entry. Price is the lowest active variant
// price, or null when no variant is priced.
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	SKU      string    `json:"sku"`
	Price    *float64  `json:"price"`
	Category *Category `json:"category"`
	Variants int       `json:"variants"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, id int64, patch models.ProductPatch) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  *logger.Logger
}

func NewCatalogHandler(r ProductProvider, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log.With("handler", "CatalogHandler"),
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/catalog", h.HandleGet)
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGetProduct)
		r.Patch("/{id}", h.HandleUpdate)
	})
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	offset, limit := web.Pagination(r)

	// Parse filters
	categoryCode := r.URL.Query().Get("category")

	var priceFilter *float64
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			priceFilter = &val
		}
	}

	filters := models.ProductFilters{
		CategoryCode:  categoryCode,
		PriceLessThan: priceFilter,
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.log.Error("list products failed", "error", err)
		web.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			ID:       p.ID,
			Title:    p.Title,
			SKU:      p.SKU,
			Price:    lowestPrice(p.Variants),
			Variants: len(p.Variants),
		}
		if p.Category != nil {
			products[i].Category = &Category{
				Code: p.Category.Code,
				Name: p.Category.Name,
			}
		}
	}

	web.JSON(w, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "get product failed", id, err)
		return
	}
	web.JSON(w, http.StatusOK, toDocument(product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req document.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	p, err := productFromRequest(&req)
	if err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Title == "" {
		web.Error(w, http.StatusBadRequest, "Missing title")
		return
	}

	created, err := h.repo.Create(r.Context(), p)
	if err != nil {
		h.log.Error("create product failed", "error", err)
		web.Error(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.log.Info("product created", "product_id", created.ID, "variants", len(created.Variants))
	web.JSON(w, http.StatusCreated, toDocument(created))
}

func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req document.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	patch, err := patchFromRequest(&req)
	if err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.repo.Update(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, "update product failed", id, err)
		return
	}
	h.log.Info("product updated", "product_id", id, "columns", len(patch.Columns), "variants", len(patch.Variants))
	web.JSON(w, http.StatusOK, toDocument(updated))
}

func (h *CatalogHandler) writeError(w http.ResponseWriter, msg string, id int64, err error) {
	if errors.Is(err, models.ErrProductNotFound) {
		web.Error(w, http.StatusNotFound, "Product not found")
		return
	}
	h.log.Error(msg, "product_id", id, "error", err)
	web.Error(w, http.StatusInternalServerError, err.Error())
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := web.PathID(chi.URLParam(r, "id"))
	if !ok {
		web.Error(w, http.StatusBadRequest, "Invalid product id")
	}
	return id, ok
}

func lowestPrice(variants []models.Variant) *float64 {
	var lowest *decimal.Decimal
	for _, v := range variants {
		if !v.IsActive || !v.Price.Valid {
			continue
		}
		if lowest == nil || v.Price.Decimal.LessThan(*lowest) {
			p := v.Price.Decimal
			lowest = &p
		}
	}
	if lowest == nil {
		return nil
	}
	f := lowest.InexactFloat64()
	return &f
}
