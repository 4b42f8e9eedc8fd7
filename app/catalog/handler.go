package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/minimart/storefront/app/api"
	"github.com/minimart/storefront/app/dto"
	"github.com/minimart/storefront/models"
)

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// HandleGet lists products, optionally filtered by ?categoryId= and ?featured=.
// Unparseable filter values are ignored.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	var filters models.ProductFilters

	if cStr := r.URL.Query().Get("categoryId"); cStr != "" {
		if c, err := strconv.ParseUint(cStr, 10, 32); err == nil {
			id := uint(c)
			filters.CategoryID = &id
		}
	}

	if fStr := r.URL.Query().Get("featured"); fStr != "" {
		if f, err := strconv.ParseBool(fStr); err == nil {
			filters.Featured = &f
		}
	}

	h.list(w, r, filters)
}

func (h *CatalogHandler) HandleGetFeatured(w http.ResponseWriter, r *http.Request) {
	featured := true
	h.list(w, r, models.ProductFilters{Featured: &featured})
}

func (h *CatalogHandler) HandleGetByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := api.PathID(r, "categoryId")
	if !ok {
		api.NotFoundResponse(w)
		return
	}
	h.list(w, r, models.ProductFilters{CategoryID: &categoryID})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.NotFoundResponse(w)
		return
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.NotFoundResponse(w)
		return
	}
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}

	api.OKResponse(w, dto.FromProduct(*product))
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, filters models.ProductFilters) {
	res, err := h.repo.GetFilteredProducts(r.Context(), filters)
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}
	api.OKResponse(w, dto.FromProducts(res))
}
