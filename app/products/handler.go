// Package products serves the legacy single-table product endpoints. They
// read and write product rows as stored, with no category embedding.
package products

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/minimart/storefront/app/api"
	"github.com/minimart/storefront/models"
	"github.com/shopspring/decimal"
)

type ProductStore interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	ReplaceProduct(ctx context.Context, id uint, in models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

type ProductInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   *string         `json:"description" validate:"omitempty,max=500"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	ImageURL      *string         `json:"imageUrl" validate:"omitempty,max=500"`
	IsFeatured    bool            `json:"isFeatured"`
	CategoryID    uint            `json:"categoryId"`
}

func (in ProductInput) product() models.Product {
	return models.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price.Round(2),
		StockQuantity: in.StockQuantity,
		ImageURL:      in.ImageURL,
		IsFeatured:    in.IsFeatured,
		CategoryID:    in.CategoryID,
	}
}

type ProductHandler struct {
	repo ProductStore
}

func NewProductHandler(r ProductStore) *ProductHandler {
	return &ProductHandler{repo: r}
}

func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	api.OKResponse(w, products)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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
	api.OKResponse(w, product)
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}
	if input.CategoryID == 0 {
		api.ErrorResponse(w, http.StatusBadRequest, "categoryId is required")
		return
	}

	product := input.product()
	err := h.repo.CreateProduct(r.Context(), &product)
	if errors.Is(err, models.ErrCategoryNotFound) {
		api.ErrorResponse(w, http.StatusBadRequest, "Category not found")
		return
	}
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}

	api.CreatedResponse(w, fmt.Sprintf("/products/%d", product.ID), product)
}

// HandleReplace overwrites name, description, price and stock quantity.
func (h *ProductHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.NotFoundResponse(w)
		return
	}
	input, ok := decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.repo.ReplaceProduct(r.Context(), id, input.product())
	if errors.Is(err, models.ErrProductNotFound) {
		api.NotFoundResponse(w)
		return
	}
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}
	api.OKResponse(w, product)
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.NotFoundResponse(w)
		return
	}

	err := h.repo.DeleteProduct(r.Context(), id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.NotFoundResponse(w)
		return
	}
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}
	api.NoContentResponse(w)
}

func decodeInput(w http.ResponseWriter, r *http.Request) (ProductInput, bool) {
	var input ProductInput
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return input, false
	}
	if input.Price.IsNegative() {
		api.ErrorResponse(w, http.StatusBadRequest, "price must be at least 0")
		return input, false
	}
	return input, true
}
