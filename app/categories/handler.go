package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/minimart/storefront/app/api"
	"github.com/minimart/storefront/app/dto"
	"github.com/minimart/storefront/models"
)

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}

	api.OKResponse(w, dto.FromCategories(categories))
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(r, "id")
	if !ok {
		api.NotFoundResponse(w)
		return
	}

	category, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, models.ErrCategoryNotFound) {
		api.NotFoundResponse(w)
		return
	}
	if err != nil {
		api.ProblemResponse(w, r, err)
		return
	}

	api.OKResponse(w, dto.FromCategory(*category))
}
