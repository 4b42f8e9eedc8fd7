package cart

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/minimart/storefront/app/api"
	"github.com/minimart/storefront/app/dto"
	"github.com/minimart/storefront/models"
)

// CartService is the cart surface used by CartHandler.
type CartService interface {
	Get(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Add(ctx context.Context, sessionID string, productID, quantity int) ([]models.CartItem, error)
	Update(ctx context.Context, sessionID string, itemID, quantity int) ([]models.CartItem, error)
	Remove(ctx context.Context, sessionID string, itemID int) error
	Clear(ctx context.Context, sessionID string) error
}

type AddItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Get(r.Context(), r.PathValue("sessionId"))
	h.respondCart(w, r, items, err)
}

func (h *CartHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if err := ValidateSession(sessionID); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input AddItemRequest
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.Add(r.Context(), sessionID, input.ProductID, input.Quantity)
	h.respondCart(w, r, items, err)
}

func (h *CartHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	if err := ValidateSession(sessionID); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var input UpdateItemRequest
	if err := api.DecodeJSON(w, r, &input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.Update(r.Context(), sessionID, itemID(r), input.Quantity)
	h.respondCart(w, r, items, err)
}

func (h *CartHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Remove(r.Context(), r.PathValue("sessionId"), itemID(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.OKResponse(w, map[string]string{"message": "Item removed from cart"})
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context(), r.PathValue("sessionId")); err != nil {
		h.respondError(w, r, err)
		return
	}
	api.OKResponse(w, map[string]string{"message": "Cart cleared"})
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, items []models.CartItem, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.OKResponse(w, dto.FromCartItems(items))
}

func (h *CartHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsValidationError(err):
		api.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrProductNotFound), errors.Is(err, models.ErrCartItemNotFound):
		api.NotFoundResponse(w)
	default:
		api.ProblemResponse(w, r, err)
	}
}

// itemID parses the {itemId} path value. Anything that is not a positive
// integer becomes 0, which the service rejects after the session check.
func itemID(r *http.Request) int {
	id, err := strconv.Atoi(r.PathValue("itemId"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}
