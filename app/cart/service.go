package cart

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/minimart/storefront/internal/metrics"
	"github.com/minimart/storefront/models"
)

const maxSessionIDLength = 100

// Validation failures. Their messages are returned to clients verbatim.
var (
	ErrSessionRequired  = errors.New("session ID is required")
	ErrSessionTooLong   = errors.New("session ID must be at most 100 characters")
	ErrInvalidProductID = errors.New("product ID must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidItemID    = errors.New("item ID must be greater than zero")
	ErrQuantityTooLarge = errors.New("quantity is too large")
)

// IsValidationError reports whether err is a client input error.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrSessionRequired,
		ErrSessionTooLong,
		ErrInvalidProductID,
		ErrInvalidQuantity,
		ErrInvalidItemID,
		ErrQuantityTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Store is the cart persistence used by Service.
type Store interface {
	GetBySession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	FindByProduct(ctx context.Context, sessionID string, productID uint) (*models.CartItem, error)
	GetItem(ctx context.Context, sessionID string, itemID uint) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	SetQuantity(ctx context.Context, item *models.CartItem, quantity int) error
	DeleteItem(ctx context.Context, item *models.CartItem) error
	ClearSession(ctx context.Context, sessionID string) error
}

// ProductFinder resolves products referenced by cart additions.
type ProductFinder interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

// Service reads and mutates the cart of a caller-supplied session id. The id
// is not authenticated; a session can only reach its own rows.
//
// Every operation validates in the same order: session id, then numeric
// arguments, then existence, then the mutation. The first failure wins.
type Service struct {
	store    Store
	products ProductFinder
}

func NewService(store Store, products ProductFinder) *Service {
	return &Service{store: store, products: products}
}

// Get returns the items of the session. An unknown session has an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if err := ValidateSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.GetBySession(ctx, sessionID)
}

// Add puts quantity units of productID into the cart. Adding a product that
// is already in the cart increases its quantity.
func (s *Service) Add(ctx context.Context, sessionID string, productID, quantity int) ([]models.CartItem, error) {
	if err := ValidateSession(sessionID); err != nil {
		return nil, err
	}
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.products.GetByID(ctx, uint(productID)); err != nil {
		return nil, err
	}

	item, err := s.store.FindByProduct(ctx, sessionID, uint(productID))
	switch {
	case errors.Is(err, models.ErrCartItemNotFound):
		err = s.store.CreateItem(ctx, &models.CartItem{
			SessionID: sessionID,
			ProductID: uint(productID),
			Quantity:  quantity,
		})
	case err == nil:
		if quantity > math.MaxInt-item.Quantity {
			return nil, ErrQuantityTooLarge
		}
		err = s.store.SetQuantity(ctx, item, item.Quantity+quantity)
	}
	if err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	return s.store.GetBySession(ctx, sessionID)
}

// Update overwrites the quantity of item itemID. A quantity of zero or less
// removes the item.
func (s *Service) Update(ctx context.Context, sessionID string, itemID, quantity int) ([]models.CartItem, error) {
	if err := ValidateSession(sessionID); err != nil {
		return nil, err
	}
	if itemID <= 0 {
		return nil, ErrInvalidItemID
	}

	item, err := s.store.GetItem(ctx, sessionID, uint(itemID))
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		err = s.store.DeleteItem(ctx, item)
	} else {
		err = s.store.SetQuantity(ctx, item, quantity)
	}
	if err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("update").Inc()
	return s.store.GetBySession(ctx, sessionID)
}

// Remove deletes item itemID from the cart.
func (s *Service) Remove(ctx context.Context, sessionID string, itemID int) error {
	if err := ValidateSession(sessionID); err != nil {
		return err
	}
	if itemID <= 0 {
		return ErrInvalidItemID
	}

	item, err := s.store.GetItem(ctx, sessionID, uint(itemID))
	if err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, item); err != nil {
		return err
	}

	metrics.CartMutations.WithLabelValues("remove").Inc()
	return nil
}

// Clear empties the cart. Clearing an empty cart succeeds.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := ValidateSession(sessionID); err != nil {
		return err
	}
	if err := s.store.ClearSession(ctx, sessionID); err != nil {
		return err
	}

	metrics.CartMutations.WithLabelValues("clear").Inc()
	return nil
}

// ValidateSession checks a session id without touching the store.
func ValidateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	if utf8.RuneCountInString(sessionID) > maxSessionIDLength {
		return ErrSessionTooLong
	}
	return nil
}
