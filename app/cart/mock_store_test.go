package cart

import (
	"context"
	"time"

	"github.com/minimart/storefront/models"
	"github.com/shopspring/decimal"
)

// --- Mock Store ---

// MockCartStore keeps cart rows in memory and behaves like CartRepository.
type MockCartStore struct {
	Items    []models.CartItem
	Products map[uint]models.Product
	Err      error

	nextID uint
	calls  []string
}

func newMockCartStore() *MockCartStore {
	fruits := models.Category{ID: 1, Name: "Fruits"}
	return &MockCartStore{
		Products: map[uint]models.Product{
			1: {ID: 1, Name: "Apple", Price: decimal.RequireFromString("1.99"), CategoryID: 1, Category: fruits},
			2: {ID: 2, Name: "Banana", Price: decimal.RequireFromString("0.99"), CategoryID: 1, Category: fruits},
		},
	}
}

func (m *MockCartStore) GetBySession(_ context.Context, sessionID string) ([]models.CartItem, error) {
	m.calls = append(m.calls, "GetBySession")
	if m.Err != nil {
		return nil, m.Err
	}
	items := []models.CartItem{}
	for _, it := range m.Items {
		if it.SessionID == sessionID {
			it.Product = m.Products[it.ProductID]
			items = append(items, it)
		}
	}
	return items, nil
}

func (m *MockCartStore) FindByProduct(_ context.Context, sessionID string, productID uint) (*models.CartItem, error) {
	m.calls = append(m.calls, "FindByProduct")
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Items {
		if m.Items[i].SessionID == sessionID && m.Items[i].ProductID == productID {
			item := m.Items[i]
			return &item, nil
		}
	}
	return nil, models.ErrCartItemNotFound
}

func (m *MockCartStore) GetItem(_ context.Context, sessionID string, itemID uint) (*models.CartItem, error) {
	m.calls = append(m.calls, "GetItem")
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Items {
		if m.Items[i].ID == itemID && m.Items[i].SessionID == sessionID {
			item := m.Items[i]
			return &item, nil
		}
	}
	return nil, models.ErrCartItemNotFound
}

func (m *MockCartStore) CreateItem(_ context.Context, item *models.CartItem) error {
	m.calls = append(m.calls, "CreateItem")
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	m.Items = append(m.Items, *item)
	return nil
}

func (m *MockCartStore) SetQuantity(_ context.Context, item *models.CartItem, quantity int) error {
	m.calls = append(m.calls, "SetQuantity")
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Items {
		if m.Items[i].ID == item.ID {
			m.Items[i].Quantity = quantity
		}
	}
	item.Quantity = quantity
	return nil
}

func (m *MockCartStore) DeleteItem(_ context.Context, item *models.CartItem) error {
	m.calls = append(m.calls, "DeleteItem")
	if m.Err != nil {
		return m.Err
	}
	kept := m.Items[:0]
	for _, it := range m.Items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	m.Items = kept
	return nil
}

func (m *MockCartStore) ClearSession(_ context.Context, sessionID string) error {
	m.calls = append(m.calls, "ClearSession")
	if m.Err != nil {
		return m.Err
	}
	kept := m.Items[:0]
	for _, it := range m.Items {
		if it.SessionID != sessionID {
			kept = append(kept, it)
		}
	}
	m.Items = kept
	return nil
}

// GetByID makes the store double as the ProductFinder.
func (m *MockCartStore) GetByID(_ context.Context, id uint) (*models.Product, error) {
	m.calls = append(m.calls, "GetProduct")
	if p, ok := m.Products[id]; ok {
		return &p, nil
	}
	return nil, models.ErrProductNotFound
}

func (m *MockCartStore) seed(sessionID string, productID uint, quantity int) models.CartItem {
	item := models.CartItem{SessionID: sessionID, ProductID: productID, Quantity: quantity}
	_ = m.CreateItem(context.Background(), &item)
	m.calls = nil
	return item
}
