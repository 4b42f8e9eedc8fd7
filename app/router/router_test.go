package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/minimart/storefront/internal/logging"
	"github.com/minimart/storefront/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type fakeProducts struct {
	products []models.Product
	panics   bool
}

func (f *fakeProducts) GetFilteredProducts(_ context.Context, filters models.ProductFilters) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if filters.Featured != nil && p.IsFeatured != *filters.Featured {
			continue
		}
		if filters.CategoryID != nil && p.CategoryID != *filters.CategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) GetAllProducts(_ context.Context) ([]models.Product, error) {
	if f.panics {
		panic("products table vanished")
	}
	return f.products, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id uint) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (f *fakeProducts) CreateProduct(_ context.Context, p *models.Product) error {
	p.ID = uint(len(f.products) + 1)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProducts) ReplaceProduct(ctx context.Context, id uint, in models.Product) (*models.Product, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeProducts) DeleteProduct(_ context.Context, id uint) error {
	return models.ErrProductNotFound
}

type fakeCategories struct{}

func (fakeCategories) GetAllCategories(_ context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "Fruits"}}, nil
}

func (fakeCategories) GetByID(_ context.Context, id uint) (*models.Category, error) {
	if id == 1 {
		return &models.Category{ID: 1, Name: "Fruits"}, nil
	}
	return nil, models.ErrCategoryNotFound
}

// fakeCart records the arguments of the last call.
type fakeCart struct {
	op        string
	sessionID string
	id        int
	quantity  int
}

func (f *fakeCart) Get(_ context.Context, sessionID string) ([]models.CartItem, error) {
	f.op, f.sessionID = "get", sessionID
	return nil, nil
}

func (f *fakeCart) Add(_ context.Context, sessionID string, productID, quantity int) ([]models.CartItem, error) {
	f.op, f.sessionID, f.id, f.quantity = "add", sessionID, productID, quantity
	return nil, nil
}

func (f *fakeCart) Update(_ context.Context, sessionID string, itemID, quantity int) ([]models.CartItem, error) {
	f.op, f.sessionID, f.id, f.quantity = "update", sessionID, itemID, quantity
	return nil, nil
}

func (f *fakeCart) Remove(_ context.Context, sessionID string, itemID int) error {
	f.op, f.sessionID, f.id = "remove", sessionID, itemID
	return nil
}

func (f *fakeCart) Clear(_ context.Context, sessionID string) error {
	f.op, f.sessionID = "clear", sessionID
	return nil
}

func newTestRouter(cart *fakeCart, ping func(context.Context) error) http.Handler {
	return New(Deps{
		Products: &fakeProducts{products: []models.Product{
			{ID: 1, Name: "Apple", Price: decimal.RequireFromString("1.99"), CategoryID: 1, Category: models.Category{ID: 1, Name: "Fruits"}, IsFeatured: true},
			{ID: 2, Name: "Carrot", Price: decimal.RequireFromString("0.79"), CategoryID: 2, Category: models.Category{ID: 2, Name: "Vegetables"}},
		}},
		Categories:     fakeCategories{},
		Cart:           cart,
		Ping:           ping,
		AllowedOrigins: []string{"*"},
		RateWindow:     time.Minute,
	})
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestCatalogRoutes(t *testing.T) {
	h := newTestRouter(&fakeCart{}, nil)

	testCases := []struct {
		name               string
		target             string
		expectedStatusCode int
		expectedNames      []string
	}{
		{name: "All products", target: "/products", expectedStatusCode: http.StatusOK, expectedNames: []string{"Apple", "Carrot"}},
		{name: "Filtered by query", target: "/products?categoryId=2", expectedStatusCode: http.StatusOK, expectedNames: []string{"Carrot"}},
		{name: "Featured", target: "/products/featured", expectedStatusCode: http.StatusOK, expectedNames: []string{"Apple"}},
		{name: "By category", target: "/products/category/1", expectedStatusCode: http.StatusOK, expectedNames: []string{"Apple"}},
		{name: "Unknown category is empty", target: "/products/category/9", expectedStatusCode: http.StatusOK, expectedNames: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(h, "GET", tc.target, "")
			require.Equal(t, tc.expectedStatusCode, rec.Code)

			var resp []map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			names := []string{}
			for _, p := range resp {
				names = append(names, p["name"].(string))
				assert.Contains(t, p, "category", "catalog reads embed the category")
			}
			assert.Equal(t, tc.expectedNames, names)
		})
	}
}

func TestProductByIDRoutes(t *testing.T) {
	h := newTestRouter(&fakeCart{}, nil)

	rec := do(h, "GET", "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var product map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
	assert.Equal(t, "Fruits", product["category"].(map[string]any)["name"])

	rec = do(h, "GET", "/legacy/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	product = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
	assert.NotContains(t, product, "category", "legacy reads are raw rows")

	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/products/99", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/products/abc", "").Code)
}

func TestLegacyWriteRoutes(t *testing.T) {
	h := newTestRouter(&fakeCart{}, nil)

	rec := do(h, "POST", "/products", `{"name":"Kiwi","price":0.5,"stockQuantity":3,"categoryId":1}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/products/3", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, do(h, "PUT", "/products/1", `{"name":"Apple","price":2}`).Code)
	assert.Equal(t, http.StatusNotFound, do(h, "DELETE", "/products/7", "").Code)
	assert.Equal(t, http.StatusOK, do(h, "GET", "/legacy/products", "").Code)
}

func TestCategoryRoutes(t *testing.T) {
	h := newTestRouter(&fakeCart{}, nil)

	assert.Equal(t, http.StatusOK, do(h, "GET", "/categories", "").Code)
	assert.Equal(t, http.StatusOK, do(h, "GET", "/categories/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, "GET", "/categories/2", "").Code)
}

func TestCartRoutes(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		target             string
		body               string
		expectedOp         string
		expectedID         int
		expectedQuantity   int
		expectedStatusCode int
	}{
		{name: "Get", method: "GET", target: "/cart/s-1", expectedOp: "get", expectedStatusCode: http.StatusOK},
		{name: "Add", method: "POST", target: "/cart/s-1/add", body: `{"productId":4,"quantity":2}`, expectedOp: "add", expectedID: 4, expectedQuantity: 2, expectedStatusCode: http.StatusOK},
		{name: "Update", method: "PUT", target: "/cart/s-1/update/7", body: `{"quantity":5}`, expectedOp: "update", expectedID: 7, expectedQuantity: 5, expectedStatusCode: http.StatusOK},
		{name: "Remove", method: "DELETE", target: "/cart/s-1/remove/7", expectedOp: "remove", expectedID: 7, expectedStatusCode: http.StatusOK},
		{name: "Clear", method: "DELETE", target: "/cart/s-1/clear", expectedOp: "clear", expectedStatusCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cart := &fakeCart{}
			rec := do(newTestRouter(cart, nil), tc.method, tc.target, tc.body)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.expectedOp, cart.op)
			assert.Equal(t, "s-1", cart.sessionID)
			assert.Equal(t, tc.expectedID, cart.id)
			assert.Equal(t, tc.expectedQuantity, cart.quantity)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := do(newTestRouter(&fakeCart{}, nil), "GET", "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		rec := do(newTestRouter(&fakeCart{}, func(context.Context) error { return nil }), "GET", "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("Unhealthy", func(t *testing.T) {
		rec := do(newTestRouter(&fakeCart{}, func(context.Context) error { return errors.New("connection refused") }), "GET", "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"unhealthy"}`, rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(&fakeCart{}, nil)
	do(h, "GET", "/categories", "")

	rec := do(h, "GET", "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_http_requests_total")
}

func TestResponsesCarryRequestID(t *testing.T) {
	rec := do(newTestRouter(&fakeCart{}, nil), "GET", "/categories", "")

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/cart/s-1/add", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	newTestRouter(&fakeCart{}, nil).ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicIsLoggedAsServerError(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.Config{}) })

	h := New(Deps{
		Products:   &fakeProducts{panics: true},
		Categories: fakeCategories{},
		Cart:       &fakeCart{},
		RateWindow: time.Minute,
	})

	rec := do(h, "GET", "/legacy/products", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var requestLine map[string]any
	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for scanner.Scan() {
		var entry map[string]any
		if json.Unmarshal(scanner.Bytes(), &entry) == nil && entry["message"] == "request" {
			requestLine = entry
		}
	}
	require.NotNil(t, requestLine, "the panicked request is still logged")
	assert.EqualValues(t, http.StatusInternalServerError, requestLine["status"])
	assert.Equal(t, "/legacy/products", requestLine["path"])
}
