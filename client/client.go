// Package client calls the storefront HTTP API.
//
// Cart calls take the caller's Session explicitly; the client keeps no
// session state of its own.
//
//	s, _ := client.LoadOrCreateSession(path)
//	c := client.New("http://localhost:8080")
//	items, err := c.AddToCart(ctx, s, 1, 2)
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/minimart/storefront/app/dto"
)

const defaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProductQuery filters Products. Nil fields are not sent.
type ProductQuery struct {
	CategoryID *uint
	Featured   *bool
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.CategoryID != nil {
		v.Set("categoryId", strconv.FormatUint(uint64(*q.CategoryID), 10))
	}
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) Categories(ctx context.Context) ([]dto.Category, error) {
	var out []dto.Category
	return out, c.do(ctx, http.MethodGet, "/categories", nil, &out)
}

func (c *Client) Category(ctx context.Context, id uint) (*dto.Category, error) {
	var out dto.Category
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]dto.Product, error) {
	var out []dto.Product
	return out, c.do(ctx, http.MethodGet, "/products"+q.encode(), nil, &out)
}

func (c *Client) Product(ctx context.Context, id uint) (*dto.Product, error) {
	var out dto.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]dto.Product, error) {
	var out []dto.Product
	return out, c.do(ctx, http.MethodGet, "/products/featured", nil, &out)
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID uint) ([]dto.Product, error) {
	var out []dto.Product
	return out, c.do(ctx, http.MethodGet, fmt.Sprintf("/products/category/%d", categoryID), nil, &out)
}

func (c *Client) Cart(ctx context.Context, s Session) ([]dto.CartItem, error) {
	var out []dto.CartItem
	return out, c.do(ctx, http.MethodGet, cartPath(s, ""), nil, &out)
}

// AddToCart adds quantity of the product, merging into an existing line.
func (c *Client) AddToCart(ctx context.Context, s Session, productID, quantity int) ([]dto.CartItem, error) {
	body := map[string]int{"productId": productID, "quantity": quantity}
	var out []dto.CartItem
	return out, c.do(ctx, http.MethodPost, cartPath(s, "/add"), body, &out)
}

// UpdateCartItem sets the quantity of a line. A quantity of zero or less
// removes it.
func (c *Client) UpdateCartItem(ctx context.Context, s Session, itemID, quantity int) ([]dto.CartItem, error) {
	body := map[string]int{"quantity": quantity}
	var out []dto.CartItem
	return out, c.do(ctx, http.MethodPut, cartPath(s, fmt.Sprintf("/update/%d", itemID)), body, &out)
}

func (c *Client) RemoveFromCart(ctx context.Context, s Session, itemID int) error {
	return c.do(ctx, http.MethodDelete, cartPath(s, fmt.Sprintf("/remove/%d", itemID)), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context, s Session) error {
	return c.do(ctx, http.MethodDelete, cartPath(s, "/clear"), nil, nil)
}

func cartPath(s Session, suffix string) string {
	return "/cart/" + url.PathEscape(s.ID) + suffix
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError reads either an {"error": ...} body or a problem document.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
		Title string `json:"title"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(b, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Title
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
