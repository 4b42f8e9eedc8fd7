// Package router maps the storefront routes onto their handlers.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minimart/storefront/app/api"
	"github.com/minimart/storefront/app/cart"
	"github.com/minimart/storefront/app/catalog"
	"github.com/minimart/storefront/app/categories"
	"github.com/minimart/storefront/app/products"
	"github.com/minimart/storefront/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// ProductRepository is the product storage used by both the catalog reads
// and the legacy CRUD endpoints.
type ProductRepository interface {
	catalog.ProductProvider
	products.ProductStore
}

type Deps struct {
	Products   ProductRepository
	Categories categories.CategoryProvider
	Cart       cart.CartService

	// Ping reports storage health for GET /health.
	Ping func(ctx context.Context) error

	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration
}

func New(d Deps) http.Handler {
	catalogHandler := catalog.NewCatalogHandler(d.Products)
	categoryHandler := categories.NewCategoryHandler(d.Categories)
	productHandler := products.NewProductHandler(d.Products)
	cartHandler := cart.NewCartHandler(d.Cart)

	r := chi.NewRouter()
	r.Use(api.RequestID)
	r.Use(api.Instrument)
	r.Use(api.Recoverer)
	r.Use(api.CORS(d.AllowedOrigins))

	r.Get("/health", health(d.Ping))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(api.RateLimit(d.RateLimit, d.RateWindow))

		r.Get("/categories", categoryHandler.HandleGetAll)
		r.Get("/categories/{id}", categoryHandler.HandleGet)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.HandleGet)
			r.Get("/featured", catalogHandler.HandleGetFeatured)
			r.Get("/category/{categoryId}", catalogHandler.HandleGetByCategory)
			r.Get("/{id}", catalogHandler.HandleGetProduct)

			r.Post("/", productHandler.HandleCreate)
			r.Put("/{id}", productHandler.HandleReplace)
			r.Delete("/{id}", productHandler.HandleDelete)
		})

		r.Route("/legacy/products", func(r chi.Router) {
			r.Get("/", productHandler.HandleList)
			r.Post("/", productHandler.HandleCreate)
			r.Get("/{id}", productHandler.HandleGet)
			r.Put("/{id}", productHandler.HandleReplace)
			r.Delete("/{id}", productHandler.HandleDelete)
		})

		r.Route("/cart/{sessionId}", func(r chi.Router) {
			r.Get("/", cartHandler.HandleGet)
			r.Post("/add", cartHandler.HandleAdd)
			r.Put("/update/{itemId}", cartHandler.HandleUpdate)
			r.Delete("/remove/{itemId}", cartHandler.HandleRemove)
			r.Delete("/clear", cartHandler.HandleClear)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.NotFoundResponse(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.ErrorResponse(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}

func health(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if ping != nil {
			if err := ping(ctx); err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
				api.StatusResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		api.OKResponse(w, map[string]string{"status": "healthy"})
	}
}
