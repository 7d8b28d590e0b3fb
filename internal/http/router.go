package http

import (
	"net/http"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/monitor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the full HTTP surface: catalog reads, cart mutations,
// checkout, health and the debug metrics snapshot.
func NewRouter(cartHandler *CartHandler, catalogHandler *CatalogHandler, mon *monitor.Monitor, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)
	r.Use(MonitorMiddleware(mon))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/debug/metrics", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, mon.Snapshot())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/products/{id}/reviews", catalogHandler.ListReviews)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/shops/{id}", catalogHandler.GetShop)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Post("/checkout", cartHandler.Checkout)
	})

	return r
}
