package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Festongithub/onesoko-storefront/internal/cart"
	"github.com/Festongithub/onesoko-storefront/internal/catalog"
	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ProductGetter fetches one product fresh from the backend, used for the
// stock check before a line enters the cart.
type ProductGetter interface {
	Get(ctx context.Context, id string) (domain.Product, error)
}

// OrderSubmitter turns a cart into a backend order.
type OrderSubmitter interface {
	Submit(ctx context.Context, cart domain.Cart) (domain.Order, error)
}

type CartHandler struct {
	store    *cart.Store
	products ProductGetter
	orders   OrderSubmitter
	catalog  *catalog.Service
}

func NewCartHandler(store *cart.Store, products ProductGetter, orders OrderSubmitter, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{store: store, products: products, orders: orders, catalog: catalogService}
}

type cartView struct {
	domain.Cart
	TotalItems int             `json:"total_items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

func viewOf(c domain.Cart) cartView {
	return cartView{Cart: c, TotalItems: c.TotalItems(), Subtotal: c.Subtotal()}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(h.store.GetCart(r.Context(), ownerID)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// Fresh fetch: the stock bound must come from the backend, not from
	// whatever the cached listing last saw.
	product, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	updated, err := h.store.AddItem(r.Context(), ownerID, product, req.VariantID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, viewOf(updated))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	itemID := chi.URLParam(r, "item_id")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := h.store.UpdateQuantity(r.Context(), ownerID, itemID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, viewOf(updated))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	updated, err := h.store.RemoveItem(r.Context(), ownerID, chi.URLParam(r, "item_id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, viewOf(updated))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(h.store.Clear(r.Context(), ownerID)))
}

// Checkout submits the current cart as an order and clears it on
// success. Failures leave the cart untouched for another attempt.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ownerID := ownerFromContext(r.Context())
	if ownerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing session identity")
		return
	}

	current := h.store.GetCart(r.Context(), ownerID)
	if len(current.Items) == 0 {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	}

	order, err := h.orders.Submit(r.Context(), current)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Only the snapshotted lines were ordered. Anything added while the
	// submit was in flight stays in the cart.
	submitted := make([]string, 0, len(current.Items))
	for _, item := range current.Items {
		submitted = append(submitted, item.ID)
	}
	h.store.RemoveItems(r.Context(), ownerID, submitted)
	if h.catalog != nil {
		h.catalog.Invalidate(r.Context())
	}

	respondJSON(w, http.StatusCreated, order)
}
