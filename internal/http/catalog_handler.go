package http

import (
	"context"
	"net/http"

	"github.com/Festongithub/onesoko-storefront/internal/catalog"
	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ProductLister is the catalog read path (cache + backend).
type ProductLister interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

type CategoryLister interface {
	Categories(ctx context.Context) ([]domain.Category, error)
}

type ShopGetter interface {
	Get(ctx context.Context, id string) (domain.Shop, error)
}

type ReviewLister interface {
	Reviews(ctx context.Context, productID string) ([]domain.Review, error)
}

type CatalogHandler struct {
	lister     ProductLister
	products   ProductGetter
	categories CategoryLister
	shops      ShopGetter
	reviews    ReviewLister
}

func NewCatalogHandler(lister ProductLister, products ProductGetter, categories CategoryLister, shops ShopGetter, reviews ReviewLister) *CatalogHandler {
	return &CatalogHandler{lister: lister, products: products, categories: categories, shops: shops, reviews: reviews}
}

type listResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProducts fetches the collection and applies the client-side
// filter/sort pipeline driven by query parameters.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.lister.Products(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	query := r.URL.Query()
	state := catalog.FilterState{
		Category: query.Get("category"),
		MinPrice: domain.ParsePrice(query.Get("min_price")),
		MaxPrice: domain.ParsePrice(query.Get("max_price")),
		Sort:     catalog.SortKey(query.Get("sort")),
		ViewMode: query.Get("view"),
	}

	filtered := catalog.Apply(products, state)
	respondJSON(w, http.StatusOK, listResponse{Products: filtered, Total: len(filtered)})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Categories(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.Reviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *CatalogHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	shop, err := h.shops.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shop)
}
