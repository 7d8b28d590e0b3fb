package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
)

// productDTO mirrors the backend wire shape. Prices come back as JSON
// strings and are parsed defensively on the way into the domain model.
type productDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	PromoPrice  string   `json:"promo_price"`
	Quantity    int      `json:"quantity"`
	Category    string   `json:"category"`
	Shop        string   `json:"shop"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags"`
	Rating      *float64 `json:"rating"`
	CreatedAt   string   `json:"created_at"`
}

func (d productDTO) toDomain() domain.Product {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)

	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       domain.ParsePrice(d.Price),
		PromoPrice:  domain.ParsePrice(d.PromoPrice),
		Stock:       d.Quantity,
		Category:    d.Category,
		ShopID:      d.Shop,
		Images:      d.Images,
		Tags:        d.Tags,
		Rating:      d.Rating,
		CreatedAt:   createdAt,
	}
}

type ProductsClient struct{ c *Client }

func NewProductsClient(c *Client) *ProductsClient { return &ProductsClient{c: c} }

// List fetches the full product collection. Filtering and sorting stay
// client-side, on the fetched list.
func (pc *ProductsClient) List(ctx context.Context) ([]domain.Product, error) {
	var dtos []productDTO
	if err := pc.c.getJSON(ctx, "/api/products/", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (pc *ProductsClient) Get(ctx context.Context, id string) (domain.Product, error) {
	var dto productDTO
	if err := pc.c.getJSON(ctx, "/api/products/"+url.PathEscape(id)+"/", nil, &dto); err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return dto.toDomain(), nil
}

func (pc *ProductsClient) Reviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := pc.c.getJSON(ctx, "/api/products/"+url.PathEscape(productID)+"/reviews/", nil, &reviews); err != nil {
		return nil, fmt.Errorf("list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

func (pc *ProductsClient) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := pc.c.getJSON(ctx, "/api/categories/", nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
