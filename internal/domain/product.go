package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only projection of backend catalog data. The client
// never mutates products, only displays them and references them by ID.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PromoPrice  *decimal.Decimal `json:"promo_price,omitempty"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	ShopID      string           `json:"shop_id"`
	Images      []string         `json:"images"`
	Tags        []string         `json:"tags"`
	Rating      *float64         `json:"rating,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// EffectivePrice is the price a buyer actually pays: the promotional
// price when one is set and lower than the list price. Returns nil when
// the product carries no usable price at all.
func (p Product) EffectivePrice() *decimal.Decimal {
	if p.Price == nil {
		return p.PromoPrice
	}
	if p.PromoPrice != nil && p.PromoPrice.LessThan(*p.Price) {
		return p.PromoPrice
	}
	return p.Price
}

type Shop struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	LogoURL     string    `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderItem struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
