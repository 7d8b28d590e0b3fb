package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is an ordered collection of items scoped to one owner (browser
// session or authenticated user). Invariants are session-local only:
// there is no cross-device sync or server reconciliation.
type Cart struct {
	OwnerID   string     `json:"owner_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is one cart line, keyed by (ProductID, VariantID). The unit
// price and display fields are denormalized snapshots captured when the
// line was created.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int             `json:"stock"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TotalItems is the sum of all line quantities.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of quantity times snapshot unit price over all lines.
func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal
}

// Clone returns a deep copy so callers never alias store-owned slices.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
