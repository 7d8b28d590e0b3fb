package cart

import (
	"context"
	"errors"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
)

var (
	ErrCartNotFound      = errors.New("cart not found")
	ErrItemNotFound      = errors.New("item not found in cart")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository persists cart snapshots. The store writes through after
// every mutation and reads once per owner at first access; a failing
// repository degrades the cart to in-memory-only operation.
type Repository interface {
	Load(ctx context.Context, ownerID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}
