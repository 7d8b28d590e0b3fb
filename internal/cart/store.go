package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// IdleOwnerTTL is how long an untouched cart stays resident before
	// eviction. The repository snapshot survives, so the next access
	// rehydrates.
	IdleOwnerTTL = 30 * time.Minute

	// CleanupInterval is how often the background eviction runs.
	CleanupInterval = 5 * time.Minute
)

// Store is the single source of truth for active carts, keyed by owner.
// All mutation funnels through here behind one mutex, preserving the
// single-writer invariant. Snapshots are written through the repository
// after every mutation; a failed write leaves the in-memory state
// authoritative for the session. A background loop evicts carts whose
// owner has gone idle so the resident set stays bounded.
type Store struct {
	mu       sync.RWMutex
	carts    map[string]*domain.Cart
	hydrated map[string]bool
	lastSeen map[string]time.Time
	repo     Repository
	log      *zap.Logger

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewStore(repo Repository, log *zap.Logger) *Store {
	s := &Store{
		carts:       make(map[string]*domain.Cart),
		hydrated:    make(map[string]bool),
		lastSeen:    make(map[string]time.Time),
		repo:        repo,
		log:         log,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Close stops the background eviction and waits for it to finish.
func (s *Store) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictIdle(time.Now())
		case <-s.stopCleanup:
			return
		}
	}
}

// evictIdle drops resident carts not touched within IdleOwnerTTL.
func (s *Store) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for ownerID, seen := range s.lastSeen {
		if now.Sub(seen) > IdleOwnerTTL {
			delete(s.carts, ownerID)
			delete(s.hydrated, ownerID)
			delete(s.lastSeen, ownerID)
		}
	}
}

// GetCart returns a copy of the owner's current cart.
func (s *Store) GetCart(ctx context.Context, ownerID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cartLocked(ctx, ownerID).Clone()
}

// AddItem puts qty units of a product (optionally a specific variant)
// into the cart. If a line for (ProductID, VariantID) already exists its
// quantity is incremented and then clamped to available stock; otherwise
// a new line is appended with a freshly captured price snapshot.
func (s *Store) AddItem(ctx context.Context, ownerID string, product domain.Product, variantID string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, ErrInvalidQuantity
	}
	if product.Stock <= 0 || qty > product.Stock {
		return domain.Cart{}, ErrInsufficientStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(ctx, ownerID)
	now := time.Now()

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID && c.Items[i].VariantID == variantID {
			c.Items[i].Quantity = clamp(c.Items[i].Quantity+qty, 1, product.Stock)
			c.Items[i].Stock = product.Stock
			c.Items[i].UpdatedAt = now
			c.UpdatedAt = now
			s.persistLocked(ctx, c)
			return c.Clone(), nil
		}
	}

	c.Items = append(c.Items, domain.CartItem{
		ID:        uuid.NewString(),
		ProductID: product.ID,
		VariantID: variantID,
		Quantity:  qty,
		UnitPrice: snapshotPrice(product),
		Stock:     product.Stock,
		Name:      product.Name,
		ImageURL:  firstImage(product),
		AddedAt:   now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
	s.persistLocked(ctx, c)
	return c.Clone(), nil
}

// UpdateQuantity sets a line's quantity, clamped to [1, stock recorded
// on the line]. A quantity of zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, ownerID, itemID string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, ownerID, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(ctx, ownerID)
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = clamp(qty, 1, c.Items[i].Stock)
			c.Items[i].UpdatedAt = time.Now()
			c.UpdatedAt = c.Items[i].UpdatedAt
			s.persistLocked(ctx, c)
			return c.Clone(), nil
		}
	}

	return domain.Cart{}, ErrItemNotFound
}

func (s *Store) RemoveItem(ctx context.Context, ownerID, itemID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(ctx, ownerID)
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			s.persistLocked(ctx, c)
			return c.Clone(), nil
		}
	}

	return domain.Cart{}, ErrItemNotFound
}

// RemoveItems drops the named lines in one pass; unknown IDs are
// ignored. Lines not listed stay in the cart, which is what checkout
// relies on when an item was added while an order was in flight.
func (s *Store) RemoveItems(ctx context.Context, ownerID string, itemIDs []string) domain.Cart {
	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(ctx, ownerID)
	kept := c.Items[:0]
	for _, item := range c.Items {
		if !drop[item.ID] {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.UpdatedAt = time.Now()
	s.persistLocked(ctx, c)
	return c.Clone()
}

// Clear empties the owner's cart, deletes its snapshot and releases the
// resident entry. An empty cart and an absent one are indistinguishable
// to callers.
func (s *Store) Clear(ctx context.Context, ownerID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(ctx, ownerID)
	out := c.Clone()
	out.Items = nil
	out.UpdatedAt = time.Now()

	if s.repo != nil {
		if err := s.repo.Delete(ctx, ownerID); err != nil && !errors.Is(err, ErrCartNotFound) {
			s.log.Warn("cart snapshot delete failed", zap.String("owner_id", ownerID), zap.Error(err))
		}
	}
	delete(s.carts, ownerID)
	delete(s.hydrated, ownerID)
	delete(s.lastSeen, ownerID)
	return out
}

// cartLocked returns the live cart for ownerID, hydrating it from the
// repository on first access. An unreadable snapshot falls back to an
// empty cart; the session continues without history.
func (s *Store) cartLocked(ctx context.Context, ownerID string) *domain.Cart {
	s.lastSeen[ownerID] = time.Now()
	if c, ok := s.carts[ownerID]; ok {
		return c
	}

	c := &domain.Cart{OwnerID: ownerID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if s.repo != nil && !s.hydrated[ownerID] {
		loaded, err := s.repo.Load(ctx, ownerID)
		switch {
		case err == nil:
			*c = loaded
		case errors.Is(err, ErrCartNotFound):
			// first visit, nothing to restore
		default:
			s.log.Warn("cart snapshot load failed, starting empty",
				zap.String("owner_id", ownerID), zap.Error(err))
		}
	}
	s.hydrated[ownerID] = true
	s.carts[ownerID] = c
	return c
}

func (s *Store) persistLocked(ctx context.Context, c *domain.Cart) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, c.Clone()); err != nil {
		s.log.Warn("cart snapshot save failed, state is in-memory only",
			zap.String("owner_id", c.OwnerID), zap.Error(err))
	}
}

func snapshotPrice(p domain.Product) decimal.Decimal {
	if price := p.EffectivePrice(); price != nil {
		return *price
	}
	return decimal.Zero
}

func firstImage(p domain.Product) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
