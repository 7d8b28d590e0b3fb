package catalog

import (
	"sort"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// SortKey selects the ordering of a filtered product listing.
type SortKey string

const (
	SortRelevance SortKey = "relevance" // insertion order, untouched
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// CategoryAll is the sentinel that turns the category filter off.
const CategoryAll = "All"

// FilterState is the ephemeral set of user-selected criteria for a
// product listing. It is never persisted; derived listings are
// recomputed from it on every change.
type FilterState struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     SortKey
	ViewMode string // "grid" or "list"; presentation only
}

// Apply derives the displayed listing from a fetched product collection.
// It is a pure transform: same inputs always yield the same ordered
// output, and the input slice is never modified.
func Apply(products []domain.Product, state FilterState) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(p, state.Category) {
			continue
		}
		if !matchesPrice(p, state.MinPrice, state.MaxPrice) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, state.Sort)
	return out
}

func matchesCategory(p domain.Product, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return p.Category == category
}

// matchesPrice is an inclusive range test. A product whose price could
// not be parsed matches only when no bound is set at all.
func matchesPrice(p domain.Product, min, max *decimal.Decimal) bool {
	if min == nil && max == nil {
		return true
	}

	price := p.EffectivePrice()
	if price == nil {
		return false
	}
	if min != nil && price.LessThan(*min) {
		return false
	}
	if max != nil && price.GreaterThan(*max) {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return comparePrice(products[i], products[j]) < 0
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			pa, pb := products[i].EffectivePrice(), products[j].EffectivePrice()
			if pa == nil {
				return false // unpriced products sink in both directions
			}
			if pb == nil {
				return true
			}
			return pa.GreaterThan(*pb)
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return ratingOf(products[i]) > ratingOf(products[j])
		})
	default:
		// relevance: keep insertion order
	}
}

// comparePrice orders by effective price; products without a price sort
// after all priced products in either direction.
func comparePrice(a, b domain.Product) int {
	pa, pb := a.EffectivePrice(), b.EffectivePrice()
	switch {
	case pa == nil && pb == nil:
		return 0
	case pa == nil:
		return 1
	case pb == nil:
		return -1
	default:
		return pa.Cmp(*pb)
	}
}

func ratingOf(p domain.Product) float64 {
	if p.Rating == nil {
		return -1
	}
	return *p.Rating
}
