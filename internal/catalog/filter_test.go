package catalog

import (
	"testing"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func priced(id, category, priceStr string) domain.Product {
	return domain.Product{ID: id, Category: category, Price: price(priceStr)}
}

func TestApply_CategoryAllPassesThrough(t *testing.T) {
	products := []domain.Product{
		priced("a", "pots", "10"),
		priced("b", "plates", "30"),
		priced("c", "pots", "20"),
	}

	for _, category := range []string{"", CategoryAll} {
		out := Apply(products, FilterState{Category: category})
		require.Len(t, out, 3)
		assert.Equal(t, "a", out[0].ID)
		assert.Equal(t, "b", out[1].ID)
		assert.Equal(t, "c", out[2].ID)
	}
}

func TestApply_CategoryExactMatch(t *testing.T) {
	products := []domain.Product{
		priced("a", "pots", "10"),
		priced("b", "plates", "30"),
		priced("c", "pots", "20"),
	}

	out := Apply(products, FilterState{Category: "pots"})
	require.Len(t, out, 2)
	for _, p := range out {
		assert.Equal(t, "pots", p.Category)
	}
}

func TestApply_PriceRangeInclusive(t *testing.T) {
	products := []domain.Product{
		priced("a", "", "10"),
		priced("b", "", "20"),
		priced("c", "", "30"),
	}

	out := Apply(products, FilterState{MinPrice: price("10"), MaxPrice: price("20")})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestApply_UnpricedNeverMatchesRange(t *testing.T) {
	products := []domain.Product{
		{ID: "a"}, // price failed to parse upstream
		priced("b", "", "15"),
	}

	out := Apply(products, FilterState{MinPrice: price("0"), MaxPrice: price("100")})
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)

	// With no bounds set the unpriced product still lists.
	out = Apply(products, FilterState{})
	assert.Len(t, out, 2)
}

func TestApply_SortPriceLow(t *testing.T) {
	products := []domain.Product{
		priced("a", "", "10"),
		priced("b", "", "30"),
		priced("c", "", "20"),
	}

	out := Apply(products, FilterState{Sort: SortPriceLow})
	require.Len(t, out, 3)
	assert.Equal(t, []string{"a", "c", "b"}, ids(out))
}

func TestApply_SortPriceHigh(t *testing.T) {
	products := []domain.Product{
		priced("a", "", "10"),
		priced("b", "", "30"),
		priced("c", "", "20"),
	}

	out := Apply(products, FilterState{Sort: SortPriceHigh})
	assert.Equal(t, []string{"b", "c", "a"}, ids(out))
}

func TestApply_SortIsStable(t *testing.T) {
	products := []domain.Product{
		priced("a", "", "10"),
		priced("b", "", "10"),
		priced("c", "", "5"),
		priced("d", "", "10"),
	}

	out := Apply(products, FilterState{Sort: SortPriceLow})
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(out))
}

func TestApply_UnpricedSinksInBothDirections(t *testing.T) {
	products := []domain.Product{
		{ID: "x"},
		priced("a", "", "10"),
		priced("b", "", "30"),
	}

	out := Apply(products, FilterState{Sort: SortPriceLow})
	assert.Equal(t, []string{"a", "b", "x"}, ids(out))

	out = Apply(products, FilterState{Sort: SortPriceHigh})
	assert.Equal(t, []string{"b", "a", "x"}, ids(out))
}

func TestApply_SortRating(t *testing.T) {
	r1, r2 := 3.5, 4.8
	products := []domain.Product{
		{ID: "a", Rating: &r1},
		{ID: "b"},
		{ID: "c", Rating: &r2},
	}

	out := Apply(products, FilterState{Sort: SortRating})
	assert.Equal(t, []string{"c", "a", "b"}, ids(out))
}

func TestApply_PromoPriceDrivesFilterAndSort(t *testing.T) {
	discounted := priced("a", "", "50")
	discounted.PromoPrice = price("15")
	products := []domain.Product{
		discounted,
		priced("b", "", "20"),
	}

	out := Apply(products, FilterState{MaxPrice: price("18")})
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)

	out = Apply(products, FilterState{Sort: SortPriceLow})
	assert.Equal(t, []string{"a", "b"}, ids(out))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := []domain.Product{
		priced("a", "", "30"),
		priced("b", "", "10"),
	}

	_ = Apply(products, FilterState{Sort: SortPriceLow})
	assert.Equal(t, []string{"a", "b"}, ids(products))
}

func TestApply_Deterministic(t *testing.T) {
	products := []domain.Product{
		priced("a", "pots", "30"),
		priced("b", "plates", "10"),
		priced("c", "pots", "20"),
	}
	state := FilterState{Category: "pots", Sort: SortPriceLow}

	first := Apply(products, state)
	second := Apply(products, state)
	assert.Equal(t, ids(first), ids(second))
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}
