package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []Product {
	return []Product{
		{ID: 1, Name: "Wireless Headphones Pro", Description: "Noise cancelling over-ear", CategoryID: "electronics", PriceCents: 29999, Rating: 4.8},
		{ID: 2, Name: "Smart Watch", Description: "Fitness tracking companion", CategoryID: "electronics", PriceCents: 19999, Rating: 4.5},
		{ID: 3, Name: "Ceramic Mug", Description: "Hand glazed stoneware", CategoryID: "home", PriceCents: 2499, Rating: 4.2},
		{ID: 4, Name: "Linen Throw Pillow", Description: "Soft woven cover", CategoryID: "home", PriceCents: 3999, Rating: 4.0},
		{ID: 5, Name: "Studio Monitor Pro", Description: "Reference quality sound", CategoryID: "electronics", PriceCents: 54999, Rating: 4.9},
		{ID: 6, Name: "Leather Wallet", Description: "Full grain leather", CategoryID: "accessories", PriceCents: 7999, Rating: 4.3},
		{ID: 7, Name: "Canvas Tote", Description: "Everyday carry bag", CategoryID: "accessories", PriceCents: 4999, Rating: 3.9},
		{ID: 8, Name: "Mechanical Keyboard", Description: "Professional typing feel", CategoryID: "electronics", PriceCents: 12999, Rating: 4.6},
		{ID: 9, Name: "Desk Lamp", Description: "Adjustable warm light", CategoryID: "home", PriceCents: 8999, Rating: 4.1},
		{ID: 10, Name: "Camera Drone Pro", Description: "4K aerial video", CategoryID: "electronics", PriceCents: 89999, Rating: 4.7},
		{ID: 11, Name: "Wool Scarf", Description: "Winter knit", CategoryID: "accessories", PriceCents: 5999, Rating: 4.4},
		{ID: 12, Name: "Espresso Machine", Description: "Barista grade pressure", CategoryID: "home", PriceCents: 64999, Rating: 4.8},
	}
}

func ids(products []Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortName, key)

	key, err = ParseSortKey("price-high")
	require.NoError(t, err)
	assert.Equal(t, SortPriceHigh, key)

	_, err = ParseSortKey("alphabetical")
	assert.Error(t, err)
}

func TestParsePriceRange(t *testing.T) {
	t.Parallel()

	r, err := ParsePriceRange("all")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParsePriceRange("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = ParsePriceRange("50-100")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.Contains(5000))
	assert.True(t, r.Contains(10000))
	assert.False(t, r.Contains(4999))
	assert.False(t, r.Contains(10001))

	r, err = ParsePriceRange("500")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.True(t, r.Contains(50000))
	assert.True(t, r.Contains(9999999))
	assert.False(t, r.Contains(49999))

	_, err = ParsePriceRange("cheap")
	assert.Error(t, err)
}

func TestApplyZeroQueryMatchesAllSortedByName(t *testing.T) {
	t.Parallel()

	result := Apply(fixtureProducts(), Query{})
	require.Len(t, result, 12)
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].Name, result[i].Name)
	}
}

func TestApplySearchMatchesNameOrDescription(t *testing.T) {
	t.Parallel()

	// "pro" hits names (Headphones Pro, Monitor Pro, Drone Pro) and
	// descriptions (Professional typing feel)
	result := Apply(fixtureProducts(), Query{Search: "PRO"})
	assert.ElementsMatch(t, []int64{1, 5, 8, 10}, ids(result))

	result = Apply(fixtureProducts(), Query{Search: "barista"})
	assert.Equal(t, []int64{12}, ids(result))

	result = Apply(fixtureProducts(), Query{Search: "no such thing"})
	assert.Empty(t, result)
}

func TestApplyFiltersAreConjunctive(t *testing.T) {
	t.Parallel()

	open, err := ParsePriceRange("500")
	require.NoError(t, err)

	result := Apply(fixtureProducts(), Query{
		Search:     "pro",
		CategoryID: "electronics",
		PriceRange: open,
		Sort:       SortPriceHigh,
	})
	assert.Equal(t, []int64{10, 5}, ids(result))
}

func TestApplyCategoryFilter(t *testing.T) {
	t.Parallel()

	result := Apply(fixtureProducts(), Query{CategoryID: "home", Sort: SortPriceLow})
	assert.Equal(t, []int64{3, 4, 9, 12}, ids(result))
}

func TestApplySortOrders(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()

	result := Apply(products, Query{Sort: SortPriceLow})
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].PriceCents, result[i].PriceCents)
	}

	result = Apply(products, Query{Sort: SortPriceHigh})
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].PriceCents, result[i].PriceCents)
	}

	result = Apply(products, Query{Sort: SortRating})
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Rating, result[i].Rating)
	}

	result = Apply(products, Query{Sort: SortNewest})
	assert.Equal(t, []int64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, ids(result))
}

func TestApplyStableOnTies(t *testing.T) {
	t.Parallel()

	products := []Product{
		{ID: 1, Name: "A", PriceCents: 1000, Rating: 4.0},
		{ID: 2, Name: "B", PriceCents: 1000, Rating: 4.0},
		{ID: 3, Name: "C", PriceCents: 1000, Rating: 4.0},
	}

	result := Apply(products, Query{Sort: SortPriceLow})
	assert.Equal(t, []int64{1, 2, 3}, ids(result))

	// reapplying the same query keeps the order
	again := Apply(result, Query{Sort: SortPriceLow})
	assert.Equal(t, ids(result), ids(again))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := fixtureProducts()
	firstID := products[0].ID
	_ = Apply(products, Query{Sort: SortPriceHigh})
	assert.Equal(t, firstID, products[0].ID)
}

func TestApplyNameSortIgnoresCase(t *testing.T) {
	t.Parallel()

	products := []Product{
		{ID: 1, Name: "apple stand"},
		{ID: 2, Name: "Banana Hook"},
		{ID: 3, Name: "avocado Keeper"},
	}

	result := Apply(products, Query{Sort: SortName})
	assert.Equal(t, []int64{1, 3, 2}, ids(result))
}
