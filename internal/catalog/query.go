package catalog

import (
	"sort"
	"strings"

	"github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names one of the storefront sort orders.
type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw sort value to a SortKey. Empty input falls back to
// the default name sort.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(strings.TrimSpace(raw)) {
	case "":
		return SortName, nil
	case SortName:
		return SortName, nil
	case SortPriceLow:
		return SortPriceLow, nil
	case SortPriceHigh:
		return SortPriceHigh, nil
	case SortRating:
		return SortRating, nil
	case SortNewest:
		return SortNewest, nil
	default:
		return "", errors.New(errors.CodeValidation, "unknown sort key").
			WithDetails(map[string]any{"sort": raw})
	}
}

// PriceRange bounds a price filter in cents. Both bounds are inclusive; a
// nil Max means the range is open-ended.
type PriceRange struct {
	MinCents money.Cents
	MaxCents *money.Cents
}

// Contains reports whether the price falls inside the range.
func (r PriceRange) Contains(price money.Cents) bool {
	if price < r.MinCents {
		return false
	}
	if r.MaxCents != nil && price > *r.MaxCents {
		return false
	}
	return true
}

var priceBuckets = map[string]PriceRange{
	"0-50":    {MinCents: 0, MaxCents: centsPtr(5000)},
	"50-100":  {MinCents: 5000, MaxCents: centsPtr(10000)},
	"100-200": {MinCents: 10000, MaxCents: centsPtr(20000)},
	"200-500": {MinCents: 20000, MaxCents: centsPtr(50000)},
	"500":     {MinCents: 50000},
}

func centsPtr(v money.Cents) *money.Cents {
	return &v
}

// ParsePriceRange maps a bucket label ("0-50", "500", "all") to a price
// range. "all" and the empty string mean no filter and return nil.
func ParsePriceRange(raw string) (*PriceRange, error) {
	label := strings.TrimSpace(raw)
	if label == "" || label == "all" {
		return nil, nil
	}
	bucket, ok := priceBuckets[label]
	if !ok {
		return nil, errors.New(errors.CodeValidation, "unknown price range").
			WithDetails(map[string]any{"price_range": raw})
	}
	return &bucket, nil
}

// Query captures one catalog browse: optional search text, category, price
// bucket, and sort order. The zero value matches everything sorted by name.
type Query struct {
	Search     string
	CategoryID string
	PriceRange *PriceRange
	Sort       SortKey
}

// Apply filters and sorts the products per the query, returning a new slice.
// Filters are conjunctive. Sorting is stable so equal elements keep their
// input order and reapplying a query is idempotent.
func Apply(products []Product, q Query) []Product {
	result := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range products {
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.PriceRange != nil && !q.PriceRange.Contains(p.PriceCents) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, q.Sort)
	return result
}

func matchesSearch(p Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowered) ||
		strings.Contains(strings.ToLower(p.Description), lowered)
}

func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	default:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
