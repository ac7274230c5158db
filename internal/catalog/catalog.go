// Package catalog implements the in-memory product browsing rules: search,
// category and price filtering, and the storefront sort orders. It operates
// on plain product values so both the API layer and the client cache can
// reuse the same filtering behavior.
package catalog

import (
	"time"

	"github.com/barbarashop/storefront-backend/pkg/money"
)

// Product is the catalog view of a listing.
type Product struct {
	ID          int64
	Name        string
	Description string
	CategoryID  string
	PriceCents  money.Cents
	ImageURL    string
	InStock     bool
	Rating      float64
	ReviewCount int
	Features    []string
	CreatedAt   time.Time
}

// Category is a browsable catalog section.
type Category struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
}
