package client

import (
	"time"

	"github.com/barbarashop/storefront-backend/internal/catalog"
	"github.com/barbarashop/storefront-backend/pkg/money"
)

// wireProduct mirrors the API product payload. Both stock spellings decode as
// pointers so absence is distinguishable from an explicit false during the
// schema migration window.
type wireProduct struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	PriceCents  int64     `json:"price_cents"`
	Image       string    `json:"image"`
	InStock     *bool     `json:"in_stock"`
	InStockOld  *bool     `json:"inStock"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type wireCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// toCatalogProduct is the single place the stock alias chain is resolved:
// in_stock when present, the deprecated inStock otherwise, true when neither
// arrives. Engines only ever see the canonical shape.
func (p wireProduct) toCatalogProduct() catalog.Product {
	inStock := true
	if p.InStock != nil {
		inStock = *p.InStock
	} else if p.InStockOld != nil {
		inStock = *p.InStockOld
	}

	priceCents := money.Cents(p.PriceCents)
	if priceCents == 0 && p.Price != "" {
		if cents, err := money.FromDollarString(p.Price); err == nil {
			priceCents = cents
		}
	}

	features := p.Features
	if features == nil {
		features = []string{}
	}

	return catalog.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.Category,
		PriceCents:  priceCents,
		ImageURL:    p.Image,
		InStock:     inStock,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Features:    features,
		CreatedAt:   p.CreatedAt,
	}
}

func (c wireCategory) toCatalogCategory() catalog.Category {
	return catalog.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.Image,
	}
}
