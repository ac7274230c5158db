package products

import (
	"time"

	"github.com/barbarashop/storefront-backend/internal/catalog"
	"github.com/barbarashop/storefront-backend/pkg/db/models"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
)

// ProductDTO is the wire representation of a listing. Price goes out both as
// decimal dollars and integer cents; in_stock is canonical but the legacy
// inStock spelling is still emitted for older storefront builds.
type ProductDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	PriceCents  int64     `json:"price_cents"`
	Image       string    `json:"image"`
	InStock     bool      `json:"in_stock"`
	InStockOld  bool      `json:"inStock"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Features    []string  `json:"features"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResult bundles one page of listings with pagination metadata.
type ProductListResult struct {
	Products []ProductDTO    `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

// ToProductDTO maps the storage model to the wire shape.
func ToProductDTO(p *models.Product) *ProductDTO {
	features := make([]string, len(p.Features))
	copy(features, p.Features)
	return &ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.CategoryID,
		Price:       money.Format(p.PriceCents),
		PriceCents:  p.PriceCents,
		Image:       p.ImageURL,
		InStock:     p.InStock,
		InStockOld:  p.InStock,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Features:    features,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToCatalogProduct maps the storage model to the view the browse engine
// filters and sorts on.
func ToCatalogProduct(p *models.Product) catalog.Product {
	features := make([]string, len(p.Features))
	copy(features, p.Features)
	return catalog.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		PriceCents:  p.PriceCents,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Features:    features,
		CreatedAt:   p.CreatedAt,
	}
}
