package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/barbarashop/storefront-backend/internal/catalog"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
)

// ListProductsParams mirrors the browse query surface. Zero values mean the
// filter is unset.
type ListProductsParams struct {
	Search        string
	Category      string
	PriceMinCents *money.Cents
	PriceMaxCents *money.Cents
	InStock       *bool
	SortBy        string
	SortOrder     string
	Page          int
	PerPage       int
}

func (p ListProductsParams) query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.PriceMinCents != nil {
		q.Set("price_min", money.Format(*p.PriceMinCents))
	}
	if p.PriceMaxCents != nil {
		q.Set("price_max", money.Format(*p.PriceMaxCents))
	}
	if p.InStock != nil {
		q.Set("in_stock", strconv.FormatBool(*p.InStock))
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sort_order", p.SortOrder)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return q
}

// ProductDraft carries the admin-editable fields for create and update
// calls. Price travels as a dollar string, matching the API contract.
type ProductDraft struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       string   `json:"price,omitempty"`
	Image       string   `json:"image,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"review_count,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// ListProducts fetches one page of listings, normalized into catalog values.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) ([]catalog.Product, pagination.Meta, error) {
	var result struct {
		Products []wireProduct   `json:"products"`
		Meta     pagination.Meta `json:"meta"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", params.query(), nil, &result); err != nil {
		return nil, pagination.Meta{}, err
	}

	products := make([]catalog.Product, 0, len(result.Products))
	for _, wire := range result.Products {
		products = append(products, wire.toCatalogProduct())
	}
	return products, result.Meta, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int64) (*catalog.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodGet, productPath(productID), nil, nil, &wire); err != nil {
		return nil, err
	}
	product := wire.toCatalogProduct()
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (*catalog.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodPost, "/api/v1/products", nil, draft, &wire); err != nil {
		return nil, err
	}
	product := wire.toCatalogProduct()
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID int64, draft ProductDraft) (*catalog.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodPut, productPath(productID), nil, draft, &wire); err != nil {
		return nil, err
	}
	product := wire.toCatalogProduct()
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	return c.do(ctx, http.MethodDelete, productPath(productID), nil, nil, nil)
}

func productPath(productID int64) string {
	return fmt.Sprintf("/api/v1/products/%d", productID)
}
