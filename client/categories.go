package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/barbarashop/storefront-backend/internal/catalog"
)

// CategoryDraft carries the admin-editable category fields. The slug is only
// honored on create; the API treats it as immutable afterwards.
type CategoryDraft struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (c *Client) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var wires []wireCategory
	if err := c.do(ctx, http.MethodGet, "/api/v1/categories", nil, nil, &wires); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(wires))
	for _, wire := range wires {
		categories = append(categories, wire.toCatalogCategory())
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, categoryID string) (*catalog.Category, error) {
	var wire wireCategory
	if err := c.do(ctx, http.MethodGet, categoryPath(categoryID), nil, nil, &wire); err != nil {
		return nil, err
	}
	category := wire.toCatalogCategory()
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, draft CategoryDraft) (*catalog.Category, error) {
	var wire wireCategory
	if err := c.do(ctx, http.MethodPost, "/api/v1/categories", nil, draft, &wire); err != nil {
		return nil, err
	}
	category := wire.toCatalogCategory()
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID string, draft CategoryDraft) (*catalog.Category, error) {
	draft.ID = ""
	var wire wireCategory
	if err := c.do(ctx, http.MethodPut, categoryPath(categoryID), nil, draft, &wire); err != nil {
		return nil, err
	}
	category := wire.toCatalogCategory()
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.do(ctx, http.MethodDelete, categoryPath(categoryID), nil, nil, nil)
}

func categoryPath(categoryID string) string {
	return "/api/v1/categories/" + url.PathEscape(categoryID)
}
