package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/barbarashop/storefront-backend/pkg/db/models"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Search        string       `json:"search,omitempty"`
	CategoryID    string       `json:"category,omitempty"`
	PriceMinCents *money.Cents `json:"price_min_cents,omitempty"`
	PriceMaxCents *money.Cents `json:"price_max_cents,omitempty"`
	InStock       *bool        `json:"in_stock,omitempty"`
}

// ListInput captures the inputs needed to paginate/filter/sort products.
type ListInput struct {
	Filters    ListFilters
	SortBy     string
	SortOrder  string
	Pagination pagination.Params
}

var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price_cents",
	"rating":     "rating",
	"created_at": "created_at",
	"id":         "id",
}

// OrderClause maps the requested sort to a SQL ORDER BY expression,
// defaulting to name ascending. The id tiebreaker keeps pages stable.
func (in ListInput) OrderClause() (string, error) {
	column := "name"
	if in.SortBy != "" {
		mapped, ok := sortColumns[strings.ToLower(in.SortBy)]
		if !ok {
			return "", fmt.Errorf("unsupported sort_by %q", in.SortBy)
		}
		column = mapped
	}

	direction := "ASC"
	switch strings.ToLower(in.SortOrder) {
	case "", "asc":
	case "desc":
		direction = "DESC"
	default:
		return "", fmt.Errorf("unsupported sort_order %q", in.SortOrder)
	}

	return fmt.Sprintf("%s %s, id ASC", column, direction), nil
}

// Repository wires together product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update persists the full product row.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product row. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of products matching the filters plus the total
// count across all pages.
func (r *Repository) List(ctx context.Context, in ListInput) ([]models.Product, int64, error) {
	order, err := in.OrderClause()
	if err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	query = applyFilters(query, in.Filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := pagination.Normalize(in.Pagination)
	var rows []models.Product
	if err := query.
		Order(order).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByCategory reports how many products reference the category.
func (r *Repository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error
	return total, err
}

func applyFilters(query *gorm.DB, filters ListFilters) *gorm.DB {
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.PriceMinCents != nil {
		query = query.Where("price_cents >= ?", *filters.PriceMinCents)
	}
	if filters.PriceMaxCents != nil {
		query = query.Where("price_cents <= ?", *filters.PriceMaxCents)
	}
	if filters.InStock != nil {
		query = query.Where("in_stock = ?", *filters.InStock)
	}
	return query
}
