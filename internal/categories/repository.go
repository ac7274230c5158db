package categories

import (
	"context"

	"github.com/barbarashop/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together category persistence helpers.
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

// Create inserts the category.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Update persists the full category row.
func (r *Repository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes the category row. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID loads one category.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
