package categories

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/barbarashop/storefront-backend/pkg/db"
	"github.com/barbarashop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
)

// slugs route directly in the storefront URL, so keep them strict
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Service exposes category read and admin management operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryID string, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	GetCategory(ctx context.Context, categoryID string) (*CategoryDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
}

// CategoryDTO is the wire representation of a catalog section.
type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// CreateCategoryInput holds the validated payload to create a category.
type CreateCategoryInput struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
}

// UpdateCategoryInput holds optional mutation values. The slug is immutable
// because product rows and storefront URLs reference it.
type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ImageURL    *string
}

type productCounter interface {
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type service struct {
	repo     *Repository
	products productCounter
}

// NewService constructs a category service instance.
func NewService(repo *Repository, products productCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product counter required")
	}
	return &service{repo: repo, products: products}, nil
}

// CreateCategory validates the payload and inserts the category.
func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	slug := strings.TrimSpace(input.ID)
	if !slugRe.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id must be a lowercase slug").
			WithDetails(map[string]any{"id": input.ID})
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	created, err := s.repo.Create(ctx, &models.Category{
		ID:          slug,
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category already exists").
				WithDetails(map[string]any{"id": slug})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return toDTO(created), nil
}

// UpdateCategory applies the provided fields to an existing category.
func (s *service) UpdateCategory(ctx context.Context, categoryID string, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = *input.ImageURL
	}

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}
	return toDTO(updated), nil
}

// DeleteCategory removes an empty category. Categories still referenced by
// products cannot be deleted.
func (s *service) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.loadCategory(ctx, categoryID); err != nil {
		return err
	}

	count, err := s.products.CountByCategory(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products").
			WithDetails(map[string]any{"category": categoryID, "products": count})
	}

	if err := s.repo.Delete(ctx, categoryID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	return nil
}

// GetCategory returns one category by slug.
func (s *service) GetCategory(ctx context.Context, categoryID string) (*CategoryDTO, error) {
	category, err := s.loadCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return toDTO(category), nil
}

// ListCategories returns all categories ordered by name.
func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	dtos := make([]CategoryDTO, len(rows))
	for i := range rows {
		dtos[i] = *toDTO(&rows[i])
	}
	return dtos, nil
}

func (s *service) loadCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return category, nil
}

func toDTO(c *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Image:       c.ImageURL,
	}
}
