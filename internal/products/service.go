package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/barbarashop/storefront-backend/pkg/db"
	"github.com/barbarashop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
)

// Service exposes catalog product read and admin management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID int64) error
	GetProduct(ctx context.Context, productID int64) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListInput) (*ProductListResult, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	CategoryID  string
	PriceCents  money.Cents
	ImageURL    string
	InStock     bool
	Rating      float64
	ReviewCount int
	Features    []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	CategoryID  *string
	PriceCents  *money.Cents
	ImageURL    *string
	InStock     *bool
	Rating      *float64
	ReviewCount *int
	Features    *[]string
}

type categoryReader interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
}

// service implements the product service.
type service struct {
	repo       *Repository
	categories categoryReader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, categories categoryReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo, categories: categories}, nil
}

// CreateProduct validates the payload and inserts the listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := s.validateCreate(ctx, input); err != nil {
		return nil, err
	}

	features := input.Features
	if features == nil {
		features = []string{}
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CategoryID:  input.CategoryID,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		InStock:     input.InStock,
		Rating:      input.Rating,
		ReviewCount: input.ReviewCount,
		Features:    features,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return ToProductDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing listing.
func (s *service) UpdateProduct(ctx context.Context, productID int64, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.CategoryID != nil {
		if err := s.requireCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Rating != nil {
		if err := validateRating(*input.Rating); err != nil {
			return nil, err
		}
		product.Rating = *input.Rating
	}
	if input.ReviewCount != nil {
		if *input.ReviewCount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "review count cannot be negative")
		}
		product.ReviewCount = *input.ReviewCount
	}
	if input.Features != nil {
		product.Features = *input.Features
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return ToProductDTO(updated), nil
}

// DeleteProduct removes the listing.
func (s *service) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

// GetProduct returns a single listing by ID.
func (s *service) GetProduct(ctx context.Context, productID int64) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToProductDTO(product), nil
}

// ListProducts returns one page of listings plus pagination metadata.
func (s *service) ListProducts(ctx context.Context, input ListInput) (*ProductListResult, error) {
	if _, err := input.OrderClause(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort")
	}

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	dtos := make([]ProductDTO, len(rows))
	for i := range rows {
		dtos[i] = *ToProductDTO(&rows[i])
	}
	return &ProductListResult{
		Products: dtos,
		Meta:     pagination.BuildMeta(pagination.Normalize(input.Pagination), total),
	}, nil
}

func (s *service) loadProduct(ctx context.Context, productID int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return product, nil
}

func (s *service) validateCreate(ctx context.Context, input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if err := validateRating(input.Rating); err != nil {
		return err
	}
	if input.ReviewCount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "review count cannot be negative")
	}
	return s.requireCategory(ctx, input.CategoryID)
}

func (s *service) requireCategory(ctx context.Context, categoryID string) error {
	if strings.TrimSpace(categoryID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown category").
				WithDetails(map[string]any{"category": categoryID})
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	return nil
}

func validateRating(rating float64) error {
	if rating < 0 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	return nil
}
