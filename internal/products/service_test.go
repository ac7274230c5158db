package products

import (
	"context"
	"testing"

	"github.com/barbarashop/storefront-backend/pkg/db/models"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryReader struct {
	known map[string]bool
}

func (s *stubCategoryReader) FindByID(_ context.Context, id string) (*models.Category, error) {
	if s.known[id] {
		return &models.Category{ID: id, Name: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T) Service {
	t.Helper()
	repo := NewRepository(setupProductsTestDB(t))
	svc, err := NewService(repo, &stubCategoryReader{known: map[string]bool{
		"electronics": true,
		"home":        true,
	}})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, &stubCategoryReader{})
	assert.Error(t, err)

	_, err = NewService(&Repository{}, nil)
	assert.Error(t, err)
}

func TestServiceCreateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Wireless Headphones",
		CategoryID: "electronics",
		PriceCents: 29999,
		InStock:    true,
		Rating:     4.8,
		Features:   []string{"bluetooth"},
	})
	require.NoError(t, err)
	assert.NotZero(t, dto.ID)
	assert.Equal(t, "299.99", dto.Price)
	assert.Equal(t, int64(29999), dto.PriceCents)
	assert.True(t, dto.InStock)
	assert.True(t, dto.InStockOld)
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{CategoryID: "home", PriceCents: 100}},
		{"negative price", CreateProductInput{Name: "X", CategoryID: "home", PriceCents: -1}},
		{"bad rating", CreateProductInput{Name: "X", CategoryID: "home", PriceCents: 100, Rating: 5.5}},
		{"negative reviews", CreateProductInput{Name: "X", CategoryID: "home", PriceCents: 100, ReviewCount: -1}},
		{"missing category", CreateProductInput{Name: "X", PriceCents: 100}},
		{"unknown category", CreateProductInput{Name: "X", CategoryID: "toys", PriceCents: 100}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.input)
			require.Error(t, err)
			coded := pkgerrors.As(err)
			require.NotNil(t, coded)
			assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
		})
	}
}

func TestServiceUpdateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Desk Lamp",
		CategoryID: "home",
		PriceCents: 8999,
		InStock:    true,
	})
	require.NoError(t, err)

	newName := "Adjustable Desk Lamp"
	newPrice := int64(7999)
	outOfStock := false
	dto, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{
		Name:       &newName,
		PriceCents: &newPrice,
		InStock:    &outOfStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Adjustable Desk Lamp", dto.Name)
	assert.Equal(t, "79.99", dto.Price)
	assert.False(t, dto.InStock)
	assert.False(t, dto.InStockOld)

	// untouched fields survive
	assert.Equal(t, "home", dto.Category)
}

func TestServiceUpdateProductValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Mug",
		CategoryID: "home",
		PriceCents: 2499,
	})
	require.NoError(t, err)

	empty := "  "
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Name: &empty})
	assertCode(t, err, pkgerrors.CodeValidation)

	unknown := "toys"
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{CategoryID: &unknown})
	assertCode(t, err, pkgerrors.CodeValidation)

	negative := int64(-5)
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{PriceCents: &negative})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.UpdateProduct(ctx, 9999, UpdateProductInput{})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDeleteProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:       "Tote",
		CategoryID: "home",
		PriceCents: 4999,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	assertCode(t, svc.DeleteProduct(ctx, created.ID), pkgerrors.CodeNotFound)

	_, err = svc.GetProduct(ctx, created.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceListProducts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	names := []string{"Alpha Speaker", "Beta Speaker", "Gamma Speaker"}
	for i, name := range names {
		_, err := svc.CreateProduct(ctx, CreateProductInput{
			Name:       name,
			CategoryID: "electronics",
			PriceCents: int64((i + 1) * 1000),
		})
		require.NoError(t, err)
	}

	result, err := svc.ListProducts(ctx, ListInput{
		Filters:    ListFilters{Search: "speaker"},
		SortBy:     "price",
		SortOrder:  "desc",
		Pagination: pagination.Params{Page: 1, PerPage: 2},
	})
	require.NoError(t, err)
	require.Len(t, result.Products, 2)
	assert.Equal(t, "Gamma Speaker", result.Products[0].Name)
	assert.EqualValues(t, 3, result.Meta.Total)
	assert.Equal(t, 2, result.Meta.TotalPages)
	assert.True(t, result.Meta.HasNext)
	assert.False(t, result.Meta.HasPrev)

	_, err = svc.ListProducts(ctx, ListInput{SortBy: "sku"})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, code, coded.Code())
}
