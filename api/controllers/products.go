package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/barbarashop/storefront-backend/api/responses"
	"github.com/barbarashop/storefront-backend/api/validators"
	"github.com/barbarashop/storefront-backend/internal/products"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
	"github.com/barbarashop/storefront-backend/pkg/money"
	"github.com/barbarashop/storefront-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

// CreateProductRequest is the admin payload for a new listing. Price arrives
// as a decimal dollar string and is converted to cents at the boundary.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Category    string   `json:"category" validate:"required"`
	Price       string   `json:"price" validate:"required"`
	Image       string   `json:"image" validate:"omitempty,url"`
	InStock     *bool    `json:"in_stock"`
	InStockOld  *bool    `json:"inStock"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount int      `json:"review_count" validate:"gte=0"`
	Features    []string `json:"features"`
}

// UpdateProductRequest carries optional admin mutations for a listing.
type UpdateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Category    *string   `json:"category"`
	Price       *string   `json:"price"`
	Image       *string   `json:"image" validate:"omitempty,url"`
	InStock     *bool     `json:"in_stock"`
	InStockOld  *bool     `json:"inStock"`
	Rating      *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount *int      `json:"review_count" validate:"omitempty,gte=0"`
	Features    *[]string `json:"features"`
}

// ListProducts handles the public browse endpoint.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct handles the public detail endpoint.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CreateProduct handles the admin create endpoint.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priceCents, err := money.FromDollarString(body.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		inStock := true
		if stock := resolveInStock(body.InStock, body.InStockOld); stock != nil {
			inStock = *stock
		}

		dto, err := svc.CreateProduct(r.Context(), products.CreateProductInput{
			Name:        body.Name,
			Description: body.Description,
			CategoryID:  body.Category,
			PriceCents:  priceCents,
			ImageURL:    body.Image,
			InStock:     inStock,
			Rating:      body.Rating,
			ReviewCount: body.ReviewCount,
			Features:    body.Features,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateProduct handles the admin update endpoint.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := products.UpdateProductInput{
			Name:        body.Name,
			Description: body.Description,
			CategoryID:  body.Category,
			ImageURL:    body.Image,
			InStock:     resolveInStock(body.InStock, body.InStockOld),
			Rating:      body.Rating,
			ReviewCount: body.ReviewCount,
			Features:    body.Features,
		}
		if body.Price != nil {
			priceCents, err := money.FromDollarString(*body.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.PriceCents = &priceCents
		}

		dto, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeleteProduct handles the admin delete endpoint.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}

func parseListInput(r *http.Request) (*products.ListInput, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return nil, err
	}
	perPage, err := validators.ParseQueryInt(r, "per_page", pagination.DefaultPerPage, 1, pagination.MaxPerPage)
	if err != nil {
		return nil, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	filters := products.ListFilters{
		Search:     strings.TrimSpace(query.Get("search")),
		CategoryID: strings.TrimSpace(query.Get("category")),
		InStock:    inStock,
	}

	if raw := strings.TrimSpace(query.Get("price_min")); raw != "" {
		cents, err := money.FromDollarString(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price_min")
		}
		filters.PriceMinCents = &cents
	}
	if raw := strings.TrimSpace(query.Get("price_max")); raw != "" {
		cents, err := money.FromDollarString(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price_max")
		}
		filters.PriceMaxCents = &cents
	}

	return &products.ListInput{
		Filters:    filters,
		SortBy:     strings.TrimSpace(query.Get("sort_by")),
		SortOrder:  strings.TrimSpace(query.Get("sort_order")),
		Pagination: pagination.Params{Page: page, PerPage: perPage},
	}, nil
}

func productIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id").
			WithDetails(map[string]any{"id": raw})
	}
	return id, nil
}

// resolveInStock prefers the canonical in_stock key over the legacy inStock
// spelling when both arrive.
func resolveInStock(canonical, legacy *bool) *bool {
	if canonical != nil {
		return canonical
	}
	return legacy
}
