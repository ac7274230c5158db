package controllers

import (
	"net/http"

	"github.com/barbarashop/storefront-backend/api/responses"
	"github.com/barbarashop/storefront-backend/api/validators"
	"github.com/barbarashop/storefront-backend/internal/categories"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
	"github.com/barbarashop/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// CreateCategoryRequest is the admin payload for a new catalog section.
type CreateCategoryRequest struct {
	ID          string `json:"id" validate:"required,max=80"`
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
}

// UpdateCategoryRequest carries optional admin mutations for a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

// ListCategories handles the public category listing.
func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dtos)
	}
}

// GetCategory handles the public category detail endpoint.
func GetCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetCategory(r.Context(), chi.URLParam(r, "categoryID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// CreateCategory handles the admin create endpoint.
func CreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body CreateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateCategory(r.Context(), categories.CreateCategoryInput{
			ID:          body.ID,
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateCategory handles the admin update endpoint.
func UpdateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body UpdateCategoryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "categoryID"), categories.UpdateCategoryInput{
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dto)
	}
}

// DeleteCategory handles the admin delete endpoint.
func DeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "category service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "categoryID")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}
