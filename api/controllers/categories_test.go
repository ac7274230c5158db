package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	categoriessvc "github.com/barbarashop/storefront-backend/internal/categories"
	pkgerrors "github.com/barbarashop/storefront-backend/pkg/errors"
)

type stubCategoryService struct {
	lastCreate *categoriessvc.CreateCategoryInput
	lastID     string
	dto        *categoriessvc.CategoryDTO
	list       []categoriessvc.CategoryDTO
	err        error
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, input categoriessvc.CreateCategoryInput) (*categoriessvc.CategoryDTO, error) {
	s.lastCreate = &input
	return s.dto, s.err
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, categoryID string, input categoriessvc.UpdateCategoryInput) (*categoriessvc.CategoryDTO, error) {
	s.lastID = categoryID
	return s.dto, s.err
}

func (s *stubCategoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	s.lastID = categoryID
	return s.err
}

func (s *stubCategoryService) GetCategory(ctx context.Context, categoryID string) (*categoriessvc.CategoryDTO, error) {
	s.lastID = categoryID
	return s.dto, s.err
}

func (s *stubCategoryService) ListCategories(ctx context.Context) ([]categoriessvc.CategoryDTO, error) {
	return s.list, s.err
}

func withCategoryID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("categoryID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateCategory(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubCategoryService{dto: &categoriessvc.CategoryDTO{ID: "electronics"}}
		body := `{"id":"electronics","name":"Electronics","description":"Gadgets"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(body))
		rec := httptest.NewRecorder()

		CreateCategory(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastCreate == nil || stub.lastCreate.ID != "electronics" {
			t.Fatalf("unexpected create input: %+v", stub.lastCreate)
		}
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		stub := &stubCategoryService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", strings.NewReader(`{"name":"Electronics"}`))
		rec := httptest.NewRecorder()

		CreateCategory(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.lastCreate != nil {
			t.Fatal("service should not run on invalid body")
		}
	})
}

func TestGetCategoryPassesParam(t *testing.T) {
	logg := testLogger()
	stub := &stubCategoryService{dto: &categoriessvc.CategoryDTO{ID: "home"}}

	req := withCategoryID(httptest.NewRequest(http.MethodGet, "/api/v1/categories/home", nil), "home")
	rec := httptest.NewRecorder()

	GetCategory(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastID != "home" {
		t.Fatalf("expected category id to reach service, got %q", stub.lastID)
	}
}

func TestDeleteCategoryConflict(t *testing.T) {
	logg := testLogger()
	stub := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "category still has products")}

	req := withCategoryID(httptest.NewRequest(http.MethodDelete, "/api/v1/categories/home", nil), "home")
	rec := httptest.NewRecorder()

	DeleteCategory(stub, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
