package http_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/config"
	internalhttp "github.com/saleslt/catalog/internal/http"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/service"
	"github.com/saleslt/catalog/pkg/validator"
)

type fakeCategoryService struct {
	createFn func(ctx context.Context, params service.CreateCategoryParams) (model.ProductCategory, error)
	getFn    func(ctx context.Context, categoryID int32) (model.ProductCategory, error)
	listFn   func(ctx context.Context, skip, limit int32) ([]model.ProductCategory, error)
	updateFn func(ctx context.Context, categoryID int32, params service.UpdateCategoryParams) (model.ProductCategory, error)
	deleteFn func(ctx context.Context, categoryID int32) error
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, params service.CreateCategoryParams) (model.ProductCategory, error) {
	return f.createFn(ctx, params)
}
func (f *fakeCategoryService) GetCategory(ctx context.Context, categoryID int32) (model.ProductCategory, error) {
	return f.getFn(ctx, categoryID)
}
func (f *fakeCategoryService) ListCategories(ctx context.Context, skip, limit int32) ([]model.ProductCategory, error) {
	return f.listFn(ctx, skip, limit)
}
func (f *fakeCategoryService) UpdateCategory(ctx context.Context, categoryID int32, params service.UpdateCategoryParams) (model.ProductCategory, error) {
	return f.updateFn(ctx, categoryID, params)
}
func (f *fakeCategoryService) DeleteCategory(ctx context.Context, categoryID int32) error {
	return f.deleteFn(ctx, categoryID)
}

func newCategoryRouter(t *testing.T, categorySvc service.CategoryService) chi.Router {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	svc := internalhttp.New(
		config.HTTP{Port: 8080},
		slog.New(slog.DiscardHandler),
		v,
		nil,
		categorySvc,
		nil, nil,
	)

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func sampleCategory() model.ProductCategory {
	return model.ProductCategory{
		ProductCategoryID: 7,
		Name:              "Mountain Bikes",
		Rowguid:           uuid.New(),
		ModifiedDate:      time.Now(),
	}
}

func TestCreateCategoryHandler(t *testing.T) {
	t.Run("Should return 201 with the created category", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{
			createFn: func(_ context.Context, params service.CreateCategoryParams) (model.ProductCategory, error) {
				category := sampleCategory()
				category.Name = params.Name
				return category, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Mountain Bikes"}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "Mountain Bikes", body["name"])
	})

	t.Run("Should return 409 for a duplicate name", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{
			createFn: func(_ context.Context, params service.CreateCategoryParams) (model.ProductCategory, error) {
				return model.ProductCategory{}, apperr.NewDuplicateCategoryName(params.Name)
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"Mountain Bikes"}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.DuplicateCategoryCode)
	})

	t.Run("Should return 409 when the parent category does not exist", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{
			createFn: func(context.Context, service.CreateCategoryParams) (model.ProductCategory, error) {
				return model.ProductCategory{}, apperr.NewMissingReference("parent_product_category_id")
			},
		})

		body := `{"name":"Forks","parent_product_category_id":999}`
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.MissingReferenceCode)
	})

	t.Run("Should return 422 when the name exceeds 50 characters", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{})

		body := `{"name":"` + strings.Repeat("x", 51) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestDeleteCategoryHandler(t *testing.T) {
	t.Run("Should return 409 when products still reference the category", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{
			deleteFn: func(_ context.Context, categoryID int32) error {
				return apperr.NewCategoryInUse(categoryID)
			},
		})

		req := httptest.NewRequest(http.MethodDelete, "/categories/7", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.CategoryInUseCode)
	})

	t.Run("Should return 404 for a missing category", func(t *testing.T) {
		r := newCategoryRouter(t, &fakeCategoryService{
			deleteFn: func(_ context.Context, categoryID int32) error {
				return apperr.NewCategoryNotFound(categoryID)
			},
		})

		req := httptest.NewRequest(http.MethodDelete, "/categories/99", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}
