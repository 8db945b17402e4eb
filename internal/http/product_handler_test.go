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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/config"
	internalhttp "github.com/saleslt/catalog/internal/http"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/service"
	"github.com/saleslt/catalog/pkg/validator"
)

type fakeProductService struct {
	createFn func(ctx context.Context, params service.CreateProductParams) (model.Product, error)
	getFn    func(ctx context.Context, productID int32) (model.Product, error)
	listFn   func(ctx context.Context, skip, limit int32) ([]model.Product, error)
	updateFn func(ctx context.Context, productID int32, params service.UpdateProductParams) (model.Product, error)
	deleteFn func(ctx context.Context, productID int32) error
}

func (f *fakeProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.Product, error) {
	return f.createFn(ctx, params)
}
func (f *fakeProductService) GetProduct(ctx context.Context, productID int32) (model.Product, error) {
	return f.getFn(ctx, productID)
}
func (f *fakeProductService) ListProducts(ctx context.Context, skip, limit int32) ([]model.Product, error) {
	return f.listFn(ctx, skip, limit)
}
func (f *fakeProductService) UpdateProduct(ctx context.Context, productID int32, params service.UpdateProductParams) (model.Product, error) {
	return f.updateFn(ctx, productID, params)
}
func (f *fakeProductService) DeleteProduct(ctx context.Context, productID int32) error {
	return f.deleteFn(ctx, productID)
}

func newRouter(t *testing.T, productSvc service.ProductService) chi.Router {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	svc := internalhttp.New(
		config.HTTP{Port: 8080},
		slog.New(slog.DiscardHandler),
		v,
		productSvc,
		nil, nil, nil,
	)

	r := chi.NewRouter()
	svc.RegisterHandlers(r)
	return r
}

func sampleProduct() model.Product {
	return model.Product{
		ProductID:     1,
		Name:          "Widget",
		ProductNumber: "W-1",
		StandardCost:  decimal.RequireFromString("1.00"),
		ListPrice:     decimal.RequireFromString("2.00"),
		SellStartDate: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
		Rowguid:       uuid.New(),
		ModifiedDate:  time.Now(),
	}
}

func TestGetProductHandler(t *testing.T) {
	t.Run("Should return 404 with the exact message for a missing product", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			getFn: func(_ context.Context, productID int32) (model.Product, error) {
				return model.Product{}, apperr.NewProductNotFound(productID)
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products/5", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNotFound, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "Product with ID 5 not found", body["message"])
	})

	t.Run("Should return 200 with the product and no thumbnail bytes", func(t *testing.T) {
		product := sampleProduct()
		product.ThumbNailPhoto = []byte{0x89, 0x50}

		r := newRouter(t, &fakeProductService{
			getFn: func(context.Context, int32) (model.Product, error) {
				return product, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotContains(t, resp.Body.String(), "thumbnail_photo\"")

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "Widget", body["name"])
		assert.NotEmpty(t, body["rowguid"])
	})

	t.Run("Should return 400 for a non-integer id", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{})

		req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestListProductsHandler(t *testing.T) {
	t.Run("Should apply default pagination", func(t *testing.T) {
		var gotSkip, gotLimit int32
		r := newRouter(t, &fakeProductService{
			listFn: func(_ context.Context, skip, limit int32) ([]model.Product, error) {
				gotSkip, gotLimit = skip, limit
				return []model.Product{}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, int32(0), gotSkip)
		assert.Equal(t, int32(100), gotLimit)
	})

	t.Run("Should pass skip and limit through", func(t *testing.T) {
		var gotSkip, gotLimit int32
		r := newRouter(t, &fakeProductService{
			listFn: func(_ context.Context, skip, limit int32) ([]model.Product, error) {
				gotSkip, gotLimit = skip, limit
				return []model.Product{}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products?skip=20&limit=10", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, int32(20), gotSkip)
		assert.Equal(t, int32(10), gotLimit)
	})

	t.Run("Should reject a negative skip", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{})

		req := httptest.NewRequest(http.MethodGet, "/products?skip=-1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestCreateProductHandler(t *testing.T) {
	validBody := `{
		"name": "Widget",
		"product_number": "W-1",
		"standard_cost": "1.00",
		"list_price": "2.00",
		"sell_start_date": "2021-06-01T00:00:00Z"
	}`

	t.Run("Should return 201 with the created product", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			createFn: func(_ context.Context, params service.CreateProductParams) (model.Product, error) {
				product := sampleProduct()
				product.Name = params.Name
				return product, nil
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(validBody))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, float64(1), body["product_id"])
		assert.NotEmpty(t, body["rowguid"])
		assert.NotEmpty(t, body["modified_date"])
	})

	t.Run("Should return 422 when the name exceeds 100 characters", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{})

		body := strings.Replace(validBody, "Widget", strings.Repeat("x", 101), 1)
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		assert.Contains(t, resp.Body.String(), "Name")
	})

	t.Run("Should accept a name of exactly 100 characters", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			createFn: func(context.Context, service.CreateProductParams) (model.Product, error) {
				return sampleProduct(), nil
			},
		})

		body := strings.Replace(validBody, "Widget", strings.Repeat("x", 100), 1)
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusCreated, resp.Code)
	})

	t.Run("Should return 422 for a size outside the enumerated set", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{})

		body := strings.Replace(validBody, `"name": "Widget",`, `"name": "Widget", "size": "XL",`, 1)
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("Should return 409 for a duplicate name", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			createFn: func(_ context.Context, params service.CreateProductParams) (model.Product, error) {
				return model.Product{}, apperr.NewDuplicateName(params.Name)
			},
		})

		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(validBody))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.DuplicateNameCode)
	})

	t.Run("Should return 400 for a malformed body", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{})

		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader("{not json"))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	t.Run("Should return 200 for an empty partial payload", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			updateFn: func(_ context.Context, productID int32, params service.UpdateProductParams) (model.Product, error) {
				assert.Nil(t, params.Name)
				assert.Nil(t, params.ListPrice)
				return sampleProduct(), nil
			},
		})

		req := httptest.NewRequest(http.MethodPut, "/products/1", strings.NewReader(`{}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should return 409 for a duplicate product number", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			updateFn: func(context.Context, int32, service.UpdateProductParams) (model.Product, error) {
				return model.Product{}, apperr.NewDuplicateNumber("W-1")
			},
		})

		req := httptest.NewRequest(http.MethodPut, "/products/1", strings.NewReader(`{"product_number":"W-1"}`))
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.DuplicateNumberCode)
	})
}

func TestDeleteProductHandler(t *testing.T) {
	t.Run("Should return 204 on success", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			deleteFn: func(context.Context, int32) error { return nil },
		})

		req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusNoContent, resp.Code)
		assert.Empty(t, resp.Body.String())
	})

	t.Run("Should return 409 when order lines still reference the product", func(t *testing.T) {
		r := newRouter(t, &fakeProductService{
			deleteFn: func(_ context.Context, productID int32) error {
				return apperr.NewHasDependentOrders(productID)
			},
		})

		req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Contains(t, resp.Body.String(), apperr.DependentOrdersCode)
	})
}
