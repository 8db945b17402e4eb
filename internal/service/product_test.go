package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/event"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/repository"
	"github.com/saleslt/catalog/internal/service"
	"github.com/saleslt/catalog/internal/storage/db"
	"github.com/saleslt/catalog/pkg/ptr"
	"github.com/saleslt/catalog/pkg/zerror"
)

type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (fakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (f fakeDB) WithTx(_ context.Context, fn func(db.DB) error) error { return fn(f) }

type fakeProductRepo struct {
	stored    map[int32]model.Product
	nextID    int32
	updated   []model.Product
	deleteErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{stored: map[int32]model.Product{}, nextID: 1}
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) (model.Product, error) {
	product.ProductID = r.nextID
	r.nextID++
	r.stored[product.ProductID] = product
	return product, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, productID int32) (model.Product, error) {
	product, ok := r.stored[productID]
	if !ok {
		return model.Product{}, apperr.NewProductNotFound(productID)
	}
	return product, nil
}

func (r *fakeProductRepo) ListProducts(context.Context, int32, int32) ([]model.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product model.Product) (model.Product, error) {
	r.updated = append(r.updated, product)
	r.stored[product.ProductID] = product
	return product, nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, productID int32) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.stored[productID]; !ok {
		return apperr.NewProductNotFound(productID)
	}
	delete(r.stored, productID)
	return nil
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func newProductService() (service.ProductService, *fakeProductRepo, *fakeOutboxRepo) {
	productRepo := newFakeProductRepo()
	outboxRepo := &fakeOutboxRepo{}
	return service.NewProductService(fakeDB{}, productRepo, outboxRepo), productRepo, outboxRepo
}

func createParams() service.CreateProductParams {
	return service.CreateProductParams{
		Name:          "Widget",
		ProductNumber: "W-1",
		StandardCost:  decimal.RequireFromString("1.00"),
		ListPrice:     decimal.RequireFromString("2.00"),
		SellStartDate: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should assign rowguid and ModifiedDate and persist", func(t *testing.T) {
		svc, repo, _ := newProductService()

		before := time.Now()
		product, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		assert.Equal(t, int32(1), product.ProductID)
		assert.NotEqual(t, uuid.Nil, product.Rowguid)
		assert.False(t, product.ModifiedDate.Before(before))
		assert.Len(t, repo.stored, 1)
	})

	t.Run("Should normalize weight before persisting", func(t *testing.T) {
		svc, repo, _ := newProductService()

		params := createParams()
		params.Weight = ptr.New(decimal.RequireFromString("10.005"))

		product, err := svc.CreateProduct(context.Background(), params)
		require.NoError(t, err)

		require.NotNil(t, product.Weight)
		assert.Equal(t, "10", product.Weight.String())
		assert.Equal(t, "10", repo.stored[product.ProductID].Weight.String())
	})

	t.Run("Should write a created event to the outbox in the same unit of work", func(t *testing.T) {
		svc, _, outbox := newProductService()

		product, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		require.Len(t, outbox.msgs, 1)
		msg := outbox.msgs[0]
		assert.Equal(t, event.TopicProductCreated, msg.Topic)
		require.NotNil(t, msg.PartitionKey)
		assert.Equal(t, "1", *msg.PartitionKey)

		var ev event.ProductCreatedEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		assert.Equal(t, product.ProductID, ev.ProductID)
		assert.Equal(t, "Widget", ev.Name)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Should refresh only ModifiedDate on an empty partial update", func(t *testing.T) {
		svc, repo, _ := newProductService()

		original, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		updated, err := svc.UpdateProduct(context.Background(), original.ProductID, service.UpdateProductParams{})
		require.NoError(t, err)

		assert.True(t, updated.ModifiedDate.After(original.ModifiedDate) ||
			updated.ModifiedDate.Equal(original.ModifiedDate))

		got := updated
		got.ModifiedDate = original.ModifiedDate
		assert.Equal(t, original, got, "every field except ModifiedDate must be untouched")
		require.Len(t, repo.updated, 1)
	})

	t.Run("Should merge only the supplied fields", func(t *testing.T) {
		svc, _, _ := newProductService()

		original, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		updated, err := svc.UpdateProduct(context.Background(), original.ProductID, service.UpdateProductParams{
			Name:   ptr.New("Widget v2"),
			Weight: ptr.New(decimal.RequireFromString("3.125")),
		})
		require.NoError(t, err)

		assert.Equal(t, "Widget v2", updated.Name)
		assert.Equal(t, original.ProductNumber, updated.ProductNumber)
		require.NotNil(t, updated.Weight)
		assert.Equal(t, "3.12", updated.Weight.String())
	})

	t.Run("Should write an updated event to the outbox", func(t *testing.T) {
		svc, _, outbox := newProductService()

		original, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		_, err = svc.UpdateProduct(context.Background(), original.ProductID, service.UpdateProductParams{})
		require.NoError(t, err)

		require.Len(t, outbox.msgs, 2)
		assert.Equal(t, event.TopicProductUpdated, outbox.msgs[1].Topic)
	})

	t.Run("Should return not found for a missing product", func(t *testing.T) {
		svc, _, _ := newProductService()

		_, err := svc.UpdateProduct(context.Background(), 99, service.UpdateProductParams{})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Should delete and write a deleted event", func(t *testing.T) {
		svc, repo, outbox := newProductService()

		product, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteProduct(context.Background(), product.ProductID))
		assert.Empty(t, repo.stored)

		require.Len(t, outbox.msgs, 2)
		assert.Equal(t, event.TopicProductDeleted, outbox.msgs[1].Topic)
	})

	t.Run("Should surface the dependent orders conflict and skip the event", func(t *testing.T) {
		svc, repo, outbox := newProductService()

		product, err := svc.CreateProduct(context.Background(), createParams())
		require.NoError(t, err)
		repo.deleteErr = apperr.NewHasDependentOrders(product.ProductID)

		err = svc.DeleteProduct(context.Background(), product.ProductID)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusConflict, zErr.Status())
		assert.Len(t, outbox.msgs, 1, "no deleted event for a blocked delete")
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should always yield not found for a missing id", func(t *testing.T) {
		svc, _, _ := newProductService()

		_, err := svc.GetProduct(context.Background(), 12345)

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusNotFound, zErr.Status())
		assert.Equal(t, "Product with ID 12345 not found", zErr.Msg())
	})
}
