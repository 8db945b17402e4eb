package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saleslt/catalog/internal/event"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/repository"
	"github.com/saleslt/catalog/internal/storage/db"
	"github.com/saleslt/catalog/pkg/outbox"
	"github.com/saleslt/catalog/pkg/ptr"
)

type CreateProductParams struct {
	Name                   string
	ProductNumber          string
	Color                  *string
	StandardCost           decimal.Decimal
	ListPrice              decimal.Decimal
	Size                   *model.Size
	Weight                 *decimal.Decimal
	SellStartDate          time.Time
	SellEndDate            *time.Time
	DiscontinuedDate       *time.Time
	ThumbNailPhoto         []byte
	ThumbnailPhotoFileName *string
	ProductModelID         *int32
	ProductCategoryID      *int32
}

// UpdateProductParams is a partial update: nil means "leave unchanged".
// Optional fields cannot be cleared back to NULL through an update.
type UpdateProductParams struct {
	Name                   *string
	ProductNumber          *string
	Color                  *string
	StandardCost           *decimal.Decimal
	ListPrice              *decimal.Decimal
	Size                   *model.Size
	Weight                 *decimal.Decimal
	SellStartDate          *time.Time
	SellEndDate            *time.Time
	DiscontinuedDate       *time.Time
	ThumbNailPhoto         []byte
	ThumbnailPhotoFileName *string
	ProductModelID         *int32
	ProductCategoryID      *int32
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, productID int32) (model.Product, error)
	ListProducts(ctx context.Context, skip, limit int32) ([]model.Product, error)
	UpdateProduct(ctx context.Context, productID int32, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, productID int32) error
}

type productService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	now := time.Now()
	product := model.Product{
		Name:                   params.Name,
		ProductNumber:          params.ProductNumber,
		Color:                  params.Color,
		StandardCost:           params.StandardCost,
		ListPrice:              params.ListPrice,
		Size:                   params.Size,
		Weight:                 normalizedWeight(params.Weight),
		SellStartDate:          params.SellStartDate,
		SellEndDate:            params.SellEndDate,
		DiscontinuedDate:       params.DiscontinuedDate,
		ThumbNailPhoto:         params.ThumbNailPhoto,
		ThumbnailPhotoFileName: params.ThumbnailPhotoFileName,
		ProductModelID:         params.ProductModelID,
		ProductCategoryID:      params.ProductCategoryID,
		Rowguid:                uuid.New(),
		ModifiedDate:           now,
	}

	var created model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		created, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		ev := event.ProductCreatedEvent{
			ProductID:     created.ProductID,
			Name:          created.Name,
			ProductNumber: created.ProductNumber,
			ListPrice:     created.ListPrice.String(),
			Rowguid:       created.Rowguid.String(),
		}
		if err := s.createOutboxMsg(ctx, db, event.TopicProductCreated, created.ProductID, ev); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return created, nil
}

func (s *productService) GetProduct(ctx context.Context, productID int32) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, skip, limit int32) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID int32, params UpdateProductParams) (model.Product, error) {
	var updated model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.productRepo.WithDB(db)

		product, err := repo.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}

		mergeProduct(&product, params)
		// An empty partial update still refreshes ModifiedDate.
		product.ModifiedDate = time.Now()

		updated, err = repo.UpdateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		ev := event.ProductUpdatedEvent{
			ProductID:     updated.ProductID,
			Name:          updated.Name,
			ProductNumber: updated.ProductNumber,
			ListPrice:     updated.ListPrice.String(),
		}
		if err := s.createOutboxMsg(ctx, db, event.TopicProductUpdated, updated.ProductID, ev); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int32) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			DeleteProduct(ctx, productID); err != nil {
			return fmt.Errorf("product repository delete product: %w", err)
		}

		ev := event.ProductDeletedEvent{ProductID: productID}
		if err := s.createOutboxMsg(ctx, db, event.TopicProductDeleted, productID, ev); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

func (s *productService) createOutboxMsg(ctx context.Context, db db.DB, topic string, productID int32, ev any) error {
	evBytes, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      outbox.BuildHeaders(ctx),
			Payload:      evBytes,
			PartitionKey: ptr.New(strconv.FormatInt(int64(productID), 10)),
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}

func mergeProduct(product *model.Product, params UpdateProductParams) {
	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.ProductNumber != nil {
		product.ProductNumber = *params.ProductNumber
	}
	if params.Color != nil {
		product.Color = params.Color
	}
	if params.StandardCost != nil {
		product.StandardCost = *params.StandardCost
	}
	if params.ListPrice != nil {
		product.ListPrice = *params.ListPrice
	}
	if params.Size != nil {
		product.Size = params.Size
	}
	if params.Weight != nil {
		product.Weight = normalizedWeight(params.Weight)
	}
	if params.SellStartDate != nil {
		product.SellStartDate = *params.SellStartDate
	}
	if params.SellEndDate != nil {
		product.SellEndDate = params.SellEndDate
	}
	if params.DiscontinuedDate != nil {
		product.DiscontinuedDate = params.DiscontinuedDate
	}
	if params.ThumbNailPhoto != nil {
		product.ThumbNailPhoto = params.ThumbNailPhoto
	}
	if params.ThumbnailPhotoFileName != nil {
		product.ThumbnailPhotoFileName = params.ThumbnailPhotoFileName
	}
	if params.ProductModelID != nil {
		product.ProductModelID = params.ProductModelID
	}
	if params.ProductCategoryID != nil {
		product.ProductCategoryID = params.ProductCategoryID
	}
}

func normalizedWeight(w *decimal.Decimal) *decimal.Decimal {
	if w == nil {
		return nil
	}
	return ptr.New(model.NormalizeWeight(*w))
}
