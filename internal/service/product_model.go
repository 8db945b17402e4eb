package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/repository"
)

type CreateProductModelParams struct {
	Name               string
	CatalogDescription *string
}

type LinkDescriptionParams struct {
	ProductDescriptionID int32
	Culture              string
}

// ProductModelDetail is a model with the description links attached.
type ProductModelDetail struct {
	model.ProductModel
	Descriptions []model.ProductModelDescriptionLink `json:"descriptions"`
}

type ProductModelService interface {
	CreateProductModel(ctx context.Context, params CreateProductModelParams) (model.ProductModel, error)
	GetProductModel(ctx context.Context, modelID int32) (ProductModelDetail, error)
	ListProductModels(ctx context.Context, skip, limit int32) ([]model.ProductModel, error)
	LinkDescription(ctx context.Context, modelID int32, params LinkDescriptionParams) (model.ProductModelDescriptionLink, error)
}

type productModelService struct {
	modelRepo       repository.ProductModelRepository
	descriptionRepo repository.DescriptionRepository
}

func NewProductModelService(
	modelRepo repository.ProductModelRepository,
	descriptionRepo repository.DescriptionRepository,
) ProductModelService {
	return &productModelService{
		modelRepo:       modelRepo,
		descriptionRepo: descriptionRepo,
	}
}

func (s *productModelService) CreateProductModel(ctx context.Context, params CreateProductModelParams) (model.ProductModel, error) {
	productModel := model.ProductModel{
		Name:               params.Name,
		CatalogDescription: params.CatalogDescription,
		Rowguid:            uuid.New(),
		ModifiedDate:       time.Now(),
	}

	created, err := s.modelRepo.CreateProductModel(ctx, productModel)
	if err != nil {
		return model.ProductModel{}, fmt.Errorf("product model repository create: %w", err)
	}

	return created, nil
}

func (s *productModelService) GetProductModel(ctx context.Context, modelID int32) (ProductModelDetail, error) {
	productModel, err := s.modelRepo.GetProductModel(ctx, modelID)
	if err != nil {
		return ProductModelDetail{}, fmt.Errorf("product model repository get: %w", err)
	}

	links, err := s.modelRepo.ListDescriptionLinks(ctx, modelID)
	if err != nil {
		return ProductModelDetail{}, fmt.Errorf("product model repository list description links: %w", err)
	}

	return ProductModelDetail{
		ProductModel: productModel,
		Descriptions: links,
	}, nil
}

func (s *productModelService) ListProductModels(ctx context.Context, skip, limit int32) ([]model.ProductModel, error) {
	productModels, err := s.modelRepo.ListProductModels(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("product model repository list: %w", err)
	}

	return productModels, nil
}

func (s *productModelService) LinkDescription(ctx context.Context, modelID int32, params LinkDescriptionParams) (model.ProductModelDescriptionLink, error) {
	// Resolve both sides first so a missing model or description reads as 404,
	// not as an opaque foreign key conflict.
	if _, err := s.modelRepo.GetProductModel(ctx, modelID); err != nil {
		return model.ProductModelDescriptionLink{}, fmt.Errorf("product model repository get: %w", err)
	}
	if _, err := s.descriptionRepo.GetDescription(ctx, params.ProductDescriptionID); err != nil {
		return model.ProductModelDescriptionLink{}, fmt.Errorf("description repository get: %w", err)
	}

	link := model.ProductModelDescriptionLink{
		ProductModelID:       modelID,
		ProductDescriptionID: params.ProductDescriptionID,
		Culture:              params.Culture,
		Rowguid:              uuid.New(),
		ModifiedDate:         time.Now(),
	}

	created, err := s.modelRepo.LinkDescription(ctx, link)
	if err != nil {
		return model.ProductModelDescriptionLink{}, fmt.Errorf("product model repository link description: %w", err)
	}

	return created, nil
}
