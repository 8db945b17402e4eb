package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/repository"
)

type CreateDescriptionParams struct {
	Description string
}

type DescriptionService interface {
	CreateDescription(ctx context.Context, params CreateDescriptionParams) (model.ProductDescription, error)
	GetDescription(ctx context.Context, descriptionID int32) (model.ProductDescription, error)
	ListDescriptions(ctx context.Context, skip, limit int32) ([]model.ProductDescription, error)
}

type descriptionService struct {
	descriptionRepo repository.DescriptionRepository
}

func NewDescriptionService(descriptionRepo repository.DescriptionRepository) DescriptionService {
	return &descriptionService{descriptionRepo: descriptionRepo}
}

func (s *descriptionService) CreateDescription(ctx context.Context, params CreateDescriptionParams) (model.ProductDescription, error) {
	description := model.ProductDescription{
		Description:  params.Description,
		Rowguid:      uuid.New(),
		ModifiedDate: time.Now(),
	}

	created, err := s.descriptionRepo.CreateDescription(ctx, description)
	if err != nil {
		return model.ProductDescription{}, fmt.Errorf("description repository create: %w", err)
	}

	return created, nil
}

func (s *descriptionService) GetDescription(ctx context.Context, descriptionID int32) (model.ProductDescription, error) {
	description, err := s.descriptionRepo.GetDescription(ctx, descriptionID)
	if err != nil {
		return model.ProductDescription{}, fmt.Errorf("description repository get: %w", err)
	}

	return description, nil
}

func (s *descriptionService) ListDescriptions(ctx context.Context, skip, limit int32) ([]model.ProductDescription, error) {
	descriptions, err := s.descriptionRepo.ListDescriptions(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("description repository list: %w", err)
	}

	return descriptions, nil
}
