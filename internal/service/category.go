package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/repository"
	"github.com/saleslt/catalog/internal/storage/db"
)

type CreateCategoryParams struct {
	Name                    string
	ParentProductCategoryID *int32
}

type UpdateCategoryParams struct {
	Name                    *string
	ParentProductCategoryID *int32
}

type CategoryService interface {
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.ProductCategory, error)
	GetCategory(ctx context.Context, categoryID int32) (model.ProductCategory, error)
	ListCategories(ctx context.Context, skip, limit int32) ([]model.ProductCategory, error)
	UpdateCategory(ctx context.Context, categoryID int32, params UpdateCategoryParams) (model.ProductCategory, error)
	DeleteCategory(ctx context.Context, categoryID int32) error
}

type categoryService struct {
	db           db.DB
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(db db.DB, categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.ProductCategory, error) {
	category := model.ProductCategory{
		Name:                    params.Name,
		ParentProductCategoryID: params.ParentProductCategoryID,
		Rowguid:                 uuid.New(),
		ModifiedDate:            time.Now(),
	}

	created, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository create category: %w", err)
	}

	return created, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID int32) (model.ProductCategory, error) {
	category, err := s.categoryRepo.GetCategory(ctx, categoryID)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository get category: %w", err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, skip, limit int32) ([]model.ProductCategory, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID int32, params UpdateCategoryParams) (model.ProductCategory, error) {
	var updated model.ProductCategory
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		repo := s.categoryRepo.WithDB(db)

		category, err := repo.GetCategory(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("category repository get category: %w", err)
		}

		if params.Name != nil {
			category.Name = *params.Name
		}
		if params.ParentProductCategoryID != nil {
			category.ParentProductCategoryID = params.ParentProductCategoryID
		}
		category.ModifiedDate = time.Now()

		updated, err = repo.UpdateCategory(ctx, category)
		if err != nil {
			return fmt.Errorf("category repository update category: %w", err)
		}

		return nil
	}); err != nil {
		return model.ProductCategory{}, err
	}

	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID int32) error {
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("category repository delete category: %w", err)
	}

	return nil
}
