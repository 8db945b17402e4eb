package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/storage/db"
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	CreateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error)
	GetCategory(ctx context.Context, categoryID int32) (model.ProductCategory, error)
	ListCategories(ctx context.Context, offset, limit int32) ([]model.ProductCategory, error)
	UpdateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error)
	DeleteCategory(ctx context.Context, categoryID int32) error
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `
	product_category_id, parent_product_category_id, name, rowguid, modified_date`

func (r categoryRepository) CreateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO product_category (
			parent_product_category_id, name, rowguid, modified_date
		) VALUES (
			@parent_product_category_id, @name, @rowguid, @modified_date
		)
		RETURNING`+categoryColumns,
		pgx.NamedArgs{
			"parent_product_category_id": category.ParentProductCategoryID,
			"name":                       category.Name,
			"rowguid":                    category.Rowguid,
			"modified_date":              category.ModifiedDate,
		})

	created, err := scanCategory(row)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("create category: %w", translateError(err, conflictContext{
			Name: category.Name,
		}))
	}

	return created, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, categoryID int32) (model.ProductCategory, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+categoryColumns+` FROM product_category WHERE product_category_id = @product_category_id`,
		pgx.NamedArgs{"product_category_id": categoryID})

	category, err := scanCategory(row)
	if err != nil {
		err = notFound(err, apperr.NewCategoryNotFound(categoryID))
		return model.ProductCategory{}, fmt.Errorf("get category: %w", translateError(err, conflictContext{}))
	}

	return category, nil
}

func (r categoryRepository) ListCategories(ctx context.Context, offset, limit int32) ([]model.ProductCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+categoryColumns+`
		FROM product_category
		ORDER BY product_category_id ASC
		OFFSET @offset LIMIT @limit`,
		pgx.NamedArgs{"offset": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", translateError(err, conflictContext{}))
	}
	defer rows.Close()

	categories := make([]model.ProductCategory, 0, limit)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories rows: %w", translateError(err, conflictContext{}))
	}

	return categories, nil
}

func (r categoryRepository) UpdateCategory(ctx context.Context, category model.ProductCategory) (model.ProductCategory, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE product_category SET
			parent_product_category_id = @parent_product_category_id,
			name                       = @name,
			modified_date              = @modified_date
		WHERE product_category_id = @product_category_id
		RETURNING`+categoryColumns,
		pgx.NamedArgs{
			"product_category_id":        category.ProductCategoryID,
			"parent_product_category_id": category.ParentProductCategoryID,
			"name":                       category.Name,
			"modified_date":              category.ModifiedDate,
		})

	updated, err := scanCategory(row)
	if err != nil {
		err = notFound(err, apperr.NewCategoryNotFound(category.ProductCategoryID))
		return model.ProductCategory{}, fmt.Errorf("update category: %w", translateError(err, conflictContext{
			Name: category.Name,
		}))
	}

	return updated, nil
}

func (r categoryRepository) DeleteCategory(ctx context.Context, categoryID int32) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM product_category WHERE product_category_id = @product_category_id`,
		pgx.NamedArgs{"product_category_id": categoryID})
	if err != nil {
		return fmt.Errorf("delete category: %w", translateError(err, conflictContext{
			CategoryID:     categoryID,
			CategoryDelete: true,
		}))
	}

	if tag.RowsAffected() == 0 {
		return apperr.NewCategoryNotFound(categoryID)
	}

	return nil
}

func scanCategory(row pgx.Row) (model.ProductCategory, error) {
	var c model.ProductCategory
	err := row.Scan(
		&c.ProductCategoryID,
		&c.ParentProductCategoryID,
		&c.Name,
		&c.Rowguid,
		&c.ModifiedDate,
	)
	return c, err
}
