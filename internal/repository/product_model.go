package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/storage/db"
)

type ProductModelRepository interface {
	WithDB(db db.DB) ProductModelRepository
	CreateProductModel(ctx context.Context, productModel model.ProductModel) (model.ProductModel, error)
	GetProductModel(ctx context.Context, modelID int32) (model.ProductModel, error)
	ListProductModels(ctx context.Context, offset, limit int32) ([]model.ProductModel, error)
	LinkDescription(ctx context.Context, link model.ProductModelDescriptionLink) (model.ProductModelDescriptionLink, error)
	ListDescriptionLinks(ctx context.Context, modelID int32) ([]model.ProductModelDescriptionLink, error)
}

type productModelRepository struct {
	db db.DB
}

func NewProductModelRepository(db db.DB) ProductModelRepository {
	return &productModelRepository{db: db}
}

func (r productModelRepository) WithDB(db db.DB) ProductModelRepository {
	return &productModelRepository{db: db}
}

const productModelColumns = `
	product_model_id, name, catalog_description, rowguid, modified_date`

func (r productModelRepository) CreateProductModel(ctx context.Context, productModel model.ProductModel) (model.ProductModel, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO product_model (name, catalog_description, rowguid, modified_date)
		VALUES (@name, @catalog_description, @rowguid, @modified_date)
		RETURNING`+productModelColumns,
		pgx.NamedArgs{
			"name":                productModel.Name,
			"catalog_description": productModel.CatalogDescription,
			"rowguid":             productModel.Rowguid,
			"modified_date":       productModel.ModifiedDate,
		})

	created, err := scanProductModel(row)
	if err != nil {
		return model.ProductModel{}, fmt.Errorf("create product model: %w", translateError(err, conflictContext{
			Name: productModel.Name,
		}))
	}

	return created, nil
}

func (r productModelRepository) GetProductModel(ctx context.Context, modelID int32) (model.ProductModel, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+productModelColumns+` FROM product_model WHERE product_model_id = @product_model_id`,
		pgx.NamedArgs{"product_model_id": modelID})

	productModel, err := scanProductModel(row)
	if err != nil {
		err = notFound(err, apperr.NewModelNotFound(modelID))
		return model.ProductModel{}, fmt.Errorf("get product model: %w", translateError(err, conflictContext{}))
	}

	return productModel, nil
}

func (r productModelRepository) ListProductModels(ctx context.Context, offset, limit int32) ([]model.ProductModel, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+productModelColumns+`
		FROM product_model
		ORDER BY product_model_id ASC
		OFFSET @offset LIMIT @limit`,
		pgx.NamedArgs{"offset": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list product models: %w", translateError(err, conflictContext{}))
	}
	defer rows.Close()

	productModels := make([]model.ProductModel, 0, limit)
	for rows.Next() {
		productModel, err := scanProductModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product model row: %w", err)
		}
		productModels = append(productModels, productModel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list product models rows: %w", translateError(err, conflictContext{}))
	}

	return productModels, nil
}

func (r productModelRepository) LinkDescription(ctx context.Context, link model.ProductModelDescriptionLink) (model.ProductModelDescriptionLink, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO product_model_product_description (
			product_model_id, product_description_id, culture, rowguid, modified_date
		) VALUES (
			@product_model_id, @product_description_id, @culture, @rowguid, @modified_date
		)
		RETURNING product_model_id, product_description_id, culture, rowguid, modified_date`,
		pgx.NamedArgs{
			"product_model_id":       link.ProductModelID,
			"product_description_id": link.ProductDescriptionID,
			"culture":                link.Culture,
			"rowguid":                link.Rowguid,
			"modified_date":          link.ModifiedDate,
		})

	var created model.ProductModelDescriptionLink
	if err := row.Scan(
		&created.ProductModelID,
		&created.ProductDescriptionID,
		&created.Culture,
		&created.Rowguid,
		&created.ModifiedDate,
	); err != nil {
		return model.ProductModelDescriptionLink{}, fmt.Errorf("link description: %w", translateError(err, conflictContext{
			Culture: link.Culture,
		}))
	}

	return created, nil
}

func (r productModelRepository) ListDescriptionLinks(ctx context.Context, modelID int32) ([]model.ProductModelDescriptionLink, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_model_id, product_description_id, culture, rowguid, modified_date
		FROM product_model_product_description
		WHERE product_model_id = @product_model_id
		ORDER BY product_description_id ASC, culture ASC`,
		pgx.NamedArgs{"product_model_id": modelID})
	if err != nil {
		return nil, fmt.Errorf("list description links: %w", translateError(err, conflictContext{}))
	}
	defer rows.Close()

	var links []model.ProductModelDescriptionLink
	for rows.Next() {
		var link model.ProductModelDescriptionLink
		if err := rows.Scan(
			&link.ProductModelID,
			&link.ProductDescriptionID,
			&link.Culture,
			&link.Rowguid,
			&link.ModifiedDate,
		); err != nil {
			return nil, fmt.Errorf("scan description link row: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list description links rows: %w", translateError(err, conflictContext{}))
	}

	return links, nil
}

func scanProductModel(row pgx.Row) (model.ProductModel, error) {
	var m model.ProductModel
	err := row.Scan(
		&m.ProductModelID,
		&m.Name,
		&m.CatalogDescription,
		&m.Rowguid,
		&m.ModifiedDate,
	)
	return m, err
}
