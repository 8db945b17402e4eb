package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	GetProduct(ctx context.Context, productID int32) (model.Product, error)
	ListProducts(ctx context.Context, offset, limit int32) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, productID int32) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

// Thumbnail bytes are write-only: they are never selected back.
const productColumns = `
	product_id, name, product_number, color, standard_cost, list_price,
	size, weight, sell_start_date, sell_end_date, discontinued_date,
	thumbnail_photo_file_name, product_model_id, product_category_id,
	rowguid, modified_date`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO product (
			name, product_number, color, standard_cost, list_price,
			size, weight, sell_start_date, sell_end_date, discontinued_date,
			thumbnail_photo, thumbnail_photo_file_name,
			product_model_id, product_category_id, rowguid, modified_date
		) VALUES (
			@name, @product_number, @color, @standard_cost, @list_price,
			@size, @weight, @sell_start_date, @sell_end_date, @discontinued_date,
			@thumbnail_photo, @thumbnail_photo_file_name,
			@product_model_id, @product_category_id, @rowguid, @modified_date
		)
		RETURNING`+productColumns,
		pgx.NamedArgs{
			"name":                      product.Name,
			"product_number":            product.ProductNumber,
			"color":                     product.Color,
			"standard_cost":             product.StandardCost,
			"list_price":                product.ListPrice,
			"size":                      product.Size,
			"weight":                    product.Weight,
			"sell_start_date":           product.SellStartDate,
			"sell_end_date":             product.SellEndDate,
			"discontinued_date":         product.DiscontinuedDate,
			"thumbnail_photo":           product.ThumbNailPhoto,
			"thumbnail_photo_file_name": product.ThumbnailPhotoFileName,
			"product_model_id":          product.ProductModelID,
			"product_category_id":       product.ProductCategoryID,
			"rowguid":                   product.Rowguid,
			"modified_date":             product.ModifiedDate,
		})

	created, err := scanProduct(row)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", translateError(err, conflictContext{
			Name:   product.Name,
			Number: product.ProductNumber,
		}))
	}

	return created, nil
}

func (r productRepository) GetProduct(ctx context.Context, productID int32) (model.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+productColumns+` FROM product WHERE product_id = @product_id`,
		pgx.NamedArgs{"product_id": productID})

	product, err := scanProduct(row)
	if err != nil {
		err = notFound(err, apperr.NewProductNotFound(productID))
		return model.Product{}, fmt.Errorf("get product: %w", translateError(err, conflictContext{}))
	}

	return product, nil
}

func (r productRepository) ListProducts(ctx context.Context, offset, limit int32) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+productColumns+`
		FROM product
		ORDER BY product_id ASC
		OFFSET @offset LIMIT @limit`,
		pgx.NamedArgs{"offset": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", translateError(err, conflictContext{}))
	}
	defer rows.Close()

	products := make([]model.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products rows: %w", translateError(err, conflictContext{}))
	}

	return products, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	// COALESCE keeps the stored thumbnail when the caller did not send one;
	// reads never load the bytes, so the merged entity cannot carry them.
	row := r.db.QueryRow(ctx, `
		UPDATE product SET
			name                      = @name,
			product_number            = @product_number,
			color                     = @color,
			standard_cost             = @standard_cost,
			list_price                = @list_price,
			size                      = @size,
			weight                    = @weight,
			sell_start_date           = @sell_start_date,
			sell_end_date             = @sell_end_date,
			discontinued_date         = @discontinued_date,
			thumbnail_photo           = COALESCE(@thumbnail_photo, thumbnail_photo),
			thumbnail_photo_file_name = @thumbnail_photo_file_name,
			product_model_id          = @product_model_id,
			product_category_id       = @product_category_id,
			modified_date             = @modified_date
		WHERE product_id = @product_id
		RETURNING`+productColumns,
		pgx.NamedArgs{
			"product_id":                product.ProductID,
			"name":                      product.Name,
			"product_number":            product.ProductNumber,
			"color":                     product.Color,
			"standard_cost":             product.StandardCost,
			"list_price":                product.ListPrice,
			"size":                      product.Size,
			"weight":                    product.Weight,
			"sell_start_date":           product.SellStartDate,
			"sell_end_date":             product.SellEndDate,
			"discontinued_date":         product.DiscontinuedDate,
			"thumbnail_photo":           product.ThumbNailPhoto,
			"thumbnail_photo_file_name": product.ThumbnailPhotoFileName,
			"product_model_id":          product.ProductModelID,
			"product_category_id":       product.ProductCategoryID,
			"modified_date":             product.ModifiedDate,
		})

	updated, err := scanProduct(row)
	if err != nil {
		err = notFound(err, apperr.NewProductNotFound(product.ProductID))
		return model.Product{}, fmt.Errorf("update product: %w", translateError(err, conflictContext{
			Name:   product.Name,
			Number: product.ProductNumber,
		}))
	}

	return updated, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, productID int32) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM product WHERE product_id = @product_id`,
		pgx.NamedArgs{"product_id": productID})
	if err != nil {
		return fmt.Errorf("delete product: %w", translateError(err, conflictContext{
			ProductID: productID,
		}))
	}

	if tag.RowsAffected() == 0 {
		return apperr.NewProductNotFound(productID)
	}

	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.ProductNumber,
		&p.Color,
		&p.StandardCost,
		&p.ListPrice,
		&p.Size,
		&p.Weight,
		&p.SellStartDate,
		&p.SellEndDate,
		&p.DiscontinuedDate,
		&p.ThumbnailPhotoFileName,
		&p.ProductModelID,
		&p.ProductCategoryID,
		&p.Rowguid,
		&p.ModifiedDate,
	)
	return p, err
}
