package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/storage/db"
)

type DescriptionRepository interface {
	WithDB(db db.DB) DescriptionRepository
	CreateDescription(ctx context.Context, description model.ProductDescription) (model.ProductDescription, error)
	GetDescription(ctx context.Context, descriptionID int32) (model.ProductDescription, error)
	ListDescriptions(ctx context.Context, offset, limit int32) ([]model.ProductDescription, error)
}

type descriptionRepository struct {
	db db.DB
}

func NewDescriptionRepository(db db.DB) DescriptionRepository {
	return &descriptionRepository{db: db}
}

func (r descriptionRepository) WithDB(db db.DB) DescriptionRepository {
	return &descriptionRepository{db: db}
}

const descriptionColumns = `
	product_description_id, description, rowguid, modified_date`

func (r descriptionRepository) CreateDescription(ctx context.Context, description model.ProductDescription) (model.ProductDescription, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO product_description (description, rowguid, modified_date)
		VALUES (@description, @rowguid, @modified_date)
		RETURNING`+descriptionColumns,
		pgx.NamedArgs{
			"description":   description.Description,
			"rowguid":       description.Rowguid,
			"modified_date": description.ModifiedDate,
		})

	created, err := scanDescription(row)
	if err != nil {
		return model.ProductDescription{}, fmt.Errorf("create description: %w", translateError(err, conflictContext{}))
	}

	return created, nil
}

func (r descriptionRepository) GetDescription(ctx context.Context, descriptionID int32) (model.ProductDescription, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+descriptionColumns+` FROM product_description WHERE product_description_id = @product_description_id`,
		pgx.NamedArgs{"product_description_id": descriptionID})

	description, err := scanDescription(row)
	if err != nil {
		err = notFound(err, apperr.NewDescriptionNotFound(descriptionID))
		return model.ProductDescription{}, fmt.Errorf("get description: %w", translateError(err, conflictContext{}))
	}

	return description, nil
}

func (r descriptionRepository) ListDescriptions(ctx context.Context, offset, limit int32) ([]model.ProductDescription, error) {
	rows, err := r.db.Query(ctx, `
		SELECT`+descriptionColumns+`
		FROM product_description
		ORDER BY product_description_id ASC
		OFFSET @offset LIMIT @limit`,
		pgx.NamedArgs{"offset": offset, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list descriptions: %w", translateError(err, conflictContext{}))
	}
	defer rows.Close()

	descriptions := make([]model.ProductDescription, 0, limit)
	for rows.Next() {
		description, err := scanDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan description row: %w", err)
		}
		descriptions = append(descriptions, description)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list descriptions rows: %w", translateError(err, conflictContext{}))
	}

	return descriptions, nil
}

func scanDescription(row pgx.Row) (model.ProductDescription, error) {
	var d model.ProductDescription
	err := row.Scan(
		&d.ProductDescriptionID,
		&d.Description,
		&d.Rowguid,
		&d.ModifiedDate,
	)
	return d, err
}
