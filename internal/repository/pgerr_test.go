package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/pkg/zerror"
)

func pgConstraintErr(code, constraint string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{
		Code:           code,
		ConstraintName: constraint,
		Message:        "constraint violated",
	})
}

func TestTranslateError(t *testing.T) {
	t.Run("Should map unique name violation to duplicate name conflict", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23505", "product_name_key"),
			conflictContext{Name: "Widget"})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusConflict, zErr.Status())
		assert.Equal(t, apperr.DuplicateNameCode, zErr.Code())
		assert.Contains(t, zErr.Msg(), "Widget")
	})

	t.Run("Should map unique product number violation to duplicate number conflict", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23505", "product_product_number_key"),
			conflictContext{Number: "W-1"})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.DuplicateNumberCode, zErr.Code())
		assert.Contains(t, zErr.Msg(), "W-1")
	})

	t.Run("Should map sales order FK violation to dependent orders conflict", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23503", "sales_order_detail_product_id_fkey"),
			conflictContext{ProductID: 42})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusConflict, zErr.Status())
		assert.Equal(t, apperr.DependentOrdersCode, zErr.Code())
	})

	t.Run("Should map duplicate culture link to conflict", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23505", "product_model_product_description_pkey"),
			conflictContext{Culture: "en"})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.DuplicateCultureCode, zErr.Code())
	})

	t.Run("Should treat category FK violation on delete as category in use", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23503", "product_product_category_id_fkey"),
			conflictContext{CategoryID: 7, CategoryDelete: true})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.CategoryInUseCode, zErr.Code())
	})

	t.Run("Should treat category FK violation on write as missing reference", func(t *testing.T) {
		err := translateError(
			pgConstraintErr("23503", "product_product_category_id_fkey"),
			conflictContext{})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, apperr.MissingReferenceCode, zErr.Code())
	})

	t.Run("Should surface unknown constraints as internal errors with the raw cause", func(t *testing.T) {
		raw := pgConstraintErr("23505", "some_future_constraint")
		err := translateError(raw, conflictContext{})

		var zErr zerror.ZError
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, zerror.StatusInternalServerError, zErr.Status())

		var pgErr *pgconn.PgError
		assert.ErrorAs(t, err, &pgErr, "raw error must stay attached for logging")
	})

	t.Run("Should pass through non-constraint database errors", func(t *testing.T) {
		raw := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
		err := translateError(raw, conflictContext{})
		assert.Equal(t, error(raw), err)
	})

	t.Run("Should pass through nil", func(t *testing.T) {
		assert.NoError(t, translateError(nil, conflictContext{}))
	})
}

func TestNotFound(t *testing.T) {
	t.Run("Should rewrite ErrNoRows to the domain not found", func(t *testing.T) {
		zErr := apperr.NewProductNotFound(5)
		err := notFound(pgx.ErrNoRows, zErr)

		var got zerror.ZError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, zerror.StatusNotFound, got.Status())
		assert.Equal(t, "Product with ID 5 not found", got.Msg())
	})

	t.Run("Should leave other errors alone", func(t *testing.T) {
		raw := errors.New("boom")
		assert.Equal(t, raw, notFound(raw, apperr.NewProductNotFound(5)))
	})
}
