package repository

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/saleslt/catalog/internal/apperr"
	"github.com/saleslt/catalog/pkg/zerror"
)

// conflictContext carries the request values needed to phrase a conflict.
// Only the fields relevant to the failing operation are set.
type conflictContext struct {
	ProductID      int32
	Name           string
	Number         string
	CategoryID     int32
	CategoryDelete bool
	Culture        string
}

// conflictByConstraint is the single place where database constraint names are
// matched. Matching on constraint identifiers is fragile; keep every match
// string in this table and nowhere else.
var conflictByConstraint = map[string]func(cc conflictContext) zerror.ZError{
	"product_name_key": func(cc conflictContext) zerror.ZError {
		return apperr.NewDuplicateName(cc.Name)
	},
	"product_product_number_key": func(cc conflictContext) zerror.ZError {
		return apperr.NewDuplicateNumber(cc.Number)
	},
	"product_category_name_key": func(cc conflictContext) zerror.ZError {
		return apperr.NewDuplicateCategoryName(cc.Name)
	},
	"sales_order_detail_product_id_fkey": func(cc conflictContext) zerror.ZError {
		return apperr.NewHasDependentOrders(cc.ProductID)
	},
	"product_model_product_description_pkey": func(cc conflictContext) zerror.ZError {
		return apperr.NewDuplicateCultureLink(cc.Culture)
	},
	"product_category_parent_fkey": func(cc conflictContext) zerror.ZError {
		if cc.CategoryDelete {
			return apperr.NewCategoryInUse(cc.CategoryID)
		}
		return apperr.NewMissingReference("parent_product_category_id")
	},
	"product_product_category_id_fkey": func(cc conflictContext) zerror.ZError {
		if cc.CategoryDelete {
			return apperr.NewCategoryInUse(cc.CategoryID)
		}
		return apperr.NewMissingReference("product_category_id")
	},
	"product_product_model_id_fkey": func(cc conflictContext) zerror.ZError {
		return apperr.NewMissingReference("product_model_id")
	},
	"pmpd_product_model_id_fkey": func(cc conflictContext) zerror.ZError {
		return apperr.NewMissingReference("product_model_id")
	},
	"pmpd_product_description_id_fkey": func(cc conflictContext) zerror.ZError {
		return apperr.NewMissingReference("product_description_id")
	},
}

// translateError converts a persistence failure into a domain error.
//
// Known constraint violations become precise conflicts. Unknown constraint
// violations and reachability failures become apperr.UnknownConstraintErr and
// apperr.StoreUnavailableErr respectively, both carrying the raw error as
// parent so callers can log it. Everything else passes through unchanged.
func translateError(err error, cc conflictContext) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 23, integrity constraint violation.
		if strings.HasPrefix(pgErr.Code, "23") {
			if toConflict, ok := conflictByConstraint[pgErr.ConstraintName]; ok {
				return toConflict(cc).WrapParent(err)
			}
			return apperr.UnknownConstraintErr.WrapParent(err)
		}
		return err
	}

	if isUnreachable(err) {
		return apperr.StoreUnavailableErr.WrapParent(err)
	}

	return err
}

// notFound rewrites pgx.ErrNoRows into the given domain error.
func notFound(err error, zErr zerror.ZError) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return zErr
	}
	return err
}

func isUnreachable(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
