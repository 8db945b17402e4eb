package apperr

import (
	"fmt"

	"github.com/saleslt/catalog/pkg/zerror"
)

const (
	ValidationErrorCode     = "VALIDATION_FAILED"
	InternalErrorCode       = "INTERNAL_ERROR"
	StoreUnavailableCode    = "STORE_UNAVAILABLE"
	ProductNotFoundCode     = "PRODUCT_NOT_FOUND"
	DuplicateNameCode       = "DUPLICATE_PRODUCT_NAME"
	DuplicateNumberCode     = "DUPLICATE_PRODUCT_NUMBER"
	DependentOrdersCode     = "PRODUCT_HAS_DEPENDENT_ORDERS"
	CategoryNotFoundCode    = "CATEGORY_NOT_FOUND"
	DuplicateCategoryCode   = "DUPLICATE_CATEGORY_NAME"
	CategoryInUseCode       = "CATEGORY_IN_USE"
	ModelNotFoundCode       = "MODEL_NOT_FOUND"
	DescriptionNotFoundCode = "DESCRIPTION_NOT_FOUND"
	DuplicateCultureCode    = "DUPLICATE_CULTURE_LINK"
	MissingReferenceCode    = "MISSING_REFERENCE"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// UnknownConstraintErr covers constraint violations the translator does not
	// recognize. Logged with full context at the call site, reported generically.
	UnknownConstraintErr = zerror.NewInternalServerError(InternalErrorCode, "an unknown error occurred")

	// StoreUnavailableErr is returned when the database cannot be reached at all.
	StoreUnavailableErr = zerror.NewServiceUnavailable(StoreUnavailableCode, "catalog store is unavailable")
)

func NewProductNotFound(productID int32) zerror.ZError {
	return zerror.NewNotFound(ProductNotFoundCode,
		fmt.Sprintf("Product with ID %d not found", productID))
}

func NewDuplicateName(name string) zerror.ZError {
	return zerror.NewConflict(DuplicateNameCode,
		fmt.Sprintf("a product named %q already exists", name))
}

func NewDuplicateNumber(number string) zerror.ZError {
	return zerror.NewConflict(DuplicateNumberCode,
		fmt.Sprintf("a product with number %q already exists", number))
}

func NewHasDependentOrders(productID int32) zerror.ZError {
	return zerror.NewConflict(DependentOrdersCode,
		fmt.Sprintf("product %d is referenced by existing sales order lines", productID))
}

func NewCategoryNotFound(categoryID int32) zerror.ZError {
	return zerror.NewNotFound(CategoryNotFoundCode,
		fmt.Sprintf("Category with ID %d not found", categoryID))
}

func NewDuplicateCategoryName(name string) zerror.ZError {
	return zerror.NewConflict(DuplicateCategoryCode,
		fmt.Sprintf("a category named %q already exists", name))
}

func NewCategoryInUse(categoryID int32) zerror.ZError {
	return zerror.NewConflict(CategoryInUseCode,
		fmt.Sprintf("category %d is referenced by products or child categories", categoryID))
}

func NewModelNotFound(modelID int32) zerror.ZError {
	return zerror.NewNotFound(ModelNotFoundCode,
		fmt.Sprintf("Product model with ID %d not found", modelID))
}

func NewDescriptionNotFound(descriptionID int32) zerror.ZError {
	return zerror.NewNotFound(DescriptionNotFoundCode,
		fmt.Sprintf("Product description with ID %d not found", descriptionID))
}

func NewDuplicateCultureLink(culture string) zerror.ZError {
	return zerror.NewConflict(DuplicateCultureCode,
		fmt.Sprintf("model already has a description for culture %q", culture))
}

func NewMissingReference(field string) zerror.ZError {
	return zerror.NewConflict(MissingReferenceCode,
		fmt.Sprintf("%s references a row that does not exist", field))
}
