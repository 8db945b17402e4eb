package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory is a node in the category tree. Root categories have a nil
// parent. Category names are unique across the whole tree, not per level.
type ProductCategory struct {
	ProductCategoryID       int32     `json:"product_category_id"`
	ParentProductCategoryID *int32    `json:"parent_product_category_id,omitempty"`
	Name                    string    `json:"name"`
	Rowguid                 uuid.UUID `json:"rowguid"`
	ModifiedDate            time.Time `json:"modified_date"`
}
