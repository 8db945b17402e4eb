package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Name and ProductNumber are unique across
// the catalog; the database enforces both, the service only interprets the
// resulting conflicts.
type Product struct {
	ProductID              int32            `json:"product_id"`
	Name                   string           `json:"name"`
	ProductNumber          string           `json:"product_number"`
	Color                  *string          `json:"color,omitempty"`
	StandardCost           decimal.Decimal  `json:"standard_cost"`
	ListPrice              decimal.Decimal  `json:"list_price"`
	Size                   *Size            `json:"size,omitempty"`
	Weight                 *decimal.Decimal `json:"weight,omitempty"`
	SellStartDate          time.Time        `json:"sell_start_date"`
	SellEndDate            *time.Time       `json:"sell_end_date,omitempty"`
	DiscontinuedDate       *time.Time       `json:"discontinued_date,omitempty"`
	ThumbNailPhoto         []byte           `json:"-"`
	ThumbnailPhotoFileName *string          `json:"thumbnail_photo_file_name,omitempty"`
	ProductModelID         *int32           `json:"product_model_id,omitempty"`
	ProductCategoryID      *int32           `json:"product_category_id,omitempty"`
	Rowguid                uuid.UUID        `json:"rowguid"`
	ModifiedDate           time.Time        `json:"modified_date"`
}

// NormalizeWeight rounds a weight to exactly two decimal places using banker's
// rounding. Idempotent: normalizing an already normalized weight is a no-op.
func NormalizeWeight(w decimal.Decimal) decimal.Decimal {
	return w.RoundBank(2)
}
