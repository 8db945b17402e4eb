package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel groups products sharing a design. Descriptions attach through
// ProductModelDescriptionLink, one per culture.
type ProductModel struct {
	ProductModelID     int32     `json:"product_model_id"`
	Name               string    `json:"name"`
	CatalogDescription *string   `json:"catalog_description,omitempty"`
	Rowguid            uuid.UUID `json:"rowguid"`
	ModifiedDate       time.Time `json:"modified_date"`
}

// ProductModelDescriptionLink joins a model to a description under a culture.
// The (model, description, culture) triple is the composite identity.
type ProductModelDescriptionLink struct {
	ProductModelID       int32     `json:"product_model_id"`
	ProductDescriptionID int32     `json:"product_description_id"`
	Culture              string    `json:"culture"`
	Rowguid              uuid.UUID `json:"rowguid"`
	ModifiedDate         time.Time `json:"modified_date"`
}
