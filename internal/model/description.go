package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductDescription is free text reusable across models and cultures.
type ProductDescription struct {
	ProductDescriptionID int32     `json:"product_description_id"`
	Description          string    `json:"description"`
	Rowguid              uuid.UUID `json:"rowguid"`
	ModifiedDate         time.Time `json:"modified_date"`
}
