package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saleslt/catalog/internal/model"
	"github.com/saleslt/catalog/internal/service"
)

// createProductRequest mirrors the writable product fields. ThumbNailPhoto is
// base64 in JSON and never comes back on reads.
type createProductRequest struct {
	Name                   string           `json:"name" validate:"required,max=100"`
	ProductNumber          string           `json:"product_number" validate:"required,max=50"`
	Color                  *string          `json:"color" validate:"omitempty,max=30"`
	StandardCost           *decimal.Decimal `json:"standard_cost" validate:"required"`
	ListPrice              *decimal.Decimal `json:"list_price" validate:"required"`
	Size                   *model.Size      `json:"size" validate:"omitempty,enum"`
	Weight                 *decimal.Decimal `json:"weight"`
	SellStartDate          *time.Time       `json:"sell_start_date" validate:"required"`
	SellEndDate            *time.Time       `json:"sell_end_date"`
	DiscontinuedDate       *time.Time       `json:"discontinued_date"`
	ThumbNailPhoto         []byte           `json:"thumbnail_photo"`
	ThumbnailPhotoFileName *string          `json:"thumbnail_photo_file_name" validate:"omitempty,max=100"`
	ProductModelID         *int32           `json:"product_model_id"`
	ProductCategoryID      *int32           `json:"product_category_id"`
}

// updateProductRequest is a partial payload: absent fields stay unchanged.
// Only the fields that are present get validated.
type updateProductRequest struct {
	Name                   *string          `json:"name" validate:"omitempty,max=100"`
	ProductNumber          *string          `json:"product_number" validate:"omitempty,max=50"`
	Color                  *string          `json:"color" validate:"omitempty,max=30"`
	StandardCost           *decimal.Decimal `json:"standard_cost"`
	ListPrice              *decimal.Decimal `json:"list_price"`
	Size                   *model.Size      `json:"size" validate:"omitempty,enum"`
	Weight                 *decimal.Decimal `json:"weight"`
	SellStartDate          *time.Time       `json:"sell_start_date"`
	SellEndDate            *time.Time       `json:"sell_end_date"`
	DiscontinuedDate       *time.Time       `json:"discontinued_date"`
	ThumbNailPhoto         []byte           `json:"thumbnail_photo"`
	ThumbnailPhotoFileName *string          `json:"thumbnail_photo_file_name" validate:"omitempty,max=100"`
	ProductModelID         *int32           `json:"product_model_id"`
	ProductCategoryID      *int32           `json:"product_category_id"`
}

func (s *Service) listProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	products, err := s.productSvc.ListProducts(r.Context(), skip, limit)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, products)
}

func (s *Service) getProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	product, err := s.productSvc.GetProduct(r.Context(), productID)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, product)
}

func (s *Service) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	product, err := s.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:                   req.Name,
		ProductNumber:          req.ProductNumber,
		Color:                  req.Color,
		StandardCost:           *req.StandardCost,
		ListPrice:              *req.ListPrice,
		Size:                   req.Size,
		Weight:                 req.Weight,
		SellStartDate:          *req.SellStartDate,
		SellEndDate:            req.SellEndDate,
		DiscontinuedDate:       req.DiscontinuedDate,
		ThumbNailPhoto:         req.ThumbNailPhoto,
		ThumbnailPhotoFileName: req.ThumbnailPhotoFileName,
		ProductModelID:         req.ProductModelID,
		ProductCategoryID:      req.ProductCategoryID,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, product)
}

func (s *Service) updateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	product, err := s.productSvc.UpdateProduct(r.Context(), productID, service.UpdateProductParams{
		Name:                   req.Name,
		ProductNumber:          req.ProductNumber,
		Color:                  req.Color,
		StandardCost:           req.StandardCost,
		ListPrice:              req.ListPrice,
		Size:                   req.Size,
		Weight:                 req.Weight,
		SellStartDate:          req.SellStartDate,
		SellEndDate:            req.SellEndDate,
		DiscontinuedDate:       req.DiscontinuedDate,
		ThumbNailPhoto:         req.ThumbNailPhoto,
		ThumbnailPhotoFileName: req.ThumbnailPhotoFileName,
		ProductModelID:         req.ProductModelID,
		ProductCategoryID:      req.ProductCategoryID,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, product)
}

func (s *Service) deleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	if err := s.productSvc.DeleteProduct(r.Context(), productID); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
