package http

import (
	"net/http"

	"github.com/saleslt/catalog/internal/service"
)

type createProductModelRequest struct {
	Name               string  `json:"name" validate:"required,max=50"`
	CatalogDescription *string `json:"catalog_description"`
}

type linkDescriptionRequest struct {
	ProductDescriptionID int32  `json:"product_description_id" validate:"required"`
	Culture              string `json:"culture" validate:"required,max=6"`
}

func (s *Service) listProductModels(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	productModels, err := s.modelSvc.ListProductModels(r.Context(), skip, limit)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, productModels)
}

func (s *Service) getProductModel(w http.ResponseWriter, r *http.Request) {
	modelID, err := pathID(r, "modelID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	detail, err := s.modelSvc.GetProductModel(r.Context(), modelID)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, detail)
}

func (s *Service) createProductModel(w http.ResponseWriter, r *http.Request) {
	var req createProductModelRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	productModel, err := s.modelSvc.CreateProductModel(r.Context(), service.CreateProductModelParams{
		Name:               req.Name,
		CatalogDescription: req.CatalogDescription,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, productModel)
}

func (s *Service) linkDescription(w http.ResponseWriter, r *http.Request) {
	modelID, err := pathID(r, "modelID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	var req linkDescriptionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	link, err := s.modelSvc.LinkDescription(r.Context(), modelID, service.LinkDescriptionParams{
		ProductDescriptionID: req.ProductDescriptionID,
		Culture:              req.Culture,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, link)
}
