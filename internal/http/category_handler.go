package http

import (
	"net/http"

	"github.com/saleslt/catalog/internal/service"
)

type createCategoryRequest struct {
	Name                    string `json:"name" validate:"required,max=50"`
	ParentProductCategoryID *int32 `json:"parent_product_category_id"`
}

type updateCategoryRequest struct {
	Name                    *string `json:"name" validate:"omitempty,max=50"`
	ParentProductCategoryID *int32  `json:"parent_product_category_id"`
}

func (s *Service) listCategories(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	categories, err := s.categorySvc.ListCategories(r.Context(), skip, limit)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, categories)
}

func (s *Service) getCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	category, err := s.categorySvc.GetCategory(r.Context(), categoryID)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, category)
}

func (s *Service) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	category, err := s.categorySvc.CreateCategory(r.Context(), service.CreateCategoryParams{
		Name:                    req.Name,
		ParentProductCategoryID: req.ParentProductCategoryID,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, category)
}

func (s *Service) updateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	var req updateCategoryRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	category, err := s.categorySvc.UpdateCategory(r.Context(), categoryID, service.UpdateCategoryParams{
		Name:                    req.Name,
		ParentProductCategoryID: req.ParentProductCategoryID,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, category)
}

func (s *Service) deleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	if err := s.categorySvc.DeleteCategory(r.Context(), categoryID); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
