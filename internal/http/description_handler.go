package http

import (
	"net/http"

	"github.com/saleslt/catalog/internal/service"
)

type createDescriptionRequest struct {
	Description string `json:"description" validate:"required,max=400"`
}

func (s *Service) listDescriptions(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := paginationParams(r)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	descriptions, err := s.descriptionSvc.ListDescriptions(r.Context(), skip, limit)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, descriptions)
}

func (s *Service) getDescription(w http.ResponseWriter, r *http.Request) {
	descriptionID, err := pathID(r, "descriptionID")
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	description, err := s.descriptionSvc.GetDescription(r.Context(), descriptionID)
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, description)
}

func (s *Service) createDescription(w http.ResponseWriter, r *http.Request) {
	var req createDescriptionRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	description, err := s.descriptionSvc.CreateDescription(r.Context(), service.CreateDescriptionParams{
		Description: req.Description,
	})
	if err != nil {
		s.handleResponseError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusCreated, description)
}
