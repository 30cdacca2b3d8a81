package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Active      *bool  `json:"active"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		respondInternalError(w)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	category, err := h.service.Create(r.Context(), ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	category, err := h.service.Update(r.Context(), id, ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}

func (h *CategoryHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*categoryRequest, bool) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return nil, false
	}
	return &req, true
}
