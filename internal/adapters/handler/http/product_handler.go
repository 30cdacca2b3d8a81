package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

type productRequest struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" validate:"required"`
	ImageURL    string      `json:"imageUrl"`
	Stock       *int        `json:"stock" validate:"omitempty,gte=0"`
	Active      *bool       `json:"active"`
	CategoryID  uuid.UUID   `json:"categoryId" validate:"required"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.List(r.Context(), pageInput(r))
	if err != nil {
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	page, err := h.service.ListByCategory(r.Context(), categoryID, pageInput(r))
	if err != nil {
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	page, err := h.service.Search(r.Context(), keyword, pageInput(r))
	if err != nil {
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrCategoryNotFound):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondInternalError(w)
		}
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func (h *ProductHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (*productRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return nil, false
	}
	if price, err := req.Price.Float64(); err != nil || price <= 0 {
		respondError(w, http.StatusBadRequest, "price must be a positive number")
		return nil, false
	}
	return &req, true
}

func (req *productRequest) toInput() ports.ProductInput {
	return ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Active:      req.Active,
		CategoryID:  req.CategoryID,
	}
}

func pageInput(r *http.Request) ports.PageInput {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return ports.PageInput{
		Page:    page,
		Size:    size,
		SortBy:  q.Get("sortBy"),
		SortDir: q.Get("sortDir"),
	}
}
