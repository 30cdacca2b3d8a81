package http

import (
	"errors"
	"net/http"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(ClaimsKey).(*domain.AccessClaims)
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	user, err := h.service.GetByUsername(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
