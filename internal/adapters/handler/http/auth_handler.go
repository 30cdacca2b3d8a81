package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/foodapp/api/internal/core/domain"
	"github.com/foodapp/api/internal/core/ports"
)

type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
			return
		}
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.service.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondInternalError(w)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpiredRefreshToken):
			// Distinct status so clients can redirect to a full login.
			respondError(w, http.StatusForbidden, domain.ErrExpiredRefreshToken.Error())
		case errors.Is(err, domain.ErrInvalidRefreshToken):
			respondError(w, http.StatusUnauthorized, domain.ErrInvalidRefreshToken.Error())
		default:
			respondInternalError(w)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		respondInternalError(w)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	// Recovery mail delivery is mocked; the response never reveals whether
	// the address exists.
	respondJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("If the email '%s' is registered, a recovery link has been sent.", email),
	})
}
