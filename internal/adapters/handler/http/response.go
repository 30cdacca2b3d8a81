package http

import (
	"encoding/json"
	"net/http"

	"github.com/foodapp/api/internal/core/domain"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondInternalError hides the underlying failure behind the generic
// domain error; details stay in the server logs.
func respondInternalError(w http.ResponseWriter) {
	respondError(w, http.StatusInternalServerError, domain.ErrInternal.Error())
}
