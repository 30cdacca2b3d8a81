package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type fieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Status  int          `json:"status"`
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
}

// respondValidationError translates validator failures into per-field
// messages instead of echoing the library's internal error text.
func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	fields := make([]fieldError, len(validationErrors))
	for i, fe := range validationErrors {
		fields[i] = fieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: msgForTag(fe.Tag(), fe.Param()),
		}
	}

	respondJSON(w, http.StatusBadRequest, validationErrorResponse{
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Message: "validation failed",
		Errors:  fields,
	})
}

func msgForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Must be at least %s characters long", param)
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", param)
	case "gt":
		return fmt.Sprintf("Must be greater than %s", param)
	case "gte":
		return fmt.Sprintf("Must be at least %s", param)
	default:
		return fmt.Sprintf("Failed validation on rule: %s", tag)
	}
}
