package handler

import (
	"errors"
	"net/http"

	"github.com/userbase/userbase-server/internal/model"
)

type validationResponse struct {
	Error      string                 `json:"error"`
	Violations []model.FieldViolation `json:"violations"`
}

func handleError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:      "validation failed",
			Violations: validationErr.Violations,
		})
		return
	}

	var filterErr *model.InvalidFilterError
	if errors.As(err, &filterErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid filter", Detail: filterErr.Error()})
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "user not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
