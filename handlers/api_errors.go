package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/stellarchive/catalogbackend/apperrors"
)

// APIErrorResponse is the uniform error envelope returned by every route,
// including the routes that render entity pages elsewhere.
type APIErrorResponse struct {
	Success    bool              `json:"success"`
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// WriteAPIError writes the error envelope with the given HTTP status and message.
func WriteAPIError(w http.ResponseWriter, httpStatus int, message string) {
	writeJSON(w, httpStatus, APIErrorResponse{
		Success:    false,
		StatusCode: httpStatus,
		Message:    message,
	})
}

// WriteError maps a service-layer error to its HTTP status and writes the
// envelope. Unrecognized errors become a 500 with a generic message; the
// underlying error is logged, not leaked.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, APIErrorResponse{
			Success:    false,
			StatusCode: http.StatusBadRequest,
			Message:    validationErr.Error(),
			Fields:     validationErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		WriteAPIError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrUnknownEntity):
		WriteAPIError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteAPIError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		WriteAPIError(w, http.StatusForbidden, err.Error())
	default:
		log.Printf("internal error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal server error")
	}
}
