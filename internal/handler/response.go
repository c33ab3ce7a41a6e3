package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"auth-api/internal/service"
)

// Response is the uniform JSON envelope every endpoint returns.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
}

func writeResponse(writer http.ResponseWriter, status int, message string, data interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(&Response{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// writeError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage or system fault and surfaces as 500,
// never as an authentication outcome.
func writeError(writer http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeResponse(writer, http.StatusNotFound, service.ErrUserNotFound.Error(), nil)
	case errors.Is(err, service.ErrTokenNotFound):
		writeResponse(writer, http.StatusNotFound, service.ErrTokenNotFound.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeResponse(writer, http.StatusUnauthorized, service.ErrInvalidCredentials.Error(), nil)
	case errors.Is(err, service.ErrTokenRevoked):
		writeResponse(writer, http.StatusUnauthorized, service.ErrTokenRevoked.Error(), nil)
	case errors.Is(err, service.ErrTokenInvalid):
		writeResponse(writer, http.StatusUnauthorized, service.ErrTokenInvalid.Error(), nil)
	case errors.Is(err, service.ErrEmailExists):
		writeResponse(writer, http.StatusBadRequest, service.ErrEmailExists.Error(), nil)
	default:
		writeResponse(writer, http.StatusInternalServerError, "internal server error", nil)
	}
}
