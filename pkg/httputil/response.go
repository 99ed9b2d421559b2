// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding/decoding, and request parsing.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/SuDelk/ClientLine-Backend/pkg/apperrors"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteErrorMessage writes a JSON error response with a custom message
func WriteErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// WriteCreated writes a successful creation response (201 Created) with JSON data
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, data)
}

// WriteSuccess writes a successful response (200 OK) with JSON data
func WriteSuccess(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a bad request error (400)
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusBadRequest, message)
}

// StatusForKind maps a classified error kind to its HTTP status code.
func StatusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicateEmail, apperrors.KindHasDependents:
		return http.StatusConflict
	case apperrors.KindInvalidReference:
		return http.StatusUnprocessableEntity
	case apperrors.KindInvalidParameters, apperrors.KindInvalidData, apperrors.KindInvalidFormat:
		return http.StatusBadRequest
	case apperrors.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteClassifiedError writes the caller-visible form of a classified error.
// Internal kinds get a generic message so store detail never leaks.
func WriteClassifiedError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	status := StatusForKind(kind)
	message := err.Error()
	if kind == apperrors.KindInternal {
		message = "internal server error"
	}
	WriteErrorMessage(w, status, message)
}
