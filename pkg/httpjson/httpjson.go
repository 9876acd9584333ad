// Package httpjson writes the plain JSON envelopes the admin API speaks:
// payload objects on success, {"error": "..."} on failure and {} when an
// operation has nothing to report.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type for all responses.
const ContentType = "application/json"

type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v to the response with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteEmpty writes a 200 response with an empty object body,
// acknowledging an operation that returns no payload.
func WriteEmpty(w http.ResponseWriter) {
	Write(w, http.StatusOK, struct{}{})
}

// WriteError writes {"error": message} with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	Write(w, status, errorBody{Error: message})
}

// WriteBadRequest is a convenience for 400 errors.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound is a convenience for 404 errors.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError is a convenience for 500 errors.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
