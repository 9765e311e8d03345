package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks request bodies against their `validate` struct tags.
var validate = validator.New()

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes an error body of the form {"detail": message}.
func respondError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	respondJSON(w, status, map[string]string{"detail": fmt.Sprintf(format, args...)})
}

// decodeBody decodes the JSON request body into out and validates it.
// On failure it answers 400 and returns false so the handler can return.
func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(out); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: %v", err)
		return false
	}
	return true
}
