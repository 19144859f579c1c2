package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondError writes the error envelope every failure path uses:
// {"error": msg} with 400 for validation/conflict, 401 auth, 404 not
// found, 500 otherwise.
func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// notFoundOr500 maps an ownership-scoped lookup miss to 404 and anything
// else to 500. Lookups under another owner's id also land here, on
// purpose: absence, not 403.
func notFoundOr500(w http.ResponseWriter, err error, entity string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusNotFound, entity+" not found")
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
