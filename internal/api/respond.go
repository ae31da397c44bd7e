// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON envelope for failed requests: a short message
// for display plus the underlying detail for optional expanded views.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, status int, message, detail string) {
	respondWithJSON(w, status, errorResponse{Error: message, Detail: detail})
}
