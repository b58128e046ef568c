package auth

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// sessionResponse is the session check contract. Role is null rather than
// omitted when unauthenticated so clients can rely on the key being there.
type sessionResponse struct {
	Authenticated bool    `json:"authenticated"`
	Role          *string `json:"role"`
	UserID        string  `json:"userId,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
