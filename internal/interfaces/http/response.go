package http

import (
	"encoding/json"
	"net/http"
)

// devMode controls whether internal error text is exposed to clients.
// Set once at startup from APP_ENV.
var devMode bool

// SetDevMode enables detailed error messages in responses.
func SetDevMode(enabled bool) {
	devMode = enabled
}

// envelope is the uniform response shape for every API endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}

// respondInternal hides the real error behind a generic message unless
// dev mode is on.
func respondInternal(w http.ResponseWriter, message string, err error) {
	if devMode && err != nil {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, message)
}

// NotFoundHandler returns the JSON 404 envelope for unmatched routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})
}

// HandleHealth reports liveness.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}
