package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the standard API response wrapper used across handlers.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success writes a success envelope with optional data.
func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Status: "success", Message: message, Data: data})
}

// Error writes an error envelope carrying only a message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Status: "error", Message: message})
}

// FieldErrors writes an error envelope with per-field violations. Every
// collected violation is returned, never just the first.
func FieldErrors(w http.ResponseWriter, status int, message string, errs any) {
	JSON(w, status, Envelope{Status: "error", Message: message, Errors: errs})
}

// JSON writes an arbitrary payload. Handlers that need extra top-level
// fields (e.g. total_users) build their own payload and come through here.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}
