package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// errorResponse is the envelope for every error the API returns.
type errorResponse struct {
	Timestamp        string            `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, status int, label, message string) {
	writeJSON(w, errorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     label,
		Message:   message,
	}, status)
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, errorResponse{
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Status:           http.StatusBadRequest,
		Error:            "Validation Error",
		Message:          "Input validation failed",
		ValidationErrors: fields,
	}, http.StatusBadRequest)
}
