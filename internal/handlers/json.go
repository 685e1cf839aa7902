package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	applog "pantry/internal/log"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

// writeMessage emits the uniform {"message": ...} body used by every error
// response and by mutation envelopes without a payload.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeInternalError logs the failure and responds with the generic 500 body
// so driver details never leak to clients.
func writeInternalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	applog.Error(r.Context(), msg, "error", err, "path", r.URL.Path)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody decodes a JSON request body into a field map so handlers can
// distinguish missing fields from mistyped ones.
func decodeBody(r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		return nil, false
	}
	return payload, true
}

// requireString extracts a non-empty trimmed string field, returning the
// enumerated validation message on failure.
func requireString(payload map[string]any, key, label string) (string, string) {
	value, present := payload[key]
	if !present || value == nil {
		return "", label + " is required"
	}
	text, ok := value.(string)
	if !ok {
		return "", label + " must be a string"
	}
	if strings.TrimSpace(text) == "" {
		return "", label + " is required"
	}
	return text, ""
}

// requireNumber extracts a numeric field. JSON numbers always decode as
// float64; anything else is a type violation.
func requireNumber(payload map[string]any, key, label string) (float64, string) {
	value, present := payload[key]
	if !present || value == nil {
		return 0, label + " is required"
	}
	number, ok := value.(float64)
	if !ok {
		return 0, label + " must be a number"
	}
	return number, ""
}

// positiveID converts a JSON number to a row identifier. It must be a whole
// positive value.
func positiveID(number float64) (uint, bool) {
	if number <= 0 || number != float64(uint(number)) {
		return 0, false
	}
	return uint(number), true
}
