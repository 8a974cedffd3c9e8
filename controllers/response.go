package controllers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError responds with a JSON message body. Internal error detail
// stays in the log, never in the response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// noopInsert is the response for an idempotent insert that was skipped
// because the document already existed.
func noopInsert(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    message,
		"insertedId": nil,
	})
}
