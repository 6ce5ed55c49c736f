// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const encodeFailure = `{"error":"failed to encode response"}`

// RespondJSON writes data as a JSON body with the given status code. The body
// is encoded before the header is written, so an unencodable value becomes a
// 500 instead of a success status with a truncated body.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body = []byte(encodeFailure)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// RespondError logs err and writes it as {"error": "..."} with the given
// status code. Server errors log at Error, client errors at Warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
	}

	RespondJSON(w, status, map[string]string{"error": err.Error()})
}
