// Package response writes the JSON bodies shared by every API endpoint.
package response

import (
	"bytes"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"
)

// ErrorResponse is the body of every non-2xx API response. Details carries
// the underlying error text or, for validation failures, the field map.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON writes data as JSON with the given status. A nil data writes
// the status only. Data that cannot be encoded is logged and answered with a
// 500 instead, since the status has not been sent yet.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		log.Printf("failed to encode JSON response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// RespondError writes an ErrorResponse.
//
// Example:
//
//	response.RespondError(w, http.StatusUnprocessableEntity, "failed to value equity", err.Error())
//	response.RespondError(w, http.StatusBadRequest, "validation failed", map[string]string{"ticker": "ticker is required"})
func RespondError(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// RespondTooManyRequests writes a 429 with a Retry-After header of retryAfter
// rounded up to whole seconds, at least 1.
func RespondTooManyRequests(w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	RespondError(w, http.StatusTooManyRequests, "rate limit exceeded", "")
}
