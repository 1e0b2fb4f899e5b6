// Package respond writes the uniform {success, data, message, count}
// envelope every API endpoint uses.
package respond

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"example.com/mynotes/internal/errs"
)

// Envelope is the wire format shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// Data writes a success envelope with a payload.
func Data(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// List writes a success envelope with a payload and its item count.
func List(w http.ResponseWriter, status int, data any, count int) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Count: &count})
}

// Err maps an error to its HTTP status and writes a failure envelope.
// Untyped errors are logged and surfaced as a generic message.
func Err(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	if code == errs.Internal {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, errs.HTTPStatus(code), Envelope{Success: false, Message: errs.MessageOf(err)})
}

// Fail writes a failure envelope with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
