// Package response provides helpers for writing HTTP responses.
//
// Most endpoints answer with JSON. The student-creation and subject
// summary endpoints answer with plain text (a record's display string,
// a validation message, a summary sentence), so both forms live here.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aanand-mishra/students-service/internal/apperr"
)

// Response is the standard envelope returned for JSON error cases:
//
//	{ "status": "error", "error": "storage save student: disk full" }
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MsgSubjectsUnavailable is sent when the peer subjects service fails.
const MsgSubjectsUnavailable = "subjects service unavailable"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteText writes body as text/plain with the given status code. The
// body is written exactly as given, with no trailing newline.
func WriteText(w http.ResponseWriter, status int, body string) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write([]byte(body))
	return err
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// OK is the body of a bare success, e.g. the health check.
func OK() Response {
	return Response{Status: StatusOK}
}

// StatusFor maps an error from the service layer to an HTTP status:
//
//	*apperr.ValidationError                → 400
//	*apperr.UpstreamError (subjects peer)  → 503
//	anything else, storage included        → 500
func StatusFor(err error) int {
	var upstream *apperr.UpstreamError
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.As(err, &upstream) && upstream.Component == apperr.ComponentSubjects:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
