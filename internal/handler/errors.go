package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhitrip/trip-catalog/internal/domain"
)

// Error codes carried in the "code" field of every error body.
const (
	codeBadRequest   = "bad_request"
	codeNotFound     = "not_found"
	codeValidation   = "validation_error"
	codeConflict     = "duplicate_slug"
	codeUnauthorized = "unauthorized"
	codeTooLarge     = "payload_too_large"
	codeUnavailable  = "unavailable"
	codeInternal     = "internal_error"
)

// ErrorDetail is the body of a failed request: {"error":{"code","message"}}.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// fail maps a service or catalog error onto the HTTP error taxonomy.
// Anything that is not a domain sentinel is logged and reported as a 500
// without leaking its text.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, codeConflict, unwrapMessage(err, domain.ErrDuplicateSlug))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrUnavailable):
		s.log.WarnContext(r.Context(), "remote store unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, domain.ErrUnavailable.Error())
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, http.StatusText(http.StatusInternalServerError))
	}
}

// notFound writes a 404 whose message names what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, codeNotFound, message)
}

// unwrapMessage extracts the human-readable detail that follows a wrapped
// sentinel, e.g.
// "service.TripAdminService.Create: validation error: title: is required"
// becomes "title: is required". With no detail the sentinel's own text is
// returned.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	tag := sentinel.Error() + ": "
	if i := strings.Index(msg, tag); i >= 0 {
		return msg[i+len(tag):]
	}
	return sentinel.Error()
}

// decodeJSON reads a single JSON object from the request body into v.
// On failure it writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, codeBadRequest, "request body is required")
	default:
		writeError(w, http.StatusBadRequest, codeBadRequest, "malformed JSON: "+err.Error())
	}
	return false
}
