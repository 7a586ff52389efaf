package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/orbit/pkg/errors"
)

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidParams, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNodeNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrCodeNoRoots, errors.ErrCodeNoPosition, errors.ErrCodeNoChildren:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeBackend:
		return http.StatusServiceUnavailable
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an ErrorResponse with the status code maps to.
func writeError(w http.ResponseWriter, r *http.Request, code errors.Code, message string) {
	writeJSON(w, StatusFor(code), ErrorResponse{
		RequestID: RequestIDFrom(r.Context()),
		Error:     ErrorBody{Code: string(code), Message: message},
	})
}

// writeCodedError writes err with the status its code maps to. Errors without
// a code are reported as internal errors without their details.
func writeCodedError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		writeError(w, r, errors.ErrCodeInternal, "internal error")
		return
	}
	writeError(w, r, code, errors.UserMessage(err))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.ErrCodeNotFound, "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errors.ErrCodeMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}
