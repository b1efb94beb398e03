// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"
)

// ErrorHandler writes errors as JSON responses with standardized logging
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Error *StandardError `json:"error"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// WriteHTTPError normalizes err, logs it and writes the JSON error body.
func (h *ErrorHandler) WriteHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	h.logger.Error("request failed", map[string]interface{}{
		"method":        r.Method,
		"path":          r.URL.Path,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})

	if secs, ok := stdErr.Metadata["retryAfterSeconds"].(int); ok && secs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: stdErr})
}

// Normalize ensures we always have a StandardError
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
