// Package errors provides standardized error handling for the chat HTTP surface.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequestBody    ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeMethodNotAllowed      ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited           ErrorCode = "RATE_LIMITED"
	ErrCodeRateLimitCheckFailed  ErrorCode = "RATE_LIMIT_CHECK_FAILED"
	ErrCodeRedisConnectionFailed ErrorCode = "REDIS_CONNECTION_FAILED"
	ErrCodeConfigInvalid         ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewInvalidRequestBodyError creates a non-retryable request body error.
func NewInvalidRequestBodyError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequestBody,
		Message:   "Request body is not a valid chat message",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMethodNotAllowedError creates a non-retryable method error.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a retryable throttling error.
func NewRateLimitedError(key string, retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many messages, please slow down",
		Details:   fmt.Sprintf("client: %s", key),
		Retryable: true,
		Metadata: map[string]interface{}{
			"retryAfterSeconds": int(retryAfter.Seconds()),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitCheckFailedError creates a retryable limiter backend error.
func NewRateLimitCheckFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimitCheckFailed,
		Message:   "Rate limit backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRedisConnectionFailedError creates a retryable Redis connection error.
func NewRedisConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRedisConnectionFailed,
		Message:   "Redis connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigInvalidError creates a non-retryable configuration error.
func NewConfigInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Invalid configuration",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeRateLimitCheckFailed, ErrCodeRedisConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "RATE_LIMIT"):
		return "THROTTLING"
	case strings.Contains(codeStr, "REDIS"):
		return "CACHE"
	case strings.Contains(codeStr, "REQUEST") || strings.Contains(codeStr, "METHOD"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}
