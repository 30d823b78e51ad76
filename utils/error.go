package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Kind classifies a service failure so handlers can map it to an HTTP
// status in one place instead of per-handler translation.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindPolicy
	KindInternal
)

// ServiceError is the error type returned by all service layers.
type ServiceError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func NewValidationError(msg string) error {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &ServiceError{Kind: KindUnauthorized, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &ServiceError{Kind: KindForbidden, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

// NewPolicyError reports a business-rule violation (capacity exceeded,
// cancellation window, delete-before-cancel).
func NewPolicyError(msg string) error {
	return &ServiceError{Kind: KindPolicy, Message: msg}
}

func NewInternalError(msg string, err error) error {
	return &ServiceError{Kind: KindInternal, Message: msg, Err: err}
}

// HTTPStatus maps an error to its HTTP status code. Unclassified errors
// are treated as internal.
func HTTPStatus(err error) int {
	var se *ServiceError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Kind {
	case KindValidation, KindPolicy:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the standardized JSON error body for err.
// Internal errors are logged with their cause but never echoed to the
// client.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.Error(err))
		c.JSON(status, ErrorResponse{Message: "Internal Server Error"})
		return
	}
	var se *ServiceError
	errors.As(err, &se)
	c.JSON(status, ErrorResponse{Message: se.Message})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
