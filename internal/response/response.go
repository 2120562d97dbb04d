// Package response renders every handler outcome into the API's uniform
// envelope. Success bodies are {data, message, status_code, pagination?};
// error bodies are {error: {message, code, details}, status_code}. The
// transport status code always matches the envelope's status_code, so
// clients can rely on either.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/logger"
	"trashapp/internal/pagination"
)

// Envelope is the success response shape.
type Envelope struct {
	Data       interface{}          `json:"data"`
	Message    string               `json:"message"`
	StatusCode int                  `json:"status_code"`
	Pagination *pagination.Metadata `json:"pagination,omitempty"`
}

// ErrorDetail is the inner error object of an error response.
type ErrorDetail struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

// ErrorEnvelope is the error response shape.
type ErrorEnvelope struct {
	Error      ErrorDetail `json:"error"`
	StatusCode int         `json:"status_code"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{Data: data, Message: message, StatusCode: http.StatusOK})
}

// SuccessPaginated writes a 200 envelope with pagination metadata.
func SuccessPaginated(c *gin.Context, data interface{}, message string, meta pagination.Metadata) {
	c.JSON(http.StatusOK, Envelope{Data: data, Message: message, StatusCode: http.StatusOK, Pagination: &meta})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Envelope{Data: data, Message: message, StatusCode: http.StatusCreated})
}

// Error writes an error envelope. AppErrors keep their code, message,
// details, and status; anything else is logged and collapsed into a
// generic 500 so no internal detail reaches the client.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		writeError(c, appErr)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	writeError(c, apperrors.ErrInternalServer)
}

// ValidationError writes a 422 envelope with per-field messages.
func ValidationError(c *gin.Context, fieldErrors map[string]string) {
	writeError(c, apperrors.ErrValidation.WithDetails(fieldErrors))
}

// NotFound writes a 404 envelope naming the missing resource.
func NotFound(c *gin.Context, resource string) {
	writeError(c, apperrors.ErrNotFound.WithMessage(resource+" not found"))
}

// Unauthorized writes a 401 envelope.
func Unauthorized(c *gin.Context, message string) {
	writeError(c, apperrors.ErrUnauthorized.WithMessage(message))
}

// Forbidden writes a 403 envelope.
func Forbidden(c *gin.Context, message string) {
	writeError(c, apperrors.ErrForbidden.WithMessage(message))
}

func writeError(c *gin.Context, appErr *apperrors.AppError) {
	details := appErr.Details
	if details == nil {
		details = map[string]string{}
	}
	c.JSON(appErr.StatusCode, ErrorEnvelope{
		Error: ErrorDetail{
			Message: appErr.Message,
			Code:    appErr.Code,
			Details: details,
		},
		StatusCode: appErr.StatusCode,
	})
}
