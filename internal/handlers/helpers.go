package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "trashapp/internal/errors"
	"trashapp/internal/middleware"
	"trashapp/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// parseUUIDParam validates a UUID path parameter. A malformed ID maps to
// the same NOT_FOUND the lookup itself would produce, so the ID space
// stays unguessable.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parseUUIDParam(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.ErrNotFound
	}
	return id, nil
}

// bindJSON binds the request body and converts binding failures into the
// 422 validation envelope with per-field messages.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperrors.ErrValidation.WithDetails(validationDetails(err))
	}
	return nil
}

// validationDetails flattens validator errors into a field→message map.
// Non-validator errors (malformed JSON, type mismatches) collapse into a
// single body entry.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["body"] = "Invalid request body"
		return details
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = field + " is required"
		case "email":
			details[field] = field + " must be a valid email address"
		case "min":
			details[field] = field + " must be at least " + fe.Param() + " characters"
		case "max":
			details[field] = field + " must be at most " + fe.Param() + " characters"
		case "gte":
			details[field] = field + " must be at least " + fe.Param()
		case "lte":
			details[field] = field + " must be at most " + fe.Param()
		case "oneof", "waste_type", "pickup_time", "pickup_status", "frequency", "user_role":
			details[field] = field + " has an invalid value"
		default:
			details[field] = field + " is invalid"
		}
	}
	return details
}
