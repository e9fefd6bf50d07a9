package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/shared/apperror"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page  int   `json:"page,omitempty"`
	Limit int   `json:"limit,omitempty"`
	Total int64 `json:"total,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// FromError is the single translation point from typed errors to HTTP
// responses. Validation errors carry per-field details; unclassified
// errors are logged and reported generically.
func FromError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation error", verrs)
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind == apperror.KindInternal {
			log.Error().
				Err(appErr.Unwrap()).
				Str("request_id", c.GetString("request_id")).
				Msg("internal error")
		}
		writeError(c, appErr.HTTPStatus(), appErr.Code(), appErr.Message, appErr.Details)
		return
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("unclassified error")
	writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}

func writeError(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Convenience writers used by middleware.

func Unauthorized(c *gin.Context, message string) {
	writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func Forbidden(c *gin.Context, message string) {
	writeError(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}
