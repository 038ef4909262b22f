package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusCreated, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service sentinels onto HTTP statuses. Internal errors
// are attached to the gin context so the request logger records the cause.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		RespondError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrShareTokenExhausted):
		_ = c.Error(err)
		RespondError(c, http.StatusServiceUnavailable, "Could not create share link, please retry")
	case errors.Is(err, ErrFeatureDisabled):
		RespondError(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, ErrDatabaseError):
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
