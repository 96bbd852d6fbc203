package util

import (
	"net/http"

	"mindclass_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with. Code repeats the
// HTTP status so clients that only see the body can still branch on it.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func write(c *gin.Context, status int, message string, data any) {
	if message == "" {
		message = http.StatusText(status)
	}
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data any) {
	write(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data any) {
	write(c, http.StatusCreated, "created", data)
}

// Error answers with status and no payload. An empty message falls back to
// the status text.
func Error(c *gin.Context, status int, message string) {
	write(c, status, message, nil)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "")
}

// LogInternalError records err and hides it behind a bare 500.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	Error(c, http.StatusInternalServerError, "")
}
