package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
	"github.com/noah-isme/sma-enrollment-intake/pkg/middleware/requestid"
	"github.com/noah-isme/sma-enrollment-intake/pkg/response"
)

// ErrorReporter logs the errors handlers attached to the context. Error level
// entries reach Sentry through the logger core when it is configured.
func ErrorReporter(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		for _, ginErr := range c.Errors {
			appErr := appErrors.FromError(ginErr.Err)
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Value(c)),
				zap.String("code", appErr.Code),
				zap.Error(ginErr.Err))
		}
	}
}

// Recovery answers panics with the generic internal error body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error("panic recovered",
				zap.Any("panic", r),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Value(c)),
				zap.Stack("stack"))
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Failure{
				Success: false,
				Message: appErrors.ErrInternal.Message,
				Error:   appErrors.ErrInternal,
			})
		}()
		c.Next()
	}
}
