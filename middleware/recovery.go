package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/brandworks/crm-api/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into a 500 envelope. The stack trace is logged and,
// when ExposeErrorStack is set, returned in error.stack.
func Recovery(cfg *config.Config, zaplog *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			stack := string(debug.Stack())
			zaplog.Error("recovered from panic",
				zap.Any("panic", recovered),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("stack", stack),
			)

			body := gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An unexpected error occurred",
			}
			if cfg != nil && cfg.ExposeErrorStack {
				body["details"] = fmt.Sprint(recovered)
				body["stack"] = stack
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   body,
			})
		}()

		c.Next()
	}
}
