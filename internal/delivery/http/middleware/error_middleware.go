package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/apperror"
)

func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				log.Warn("Request failed", "status", appErr.Code, "error", appErr.Err, "path", c.FullPath())
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		log.Error("Internal Server Error", "error", err, "path", c.FullPath())
		appErr = apperror.Internal(err)
		response.Error(c, appErr.Code, appErr.Message, nil)
	}
}

// Recovery converts panics into a generic 500 response.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("Panic recovered", "panic", recovered, "path", c.FullPath())
		appErr := apperror.Internal(nil)
		response.Error(c, appErr.Code, appErr.Message, nil)
		c.Abort()
	})
}
