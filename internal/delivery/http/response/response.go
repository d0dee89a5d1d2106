package response

import (
	"github.com/gin-gonic/gin"

	"portfolio-contact-api/internal/domain"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool               `json:"success"`
	Message   string             `json:"message"`
	Data      interface{}        `json:"data,omitempty"`
	Errors    domain.FieldErrors `json:"errors,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response, with optional per-field errors
func Error(c *gin.Context, code int, message string, errs domain.FieldErrors) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Errors:    errs,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get(string(domain.KeyRequestID))
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
