package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// StepErrors is the error payload for a failing workflow step: the step the
// editor should show and that step's field messages.
type StepErrors struct {
	Step   int               `json:"step"`
	Errors map[string]string `json:"errors"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion

	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: idStr,
	})
}

// StepValidationFailed sends the 422 envelope for a step whose rules did
// not pass.
func StepValidationFailed(c *gin.Context, message string, step int, fields map[string]string) {
	Error(c, http.StatusUnprocessableEntity, message, StepErrors{Step: step, Errors: fields})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: idStr,
	})
}
