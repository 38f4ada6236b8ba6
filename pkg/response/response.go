package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-enrollment-intake/pkg/errors"
)

// Failure is the body returned for every unsuccessful request. Callers branch
// on Success and display Message.
type Failure struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Help    string           `json:"help,omitempty"`
	Error   *appErrors.Error `json:"error,omitempty"`
}

// JSON sends a success payload.
func JSON(c *gin.Context, status int, body interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, body interface{}) {
	JSON(c, http.StatusOK, body)
}

// Error sends a failure body converting the error to the common structure.
// Server-side errors are attached to the context for the error reporter.
func Error(c *gin.Context, err error) {
	ErrorWithHelp(c, err, "")
}

// ErrorWithHelp is Error with an operator hint attached.
func ErrorWithHelp(c *gin.Context, err error, help string) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Failure{Success: false, Message: appErr.Message, Help: help, Error: appErr})
}
