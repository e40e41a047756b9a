package errors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WriteFailure writes the error body for err. Unclassified errors are logged
// and reported as internal errors without leaking their text.
func WriteFailure(c *gin.Context, err error) {
	status, body := Response(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, body)
}

// WriteBindError writes a 400 for a request body or path that failed to bind.
func WriteBindError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		ErrorType: HttpInvalidJsonError,
		Message:   message,
		Details:   err.Error(),
	})
}
