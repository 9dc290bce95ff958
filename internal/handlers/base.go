package handlers

import (
	"net/http"

	"github.com/ngocthb/OJT-BE/internal/services"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope. data may be nil for message-only results.
func OK(c *gin.Context, message string, data interface{}) {
	body := gin.H{"status": "OK"}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(http.StatusOK, body)
}

// Fail maps a service error to its HTTP status and writes the error
// envelope.
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case services.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case services.IsForbidden(err):
		status = http.StatusForbidden
		message = err.Error()
	case services.IsStoreUnavailable(err):
		status = http.StatusServiceUnavailable
		message = "store unavailable"
	}

	c.JSON(status, gin.H{"status": "ERR", "message": message})
}

// BadRequest is for malformed input caught before the service layer.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "ERR", "message": message})
}
