// Package response implements the uniform API envelope.
// Every endpoint replies with {isSuccess, data?, message}; the boolean is
// authoritative and always agrees with the HTTP status class.
package response

import "github.com/gin-gonic/gin"

// Envelope is the wire shape shared by all endpoints.
type Envelope struct {
	IsSuccess bool   `json:"isSuccess"`      // Operation outcome.
	Data      any    `json:"data,omitempty"` // Payload, omitted for commands without one.
	Message   string `json:"message"`        // Stable human-readable message.
}

// OK writes a success envelope with the given status and payload.
func OK(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{IsSuccess: true, Data: data, Message: message})
}

// Fail writes a failure envelope with the given status.
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{IsSuccess: false, Message: message})
}

// AbortFail writes a failure envelope and aborts the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{IsSuccess: false, Message: message})
}
