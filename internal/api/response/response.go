package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every HTTP reply: the payload travels in Extras.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

// Content is the payload of a plain text reply such as the health check.
type Content struct {
	Content string `json:"content"`
}

// Message is the payload of a failed request and of acknowledgements.
type Message struct {
	Message string `json:"message"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse writes extras with status 200.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, NewResponse(true, http.StatusOK, extras))
}

// SuccessResponseContent writes {"content": content} with status 200.
func SuccessResponseContent(c *gin.Context, content string) {
	SuccessResponse(c, Content{Content: content})
}

// SuccessMessage acknowledges a request that returns no data.
func SuccessMessage(c *gin.Context, message string) {
	SuccessResponse(c, Message{Message: message})
}

// ErrorResponse writes {"message": message} with the given status.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, NewResponse(false, code, Message{Message: message}))
}
