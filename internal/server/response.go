package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope for every non-websocket reply.
type Response struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Extras  any  `json:"extras"`
}

func NewResponse(success bool, code int, extras any) Response {
	return Response{
		Success: success,
		Code:    code,
		Extras:  extras,
	}
}

// SuccessResponse returns a JSON response with a success message with no type limitation
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(
		http.StatusOK,
		NewResponse(
			true,
			http.StatusOK,
			extras,
		))
}

func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(
		code,
		NewResponse(
			false,
			code,
			map[string]any{
				"message": message,
			},
		))
}
