package handler

import (
	"errors"
	"io"
	"net/http"

	sharedError "github.com/changhyeonkim/gym-member-api/internal/shared/error"
	"github.com/changhyeonkim/gym-member-api/internal/shared/validator"
	"github.com/gin-gonic/gin"
)

// BindJSON parses and validates the JSON request body.
// Returns false when binding failed; the error response has already been sent.
//
// Usage:
//
//	var payload member.Payload
//	if !handler.BindJSON(c, &payload) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.Error(err)

		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, resp)
			return false
		}

		resp := sharedError.InvalidRequest
		if errors.Is(err, io.EOF) {
			resp.Message = "Request body is empty."
		}
		c.JSON(resp.Status, resp)
		return false
	}
	return true
}

// RespondError records err on the gin context for the request logger and sends errResp.
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	c.Error(err)
	c.JSON(errResp.Status, errResp)
}
