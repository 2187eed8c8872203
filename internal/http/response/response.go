package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/calmzone-backend/internal/platform/apierr"
)

// ErrorBody is the envelope of every non-2xx JSON response.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorBody{Error: msg, Code: code})
}

// RespondAPIError maps err onto the envelope. Errors that are not *apierr.Error
// become an opaque 500.
func RespondAPIError(c *gin.Context, err error) {
	ae, ok := apierr.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorBody{
			Error: "internal error",
			Code:  "internal_error",
		})
		return
	}
	msg := ae.Message
	if msg == "" {
		msg = ae.Error()
	}
	c.JSON(apierr.StatusOf(err), ErrorBody{Error: msg, Code: ae.Code, Details: ae.Details})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
