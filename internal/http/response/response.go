package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnosphere-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err as an error envelope. Status and code come from apierr.From;
// server-side causes are replaced with a generic message.
func RespondError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		apiErr = apierr.New(http.StatusInternalServerError, "transaction_failed", nil)
	}
	if apiErr.Status >= http.StatusInternalServerError && err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, ErrorEnvelope{
		Error: APIError{
			Message: apiErr.PublicMessage(),
			Code:    apiErr.Code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
