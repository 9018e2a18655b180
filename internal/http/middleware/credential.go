package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnosphere-backend/internal/platform/ctxutil"
)

const credentialCookie = "token"

// AttachCredential copies the session credential, if any, into the request context.
// The cookie wins over the Authorization header. Verification happens in the service layer.
func AttachCredential() gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ""
		if v, err := c.Cookie(credentialCookie); err == nil {
			credential = strings.TrimSpace(v)
		}
		if credential == "" {
			auth := strings.TrimSpace(c.GetHeader("Authorization"))
			if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
				credential = strings.TrimSpace(auth[7:])
			}
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{Credential: credential})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
