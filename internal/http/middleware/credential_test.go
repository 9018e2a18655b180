package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/learnosphere-backend/internal/platform/ctxutil"
)

func TestAttachCredentialSources(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie", "abc", "", "abc"},
		{"bearer", "", "Bearer xyz", "xyz"},
		{"lowercase bearer", "", "bearer xyz", "xyz"},
		{"cookie wins", "abc", "Bearer xyz", "abc"},
		{"basic ignored", "", "Basic Zm9vOmJhcg==", ""},
		{"none", "", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got *ctxutil.RequestData
			r := gin.New()
			r.Use(AttachCredential())
			r.GET("/x", func(c *gin.Context) {
				got = ctxutil.GetRequestData(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			if got == nil {
				t.Fatalf("request data not attached")
			}
			if got.Credential != tc.want {
				t.Fatalf("credential: want=%q got=%q", tc.want, got.Credential)
			}
		})
	}
}
