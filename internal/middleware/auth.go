package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"scm-event-dispatcher/pkg/response"
)

// Auth requires "Authorization: Bearer <admin token>". With no token
// configured every request is rejected.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || m.adminToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected %s %s", c.Request.Method, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
