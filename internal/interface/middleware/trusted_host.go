package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scriptoria-ai/auth-service/pkg/response"
)

// TrustedHost rejects requests whose Host header is not in the allowlist.
// An empty allowlist disables the check. Entries starting with "*." match
// any subdomain.
func TrustedHost(allowed []string) gin.HandlerFunc {
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		host := c.Request.Host
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		for _, a := range allowed {
			if strings.HasPrefix(a, "*.") {
				if strings.HasSuffix(host, a[1:]) {
					c.Next()
					return
				}
				continue
			}
			if strings.EqualFold(host, a) {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusBadRequest, "invalid host header", nil)
	}
}
