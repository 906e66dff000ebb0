package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// corsMiddleware answers browser cross-origin checks for the allowed origins.
// Requests from other origins pass through without CORS headers. Credentials
// are allowed only when requested and never with a wildcard.
func corsMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		allowed, allowAny := false, false
		for _, o := range allowedOrigins {
			if o == "*" {
				allowed, allowAny = true, true
				break
			}
			if o == origin {
				allowed = true
				break
			}
		}
		if !allowed {
			c.Next()
			return
		}

		h := c.Writer.Header()
		if allowAny {
			// Never pair a wildcard with credentials.
			h.Set("Access-Control-Allow-Origin", "*")
			h.Del("Access-Control-Allow-Credentials")
		} else {
			h.Set("Access-Control-Allow-Origin", origin)
			if allowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
