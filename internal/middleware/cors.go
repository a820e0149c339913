package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

func allowedOrigins(extra []string) map[string]bool {
	allowed := make(map[string]bool, len(devOrigins)+len(extra))
	for _, o := range devOrigins {
		allowed[o] = true
	}
	for _, o := range extra {
		allowed[o] = true
	}
	return allowed
}

// CORS reflects allowed origins and ends preflight requests before auth runs.
func CORS(extraOrigins []string) gin.HandlerFunc {
	allowed := allowedOrigins(extraOrigins)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()
		if origin != "" && allowed[origin] {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		h.Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Authorization, Accept, Origin, X-Requested-With, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// OriginChecker returns a websocket origin check matching the CORS list.
// Requests without an Origin header are accepted.
func OriginChecker(extraOrigins []string) func(*http.Request) bool {
	allowed := allowedOrigins(extraOrigins)
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
