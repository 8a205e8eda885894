package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one line per request once the handler chain has finished.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		user := "-"
		if u, ok := CurrentUser(c); ok {
			user = u.Username
		}
		log.Printf("[%s] %s %s %s user=%s status=%d latency=%s",
			GetRequestID(c), c.Request.Method, c.Request.URL.Path, c.ClientIP(),
			user, c.Writer.Status(), latency.String())
	}
}
