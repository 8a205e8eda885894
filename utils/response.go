package utils

import "github.com/gin-gonic/gin"

// Pages a response may send the client back to.
const (
	HomePath         = "/api/"
	LoginPath        = "/api/login"
	ReservationsPath = "/api/reservations"
)

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// JSONError writes the error envelope used across the API. redirect is
// optional and tells the client which page to fall back to.
func JSONError(c *gin.Context, code int, errCode, message, redirect string) {
	body := gin.H{"code": errCode, "message": message}
	if redirect != "" {
		body["redirect"] = redirect
	}
	c.JSON(code, gin.H{"success": false, "error": body})
}

// AbortWithError is JSONError for middleware.
func AbortWithError(c *gin.Context, code int, errCode, message, redirect string) {
	JSONError(c, code, errCode, message, redirect)
	c.Abort()
}
