package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets the response headers every page carries
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		c.Next()
	}
}

// BodyLimit caps request bodies at maxBytes. Reads past the cap fail, which
// form parsing surfaces as an error. A body declared larger than the cap is
// answered by onTooLarge, or a bare 413 when it is nil.
func BodyLimit(maxBytes int64, onTooLarge gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			if c.Request.ContentLength > maxBytes {
				if onTooLarge != nil {
					onTooLarge(c)
					c.Abort()
					return
				}
				c.AbortWithStatus(http.StatusRequestEntityTooLarge)
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
