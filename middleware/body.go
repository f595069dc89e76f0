package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BodySizeLimiter rejects requests whose body exceeds maxBytes. Requests
// that declare an honest Content-Length fail fast, chunked ones get cut
// off by a MaxBytesReader while the handler reads.
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body size exceeds limit",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()

		if last := c.Errors.Last(); last != nil && strings.Contains(last.Error(), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body size exceeds limit",
			})
		}
	}
}
