package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// SizeLimit rejects bodies larger than maxBodyBytes. A declared
// Content-Length over the limit is refused with 413 before reading; an
// undeclared one is cut off by http.MaxBytesReader, which makes binding
// fail with *http.MaxBytesError.
func SizeLimit(maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBodyBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
				Error: "Entity too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		c.Next()
	}
}
