package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/GameXcalibur/LynxATS/internal/logger"
	"github.com/GameXcalibur/LynxATS/internal/utilities"
)

// Recovery turns a handler panic into a logged 500 response. The process
// keeps serving.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					logger.ErrorTypeField: logger.ErrorTypePanic,
					"method":              c.Request.Method,
					"path":                c.Request.URL.Path,
					"panic":               fmt.Sprintf("%v", r),
					"stack_trace":         string(debug.Stack()),
				}).Error("handler panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
					Error: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

// RequestLogger writes one logrus entry per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}
