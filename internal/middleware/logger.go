package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key carrying the request identifier.
const ContextKeyRequestID = "request_id"

// RequestID tags each request with an identifier, reusing the caller's
// X-Request-ID when present so upstream proxies stay correlatable.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger writes one line per request. The query string is deliberately not
// logged: download links carry signed tokens in it.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		requestID := c.GetString(ContextKeyRequestID)
		log.Printf("[%s] %s %s %s %d %s",
			requestID,
			c.ClientIP(),
			method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
		for _, e := range c.Errors {
			log.Printf("[%s] middleware.Logger: %v", requestID, e.Err)
		}
	}
}

// Recovery converts panics into a 500 response carrying the standard
// error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(ContextKeyRequestID)
		log.Printf("[%s] middleware.Recovery: panic recovered: %v", requestID, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "an internal error occurred"},
		})
	})
}
