package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID carries the per-request correlation id. Handlers log
// against the same id the access line carries.
const ContextKeyRequestID = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation id, keeping one the caller
// already supplied, and echoes it in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// Logger writes one access line per request: id, client, method, path with
// query, status, and latency. Order filters arrive as query parameters, so
// the query survives into the line.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		requestID, _ := c.Get(ContextKeyRequestID)
		log.Printf("[%s] %s %s %s %d %s",
			requestID,
			c.ClientIP(),
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
