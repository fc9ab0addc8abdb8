package middleware

import (
	"log"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	maxRequestID    = 64
)

// query values that grant access on their own
var redactedParams = []string{"token", "code", "state"}

// LoggerMiddleware tags each request with an id and writes one access line
// per request: id, method, status, latency, client, path and business.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestID {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		target := redactQuery(c.Request.URL)

		c.Next()

		tag := requestID
		if len(tag) > 8 {
			tag = tag[:8]
		}
		if business := GetBusiness(c); business != nil {
			target += " | business=" + business.ID.String()[:8]
		}

		log.Printf("[%s] %s | %d | %v | %s | %s",
			tag, c.Request.Method, c.Writer.Status(), time.Since(start), c.ClientIP(), target)

		for _, e := range c.Errors {
			log.Printf("[%s] Error: %v", tag, e.Err)
		}
	}
}

func redactQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	query := u.Query()
	for _, name := range redactedParams {
		if query.Has(name) {
			query.Set(name, "REDACTED")
		}
	}
	return u.Path + "?" + query.Encode()
}
