package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey  = "requestId"
	analysisIDKey = "analysisId"
)

// RequestID attaches a request ID to context and response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestIDFromContext fetches the request ID stored by RequestID middleware.
func RequestIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(requestIDKey)
}

// SetAnalysisID records the analysis a request produced so the request log can carry it.
func SetAnalysisID(c *gin.Context, id string) {
	c.Set(analysisIDKey, id)
}

// AnalysisIDFromContext returns the id stored by SetAnalysisID, if any.
func AnalysisIDFromContext(c *gin.Context) string {
	return c.GetString(analysisIDKey)
}
