package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"cvscore-api/internal/shared/metrics"
	"cvscore-api/internal/shared/server/respond"
	"cvscore-api/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. When the response has
// already started only the log line is written and the request is aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.IncAnalysisFailed()
			telemetry.Error("panic", map[string]any{
				"request_id":  RequestIDFromContext(c),
				"analysis_id": AnalysisIDFromContext(c),
				"error":       fmt.Sprint(rec),
				"stack":       string(debug.Stack()),
				"path":        c.Request.URL.Path,
				"method":      c.Request.Method,
				"written":     c.Writer.Written(),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Unexpected server error", nil)
		}()
		c.Next()
	}
}
