package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/photosphere/connect-admin-console/pkg/telemetry/correlation"
)

// RequestID attaches a correlation id to the request context, reusing an
// inbound X-Request-Id and any remote span from X-Trace-Id/X-Span-Id.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, id := correlation.FromHeaders(c.Request.Context(), c.GetHeader)
		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", id)
		c.Header(correlation.HeaderRequestID, id)
		c.Next()
	}
}
