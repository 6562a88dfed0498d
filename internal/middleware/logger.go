package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
)

// RequestLogger writes one structured line per request and recovers from
// panics with an opaque 500.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				requestFields(log, c, start).
					WithField("stack", string(debug.Stack())).
					Errorf("[HTTP] panic: %v", recovered)
				response.Abort(c, http.StatusInternalServerError, response.CodeInternal, "Internal server error")
				return
			}

			entry := requestFields(log, c, start)
			for _, err := range c.Errors {
				entry = entry.WithError(err.Err)
				if err.Meta != nil {
					entry = entry.WithField("meta", fmt.Sprintf("%+v", err.Meta))
				}
			}

			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				entry.Error("[HTTP] request failed")
			case status >= http.StatusBadRequest:
				entry.Warn("[HTTP] request rejected")
			default:
				entry.Info("[HTTP] request")
			}
		}()

		c.Next()
	}
}

func requestFields(log logrus.FieldLogger, c *gin.Context, start time.Time) logrus.FieldLogger {
	return log.WithFields(logrus.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"admin_id":   c.GetInt64(ctxAdminID),
		"request_id": requestID(c),
		"latency":    time.Since(start).String(),
	})
}

func requestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-Id")
	}
	return requestID
}
