package observability

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs each request and records it in metrics. An incoming
// X-Request-ID is reused, otherwise a new one is generated. The ID is forwarded
// upstream by the proxy and echoed on the response.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := strings.Clone(c.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request().Header.Set(RequestIDHeader, requestID)
		}

		err := c.Next()
		c.Set(RequestIDHeader, requestID)

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		metrics.RecordRequest(c.Path(), c.Method(), status)

		logger.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)))
		return err
	}
}
