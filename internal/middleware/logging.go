package middleware

import (
	"time"

	"wikiquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HTTPRecorder counts served requests. *metrics.Metrics implements it.
type HTTPRecorder interface {
	ObserveHTTPRequest(method, route string, status int)
}

// RequestLogger logs every HTTP request and, when recorder is non-nil,
// counts it by matched route.
func RequestLogger(recorder HTTPRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			// Run the error handler now so the logged status is the final one.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		logger.Get().Info("HTTP Request",
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		if recorder != nil {
			recorder.ObserveHTTPRequest(method, c.Route().Path, status)
		}
		return nil
	}
}
