package middleware

import (
	"time"

	"myLocalMarket/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestLogger tags each request with an id (reusing X-Request-ID when the
// caller sends one) and logs the outcome.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency", time.Since(start),
			)

			return nil
		}
	}
}
