package server

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"

// RequestID tags each request with the caller's X-Request-ID or a new UUID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.New().String()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// Logger logs one line per request, at a level chosen by the status code.
func Logger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			id, _ := c.Get(requestIDKey).(string)

			fields := []zap.Field{
				zap.Int("status", status),
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("query", req.URL.RawQuery),
				zap.String("ip", c.RealIP()),
				zap.Int64("bytes_in", req.ContentLength),
				zap.Int64("bytes_out", c.Response().Size),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", id),
			}

			switch {
			case status >= 500:
				log.Error("server error", append(fields, zap.Error(err))...)
			case status >= 400:
				log.Warn("client error", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}
