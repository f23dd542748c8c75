package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per request. Prometheus scrapes are skipped,
// they would dominate the log at a 15s scrape interval.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			if req.URL.Path == "/metrics" {
				return err
			}

			log.Printf("[%s] %s %s - %d (%s)",
				req.Method,
				req.RequestURI,
				c.RealIP(),
				c.Response().Status,
				time.Since(start),
			)
			return err
		}
	}
}
