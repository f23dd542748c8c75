package ratelimit

import (
	xhttp "covidash/pkg/http"

	"github.com/labstack/echo/v4"
)

// Middleware limits API requests per client IP. Non-API paths (metrics,
// health) pass through untouched.
func Middleware(l *Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if len(c.Path()) < 4 || c.Path()[:4] != "/api" {
				return next(c)
			}
			if !l.Allow(c.RealIP()) {
				return xhttp.TooManyRequestsResponse(c)
			}
			return next(c)
		}
	}
}
