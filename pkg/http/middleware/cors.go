package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
}

// CORS returns CORS middleware. The API is a read-only public data source,
// so the default server config allows any origin with GET only.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAny := len(cfg.AllowOrigins) > 0 && cfg.AllowOrigins[0] == "*"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			h := c.Response().Header()

			// Responses differ by requesting origin, tell caches so.
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			if !originAllowed(cfg.AllowOrigins, origin) {
				return next(c)
			}

			switch {
			case origin != "":
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			case allowAny:
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			}

			if len(cfg.AllowMethods) > 0 {
				h.Set(echo.HeaderAccessControlAllowMethods, strings.Join(cfg.AllowMethods, ", "))
			}
			if len(cfg.AllowHeaders) > 0 {
				h.Set(echo.HeaderAccessControlAllowHeaders, strings.Join(cfg.AllowHeaders, ", "))
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, o := range allowed {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
