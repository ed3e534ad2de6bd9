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

// CORS answers cross-origin requests so browser dashboards can call the
// API and open the stream directly. Header values are joined once up
// front; per-request work is a map lookup.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	origins := make(map[string]struct{}, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		origins[o] = struct{}{}
	}
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			if origin == "" {
				return next(c)
			}

			if _, ok := origins[origin]; !ok && !allowAll {
				return next(c)
			}

			res := c.Response().Header()
			if allowAll {
				res.Set("Access-Control-Allow-Origin", "*")
			} else {
				res.Set("Access-Control-Allow-Origin", origin)
				res.Add("Vary", "Origin")
			}
			if methods != "" {
				res.Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				res.Set("Access-Control-Allow-Headers", headers)
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
