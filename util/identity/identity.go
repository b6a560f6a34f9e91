// Package identity extracts the trusted caller id from the X-Sharer-User-Id
// header. The header is an opaque integer, not an authenticated principal.
package identity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const Header = "X-Sharer-User-Id"

const ctxKey = "user_id"

// Middleware parses the caller header when present and stores it in the echo
// context. Routes that need an identity fetch it with FromContext; routes that
// work without one are unaffected by a missing header.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(Header)
			if raw == "" {
				return next(c)
			}
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + Header + " header"})
			}
			c.Set(ctxKey, id)
			return next(c)
		}
	}
}

// FromContext returns the caller id set by Middleware, or false when the
// request carried no identity header.
func FromContext(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxKey).(int64)
	return id, ok
}
