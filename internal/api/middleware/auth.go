package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AdminOnly guards the maintenance surfaces. Callers present the
// administrative token as "Authorization: Bearer <token>" or in
// "X-Admin-Token". An empty configured token disables the check, which is
// the development default.
func AdminOnly(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}

			presented := c.Request().Header.Get("X-Admin-Token")
			if presented == "" {
				auth := c.Request().Header.Get(echo.HeaderAuthorization)
				presented = strings.TrimPrefix(auth, "Bearer ")
			}

			if presented != token {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"message": "administrative role required",
				})
			}

			return next(c)
		}
	}
}
