package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly enforces that the resolved caller holds the admin role. It sits
// behind Auth, so a missing caller here means the token carried no admin
// claim.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, _ := c.Get("admin").(bool)
			if !admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
