package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kaffehuset/coffeeshop-api/internal/core/policy"
)

// sessionCaller builds the policy caller from the claims the Session
// middleware stored in the context. Returns nil when the request carried no
// valid session; the core policy turns that into an Unauthenticated denial.
func sessionCaller(c echo.Context) *policy.Caller {
	username, _ := c.Get("username").(string)
	if username == "" {
		return nil
	}
	admin, _ := c.Get("admin").(bool)
	return &policy.Caller{Username: username, Admin: admin}
}
