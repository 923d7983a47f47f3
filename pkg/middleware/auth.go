package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"campus/pkg/auth/service"
)

// RequireAuth resolves the Authorization bearer token and stores the user and
// its id under "user" / "uid". Anything short of a valid token for an active
// user is a 401.
func RequireAuth(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			u, err := auth.Resolve(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
			}
			c.Set("user", u)
			c.Set("uid", u.Username)
			return next(c)
		}
	}
}
