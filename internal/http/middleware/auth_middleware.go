package middleware

import (
	"net/http"
	"notestash/internal/utils"
	"notestash/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// NewAuthMiddleware guards every owner-scoped route. It verifies the bearer
// token against the identity provider's published keys and stores the stable
// owner id (sub) plus email label in the request context. Nothing downstream
// ever trusts an owner id coming from the request itself.
func NewAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("sub", tokenData.Sub)
			c.Set("email", tokenData.Email)
			return next(c)
		}
	}
}
