package utils

import (
	"notestash/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// GetOwnerFromContext returns the owner id the auth middleware stored for
// this request. Routes behind the middleware can rely on it being present.
func GetOwnerFromContext(c echo.Context) (string, apierror.ErrorResponse) {
	val := c.Get("sub")
	if val == nil {
		log.Warnf("route %s attempted to read nil owner from context", c.Request().URL)
		return "", apierror.UnauthorizedError
	}

	sub, ok := val.(string)
	if !ok || sub == "" {
		log.Warnf("expected owner id at 'sub' context key, got %v", val)
		return "", apierror.InternalServerError
	}
	return sub, nil
}
