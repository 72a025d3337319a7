package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// RequireStatus lets only organizations in one of the given lifecycle states
// through. It must run after Auth.
func RequireStatus(allowed ...domain.OrganizationStatus) echo.MiddlewareFunc {
	set := make(map[domain.OrganizationStatus]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			org := Organization(c)
			if org == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := set[org.Status]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
