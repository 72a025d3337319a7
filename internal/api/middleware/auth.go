package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// OrganizationKey is the echo context key holding the authenticated *domain.Organization.
const OrganizationKey = "organization"

// Authenticator resolves a bearer token to the organization it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Organization, error)
}

// Auth is the access guard for protected routes: it extracts the bearer
// token, resolves the acting organization and stores it in the context.
// Every failure ends the request with an authentication error.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrMissingToken
			}

			org, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(OrganizationKey, org)
			return next(c)
		}
	}
}

// Organization returns the organization stored by Auth, or nil.
func Organization(c echo.Context) *domain.Organization {
	org, _ := c.Get(OrganizationKey).(*domain.Organization)
	return org
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
