package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/api/middleware"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// ctxOrganization returns the acting organization placed in the context by
// the Auth middleware. A handler mounted without the middleware fails closed.
func ctxOrganization(c echo.Context) (*domain.Organization, error) {
	org := middleware.Organization(c)
	if org == nil {
		return nil, domain.ErrMissingToken
	}
	return org, nil
}
