package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/api/metrics"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

// AuthHandler serves registration, login and the caller's own profile.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new organization account and signs it in.
//
// @Summary      Register an organization
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Organization registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		OrganizationName: req.OrganizationName,
		AccountName:      req.AccountName,
		Email:            req.Email,
		Password:         req.Password,
	})
	if err != nil {
		return err
	}

	metrics.OrganizationsRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message:      "registration successful",
		Token:        res.Token,
		Organization: res.Organization,
	})
}

// Login exchanges an account name and password for a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}

	res, err := h.authService.Login(c.Request().Context(), req.AccountName, req.Password)
	metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: res.Token, Organization: res.Organization})
}

// Me returns the profile of the organization the token belongs to.
//
// @Summary      Current organization
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	org, err := ctxOrganization(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{Organization: org})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrWrongPassword):
		return "wrong_password"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	}
	return "error"
}
