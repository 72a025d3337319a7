package ports

import (
	"context"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	OrganizationName string
	AccountName      string
	Email            string
	Password         string
}

// AuthResult is a fresh token plus the sanitized profile it was issued for.
type AuthResult struct {
	Token        string
	Organization *domain.Organization
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, accountName, password string) (*AuthResult, error)
	// Authenticate resolves a bearer token to the acting organization.
	Authenticate(ctx context.Context, token string) (*domain.Organization, error)
}

// TokenService issues and verifies stateless bearer tokens.
type TokenService interface {
	Issue(organizationID string) (string, error)
	Verify(token string) (organizationID string, err error)
}
