package ports

import (
	"context"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// OrganizationRepository persists organization accounts.
type OrganizationRepository interface {
	// Create inserts the organization and returns it with its generated ID.
	// A unique-index violation is reported as domain.ErrOrganizationExists.
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	// ExistsByAccountOrEmail reports whether any organization uses the account name or the email.
	ExistsByAccountOrEmail(ctx context.Context, accountName, email string) (bool, error)
	// FindByAccountName includes the password hash.
	FindByAccountName(ctx context.Context, accountName string) (*domain.Organization, error)
	// FindByID never loads the password hash.
	FindByID(ctx context.Context, id string) (*domain.Organization, error)
}
