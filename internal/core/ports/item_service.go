package ports

import (
	"context"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// CreateItemInput carries the submitted item form. Numeric fields are kept as
// the raw text the client sent so the service can report parse failures with
// the same messages as range failures. A nil pointer means "not submitted".
type CreateItemInput struct {
	Name            string
	Category        string
	Description     string
	Condition       string
	Quantity        *string
	StorageLocation string
	PhotoURL        string
	ContactName     string
	ContactPhone    string
	Disposition     string
	Price           *string

	// IdempotencyKey is optional; see ItemService.CreateItem.
	IdempotencyKey string
}

// UpdateItemInput lists every field an owner may change. Nil fields are left
// untouched; nothing outside this struct can reach the stored record.
type UpdateItemInput struct {
	Name            *string
	Category        *string
	Description     *string
	Condition       *string
	Quantity        *string
	StorageLocation *string
	PhotoURL        *string
	ContactName     *string
	ContactPhone    *string
	Disposition     *string
	Price           *string
}

// CreateItemResult wraps the stored item. Replayed is true when the
// idempotency key matched an earlier create and nothing new was stored.
type CreateItemResult struct {
	Item     *domain.Item
	Replayed bool
}

// ItemService defines the item workflow. actor is always the organization
// resolved by the access guard.
type ItemService interface {
	CreateItem(ctx context.Context, actor *domain.Organization, input CreateItemInput) (*CreateItemResult, error)
	UpdateItem(ctx context.Context, actor *domain.Organization, id string, input UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, actor *domain.Organization, id string) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
	ListOwnItems(ctx context.Context, actor *domain.Organization) ([]*domain.Item, error)
}
