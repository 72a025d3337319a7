package ports

import (
	"context"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// FindByID returns domain.ErrItemNotFound for unknown or malformed ids.
	// The owner summary is populated.
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// List returns every item newest first with owner summaries populated.
	List(ctx context.Context) ([]*domain.Item, error)
	// ListByOwner returns the owner's items newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error)
	// Update writes the item's mutable fields and returns the stored record.
	Update(ctx context.Context, item *domain.Item) (*domain.Item, error)
	// Delete returns domain.ErrItemNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore remembers which item a client's Idempotency-Key produced.
//
// Reserve claims the key before anything is created. reserved is true when the
// caller now holds the key; otherwise itemID is the item created under it, or
// empty while the request holding the key is still running. The holder either
// records its item with Remember or gives the key back with Release.
type IdempotencyStore interface {
	Reserve(ctx context.Context, organizationID, key string) (itemID string, reserved bool, err error)
	Remember(ctx context.Context, organizationID, key, itemID string) error
	Release(ctx context.Context, organizationID, key string) error
}
