package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

type ItemService struct {
	repo        ports.ItemRepository
	idempotency ports.IdempotencyStore
	logger      zerolog.Logger
}

// NewItemService wires the item workflow. idempotency may be nil, in which
// case Idempotency-Key headers are ignored.
func NewItemService(repo ports.ItemRepository, idempotency ports.IdempotencyStore, logger zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, idempotency: idempotency, logger: logger}
}

// CreateItem validates the form and stores a new item owned by actor. When the
// same actor repeats an idempotency key, the item created the first time is
// returned and nothing is stored. A repeat that arrives while the first request
// is still running fails with domain.ErrIdempotencyInProgress.
func (s *ItemService) CreateItem(ctx context.Context, actor *domain.Organization, in ports.CreateItemInput) (*ports.CreateItemResult, error) {
	key := in.IdempotencyKey
	existing, reserved, err := s.reserve(ctx, actor, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &ports.CreateItemResult{Item: existing, Replayed: true}, nil
	}

	created, err := s.createItem(ctx, actor, in)
	if err != nil {
		if reserved {
			s.release(ctx, actor, key)
		}
		return nil, err
	}

	if key != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, actor.ID, key, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("item_id", created.ID).Str("organization_id", actor.ID).Str("disposition", string(created.Disposition)).Msg("item created")

	return &ports.CreateItemResult{Item: created}, nil
}

func (s *ItemService) createItem(ctx context.Context, actor *domain.Organization, in ports.CreateItemInput) (*domain.Item, error) {
	if in.Name == "" || in.Category == "" || isBlank(in.Quantity) {
		return nil, domain.Invalid("name, category and quantity are required")
	}

	quantity, err := domain.ParseQuantity(*in.Quantity)
	if err != nil {
		return nil, err
	}

	if in.ContactPhone != "" {
		if err := domain.ValidatePhone(in.ContactPhone); err != nil {
			return nil, err
		}
	}

	disposition, err := domain.ParseDisposition(in.Disposition)
	if err != nil {
		return nil, err
	}

	var price float64
	if disposition == domain.DispositionSale {
		if price, err = salePrice(in.Price); err != nil {
			return nil, err
		}
	}

	condition := in.Condition
	if condition == "" {
		condition = domain.DefaultCondition
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Item{
		OwnerID:         actor.ID,
		Name:            in.Name,
		Category:        in.Category,
		Description:     in.Description,
		Condition:       condition,
		Quantity:        quantity,
		StorageLocation: in.StorageLocation,
		PhotoURL:        in.PhotoURL,
		ContactName:     in.ContactName,
		ContactPhone:    in.ContactPhone,
		Disposition:     disposition,
		Price:           price,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("organization_id", actor.ID).Msg("failed to create item")
		return nil, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

// reserve claims the idempotency key for this request. It returns the item an
// earlier request created under the key, if any. Store failures are logged and
// treated as a miss so creates never depend on Redis.
func (s *ItemService) reserve(ctx context.Context, actor *domain.Organization, key string) (*domain.Item, bool, error) {
	if key == "" || s.idempotency == nil {
		return nil, false, nil
	}

	itemID, reserved, err := s.idempotency.Reserve(ctx, actor.ID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if itemID == "" {
		return nil, false, domain.ErrIdempotencyInProgress
	}

	existing, err := s.repo.FindByID(ctx, itemID)
	if err != nil || !existing.OwnedBy(actor.ID) {
		// The recorded item is gone; a new one replaces it under the same key.
		return nil, false, nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("item_id", existing.ID).Msg("idempotent replay")
	return existing, false, nil
}

func (s *ItemService) release(ctx context.Context, actor *domain.Organization, key string) {
	if err := s.idempotency.Release(ctx, actor.ID, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// UpdateItem applies the submitted fields to an item the actor owns. Fields are
// validated in the same order as on create and nothing is written unless every
// submitted field is valid.
func (s *ItemService) UpdateItem(ctx context.Context, actor *domain.Organization, id string, in ports.UpdateItemInput) (*domain.Item, error) {
	item, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if (in.Name != nil && *in.Name == "") || (in.Category != nil && *in.Category == "") {
		return nil, domain.Invalid("name and category cannot be empty")
	}

	var quantity int64
	if in.Quantity != nil {
		if quantity, err = domain.ParseQuantity(*in.Quantity); err != nil {
			return nil, err
		}
	}

	if in.ContactPhone != nil && *in.ContactPhone != "" {
		if err := domain.ValidatePhone(*in.ContactPhone); err != nil {
			return nil, err
		}
	}

	var disposition domain.Disposition
	dispositionSubmitted := !isBlank(in.Disposition)
	if dispositionSubmitted {
		if disposition, err = domain.ParseDisposition(*in.Disposition); err != nil {
			return nil, err
		}
	}

	// Price follows the disposition submitted in this update. Without one the
	// stored price is kept, and a submitted price only replaces it while the
	// item is for sale.
	price := item.Price
	switch {
	case dispositionSubmitted && disposition == domain.DispositionSale:
		if price, err = salePrice(in.Price); err != nil {
			return nil, err
		}
	case dispositionSubmitted:
		price = 0
	case !isBlank(in.Price):
		submitted, err := domain.ParsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		if item.Disposition == domain.DispositionSale {
			price = submitted
		}
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Condition != nil {
		item.Condition = *in.Condition
		if item.Condition == "" {
			item.Condition = domain.DefaultCondition
		}
	}
	if in.Quantity != nil {
		item.Quantity = quantity
	}
	if in.StorageLocation != nil {
		item.StorageLocation = *in.StorageLocation
	}
	if in.PhotoURL != nil {
		item.PhotoURL = *in.PhotoURL
	}
	if in.ContactName != nil {
		item.ContactName = *in.ContactName
	}
	if in.ContactPhone != nil {
		item.ContactPhone = *in.ContactPhone
	}
	if dispositionSubmitted {
		item.Disposition = disposition
	}
	item.Price = price
	item.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.logger.Info().Str("item_id", id).Str("organization_id", actor.ID).Msg("item updated")
	return updated, nil
}

// DeleteItem permanently removes an item the actor owns.
func (s *ItemService) DeleteItem(ctx context.Context, actor *domain.Organization, id string) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("delete item: %w", err)
	}

	s.logger.Info().Str("item_id", id).Str("organization_id", actor.ID).Msg("item deleted")
	return nil
}

func (s *ItemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRead("get item", err)
	}
	return item, nil
}

func (s *ItemService) ListItems(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *ItemService) ListOwnItems(ctx context.Context, actor *domain.Organization) ([]*domain.Item, error) {
	items, err := s.repo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list own items: %w", err)
	}
	return items, nil
}

// owned loads the item and checks that actor may mutate it.
func (s *ItemService) owned(ctx context.Context, actor *domain.Organization, id string) (*domain.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRead("load item", err)
	}
	if !item.OwnedBy(actor.ID) {
		return nil, domain.ErrNotItemOwner
	}
	return item, nil
}

// salePrice validates the price an item for sale must carry.
func salePrice(raw *string) (float64, error) {
	if isBlank(raw) {
		return 0, domain.Invalid("price is required for items for sale")
	}
	return domain.ParsePrice(*raw)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// wrapRead passes not-found errors through untouched.
func wrapRead(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
