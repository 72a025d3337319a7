package handler

import (
	"strings"

	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

// idempotencyKeyHeader lets a client retry POST /items without creating a duplicate.
const idempotencyKeyHeader = "Idempotency-Key"

func toCreateItemInput(req createItemRequest, idempotencyKey string) ports.CreateItemInput {
	return ports.CreateItemInput{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Condition:       req.Condition,
		Quantity:        req.Quantity.text(),
		StorageLocation: req.StorageLocation,
		PhotoURL:        req.PhotoURL,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		Disposition:     req.Disposition,
		Price:           req.Price.text(),
		IdempotencyKey:  strings.TrimSpace(idempotencyKey),
	}
}

func toUpdateItemInput(req updateItemRequest) ports.UpdateItemInput {
	return ports.UpdateItemInput{
		Name:            req.Name,
		Category:        req.Category,
		Description:     req.Description,
		Condition:       req.Condition,
		Quantity:        req.Quantity.text(),
		StorageLocation: req.StorageLocation,
		PhotoURL:        req.PhotoURL,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		Disposition:     req.Disposition,
		Price:           req.Price.text(),
	}
}
