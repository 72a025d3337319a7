package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bagibarang-its/inventory-api/internal/api/metrics"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

// ItemHandler handles HTTP requests for item listings.
type ItemHandler struct {
	service ports.ItemService
}

func NewItemHandler(service ports.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// List handles GET /items.
//
// @Summary      List all items
// @Description  Every organization's items, newest first, each with its owner.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Item
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// ListMine handles GET /items/mine.
//
// @Summary      List the caller's items
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Item
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /items/mine [get]
func (h *ItemHandler) ListMine(c echo.Context) error {
	org, err := ctxOrganization(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListOwnItems(c.Request().Context(), org)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(items))
}

// Get handles GET /items/:id.
//
// @Summary      Get an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  domain.Item
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	item, err := h.service.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /items.
//
// @Summary      Create an item
// @Description  A repeated Idempotency-Key from the same organization returns the first item with 200.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Client retry key"
// @Param        body             body      createItemRequest  true   "Item details"
// @Success      201              {object}  domain.Item
// @Success      200              {object}  domain.Item
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	org, err := ctxOrganization(c)
	if err != nil {
		return err
	}

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := toCreateItemInput(req, c.Request().Header.Get(idempotencyKeyHeader))
	res, err := h.service.CreateItem(c.Request().Context(), org, input)
	if err != nil {
		return err
	}

	if res.Replayed {
		metrics.ItemMutationsTotal.WithLabelValues("replay", string(res.Item.Disposition)).Inc()
		return c.JSON(http.StatusOK, res.Item)
	}
	metrics.ItemMutationsTotal.WithLabelValues("create", string(res.Item.Disposition)).Inc()
	return c.JSON(http.StatusCreated, res.Item)
}

// Update handles PUT /items/:id.
//
// @Summary      Edit an item
// @Description  Only the owning organization may edit. Omitted fields keep their value.
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Item ID"
// @Param        body  body      updateItemRequest  true  "Fields to change"
// @Success      200   {object}  domain.Item
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c echo.Context) error {
	org, err := ctxOrganization(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.service.UpdateItem(c.Request().Context(), org, c.Param("id"), toUpdateItemInput(req))
	if err != nil {
		return err
	}

	metrics.ItemMutationsTotal.WithLabelValues("update", string(item.Disposition)).Inc()
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /items/:id.
//
// @Summary      Delete an item
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c echo.Context) error {
	org, err := ctxOrganization(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteItem(c.Request().Context(), org, c.Param("id")); err != nil {
		return err
	}

	metrics.ItemMutationsTotal.WithLabelValues("delete", "").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "item deleted"})
}

// nonNil keeps empty listings serialized as [] rather than null.
func nonNil(items []*domain.Item) []*domain.Item {
	if items == nil {
		return []*domain.Item{}
	}
	return items
}
