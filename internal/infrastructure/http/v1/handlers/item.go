package handlers

import (
	"github.com/gin-gonic/gin"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/supplies/item"
	"supplytrack/internal/infrastructure/http/v1/dto"
)

// defaultExpiringDays is the window used when /expiring is called
// without an explicit days parameter.
const defaultExpiringDays = 30

// ItemHandler handles supply item endpoints.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates an item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /supply-items.
func (h *ItemHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	details, err := h.service.Create(ctx, it)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromItemDetails(details))
}

// Get handles GET /supply-items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	details, err := h.service.GetByID(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItemDetails(details))
}

// List handles GET /supply-items?status=&categoryId=.
// Both filters are independently optional.
func (h *ItemHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var filter item.Filter

	if statusStr := c.Query("status"); statusStr != "" {
		status := item.Status(statusStr)
		if !status.Valid() {
			h.Error(c, apperror.NewValidation("invalid status").
				WithDetail("status", statusStr))
			return
		}
		filter.Status = &status
	}

	if categoryStr := c.Query("categoryId"); categoryStr != "" {
		categoryID, err := id.Parse(categoryStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid category id").
				WithDetail("categoryId", categoryStr))
			return
		}
		filter.CategoryID = &categoryID
	}

	items, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItemDetailsList(items))
}

// Update handles PATCH /supply-items/:id - partial update.
func (h *ItemHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		h.Error(c, err)
		return
	}

	details, err := h.service.Update(ctx, itemID, patch)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItemDetails(details))
}

// Delete handles DELETE /supply-items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Expiring handles GET /supply-items/expiring?days=30.
func (h *ItemHandler) Expiring(c *gin.Context) {
	ctx := c.Request.Context()

	days := h.ParseIntQuery(c, "days", defaultExpiringDays)

	items, err := h.service.FindExpiringSoon(ctx, days)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItemDetailsList(items))
}
