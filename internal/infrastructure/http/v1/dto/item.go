package dto

import (
	"time"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/supplies/item"
)

// --- Request DTOs ---

// CreateItemRequest is the request body for creating a supply item.
// Status is ignored on creation: new items always start IN_STOCK.
type CreateItemRequest struct {
	Name              string           `json:"name" binding:"required"`
	BatchNumber       string           `json:"batchNumber" binding:"required"`
	CategoryID        string           `json:"categoryId" binding:"required"`
	Quantity          int              `json:"quantity" binding:"required"`
	Unit              string           `json:"unit"`
	ExpirationDate    *time.Time       `json:"expirationDate"`
	HazardClass       item.HazardClass `json:"hazardClass" binding:"required"`
	StorageConditions *string          `json:"storageConditions"`
	WarehouseID       *string          `json:"warehouseId"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateItemRequest) ToEntity() (*item.Item, error) {
	categoryID, err := id.Parse(r.CategoryID)
	if err != nil {
		return nil, apperror.NewValidation("invalid category id").
			WithDetail("categoryId", r.CategoryID)
	}

	it := &item.Item{
		Name:              r.Name,
		BatchNumber:       r.BatchNumber,
		CategoryID:        categoryID,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		ExpirationDate:    r.ExpirationDate,
		HazardClass:       r.HazardClass,
		StorageConditions: r.StorageConditions,
	}

	if r.WarehouseID != nil {
		warehouseID, err := id.Parse(*r.WarehouseID)
		if err != nil {
			return nil, apperror.NewValidation("invalid warehouse id").
				WithDetail("warehouseId", *r.WarehouseID)
		}
		it.WarehouseID = &warehouseID
	}

	return it, nil
}

// UpdateItemRequest is the request body for partially updating an item.
// Omitted fields are left unchanged; the category cannot be changed.
type UpdateItemRequest struct {
	Name              *string           `json:"name"`
	Quantity          *int              `json:"quantity"`
	Unit              *string           `json:"unit"`
	ExpirationDate    *time.Time        `json:"expirationDate"`
	StorageConditions *string           `json:"storageConditions"`
	WarehouseID       *string           `json:"warehouseId"`
	Status            *item.Status      `json:"status"`
	HazardClass       *item.HazardClass `json:"hazardClass"`
}

// ToPatch converts DTO to a domain patch.
func (r *UpdateItemRequest) ToPatch() (item.Patch, error) {
	patch := item.Patch{
		Name:              r.Name,
		Quantity:          r.Quantity,
		Unit:              r.Unit,
		ExpirationDate:    r.ExpirationDate,
		StorageConditions: r.StorageConditions,
		Status:            r.Status,
		HazardClass:       r.HazardClass,
	}

	if r.WarehouseID != nil {
		warehouseID, err := id.Parse(*r.WarehouseID)
		if err != nil {
			return item.Patch{}, apperror.NewValidation("invalid warehouse id").
				WithDetail("warehouseId", *r.WarehouseID)
		}
		patch.WarehouseID = &warehouseID
	}

	return patch, nil
}

// --- Response DTOs ---

// ItemResponse is the response body for a supply item. The category is
// inlined in full; the warehouse is reduced to id + name.
type ItemResponse struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	BatchNumber       string            `json:"batchNumber"`
	Category          *CategoryResponse `json:"category"`
	Quantity          int               `json:"quantity"`
	Unit              string            `json:"unit"`
	ExpirationDate    *time.Time        `json:"expirationDate,omitempty"`
	HazardClass       item.HazardClass  `json:"hazardClass"`
	StorageConditions *string           `json:"storageConditions,omitempty"`
	WarehouseID       *string           `json:"warehouseId,omitempty"`
	WarehouseName     *string           `json:"warehouseName,omitempty"`
	Status            item.Status       `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// FromItemDetails creates response DTO from the domain projection.
func FromItemDetails(d *item.Details) *ItemResponse {
	resp := &ItemResponse{
		ID:                d.ID.String(),
		Name:              d.Name,
		BatchNumber:       d.BatchNumber,
		Category:          FromCategory(&d.Category),
		Quantity:          d.Quantity,
		Unit:              d.Unit,
		ExpirationDate:    d.ExpirationDate,
		HazardClass:       d.HazardClass,
		StorageConditions: d.StorageConditions,
		WarehouseName:     d.WarehouseName,
		Status:            d.Status,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}

	if d.WarehouseID != nil {
		s := d.WarehouseID.String()
		resp.WarehouseID = &s
	}

	return resp
}

// FromItemDetailsList converts a slice of projections.
func FromItemDetailsList(items []*item.Details) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, d := range items {
		out = append(out, FromItemDetails(d))
	}
	return out
}
