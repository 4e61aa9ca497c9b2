package dto

import (
	"time"

	"supplytrack/internal/domain/catalogs/warehouse"
)

// --- Request DTOs ---

// CreateWarehouseRequest is the request body for creating a warehouse.
type CreateWarehouseRequest struct {
	Name             string  `json:"name" binding:"required"`
	Code             string  `json:"code" binding:"required"`
	Address          *string `json:"address"`
	Capacity         *int    `json:"capacity"`
	CurrentOccupancy int     `json:"currentOccupancy"`
	HasRefrigeration bool    `json:"hasRefrigeration"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	wh := warehouse.New(r.Code, r.Name)
	wh.Address = r.Address
	wh.Capacity = r.Capacity
	wh.CurrentOccupancy = r.CurrentOccupancy
	wh.HasRefrigeration = r.HasRefrigeration
	return wh
}

// UpdateWarehouseRequest is the request body for updating a warehouse.
// Update is a full-field replace.
type UpdateWarehouseRequest struct {
	Name             string  `json:"name" binding:"required"`
	Code             string  `json:"code" binding:"required"`
	Address          *string `json:"address"`
	Capacity         *int    `json:"capacity"`
	CurrentOccupancy int     `json:"currentOccupancy"`
	HasRefrigeration bool    `json:"hasRefrigeration"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(wh *warehouse.Warehouse) {
	wh.Name = r.Name
	wh.Code = r.Code
	wh.Address = r.Address
	wh.Capacity = r.Capacity
	wh.CurrentOccupancy = r.CurrentOccupancy
	wh.HasRefrigeration = r.HasRefrigeration
}

// --- Response DTOs ---

// WarehouseResponse is the response body for a warehouse.
type WarehouseResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Code             string    `json:"code"`
	Address          *string   `json:"address,omitempty"`
	Capacity         *int      `json:"capacity,omitempty"`
	CurrentOccupancy int       `json:"currentOccupancy"`
	HasRefrigeration bool      `json:"hasRefrigeration"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromWarehouse creates response DTO from domain entity.
func FromWarehouse(wh *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:               wh.ID.String(),
		Name:             wh.Name,
		Code:             wh.Code,
		Address:          wh.Address,
		Capacity:         wh.Capacity,
		CurrentOccupancy: wh.CurrentOccupancy,
		HasRefrigeration: wh.HasRefrigeration,
		CreatedAt:        wh.CreatedAt,
		UpdatedAt:        wh.UpdatedAt,
	}
}

// FromWarehouses converts a slice of entities.
func FromWarehouses(whs []*warehouse.Warehouse) []*WarehouseResponse {
	out := make([]*WarehouseResponse, 0, len(whs))
	for _, wh := range whs {
		out = append(out, FromWarehouse(wh))
	}
	return out
}
