// Package warehouse provides the Warehouse catalog.
// Warehouses represent physical storage locations for supply items.
package warehouse

import (
	"context"
	"strings"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/entity"
)

// Warehouse represents a storage location for supply items.
type Warehouse struct {
	entity.BaseEntity

	// Name is the human-readable warehouse name
	Name string `db:"name" json:"name"`

	// Code is a short mnemonic identifier, unique across warehouses
	Code string `db:"code" json:"code"`

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`

	// Capacity is the maximum storage capacity in abstract units.
	// Nil means unbounded.
	Capacity *int `db:"capacity" json:"capacity,omitempty"`

	// CurrentOccupancy tracks how much capacity is in use
	CurrentOccupancy int `db:"current_occupancy" json:"currentOccupancy"`

	// HasRefrigeration indicates cold storage availability
	HasRefrigeration bool `db:"has_refrigeration" json:"hasRefrigeration"`
}

// New creates a Warehouse with required fields.
func New(code, name string) *Warehouse {
	return &Warehouse{
		Code: code,
		Name: name,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(_ context.Context) error {
	if strings.TrimSpace(w.Name) == "" {
		return apperror.NewValidation("warehouse name is required").
			WithDetail("field", "name")
	}
	if len(w.Name) > 100 {
		return apperror.NewValidation("warehouse name exceeds 100 characters").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(w.Code) == "" {
		return apperror.NewValidation("warehouse code is required").
			WithDetail("field", "code")
	}
	if len(w.Code) > 20 {
		return apperror.NewValidation("warehouse code exceeds 20 characters").
			WithDetail("field", "code")
	}
	if w.Address != nil && len(*w.Address) > 200 {
		return apperror.NewValidation("warehouse address exceeds 200 characters").
			WithDetail("field", "address")
	}
	if w.Capacity != nil && *w.Capacity < 0 {
		return apperror.NewValidation("warehouse capacity cannot be negative").
			WithDetail("field", "capacity")
	}
	if w.CurrentOccupancy < 0 {
		return apperror.NewValidation("warehouse occupancy cannot be negative").
			WithDetail("field", "currentOccupancy")
	}
	return nil
}

// HasFreeCapacity reports whether the warehouse can take more stock.
// Unbounded warehouses always have free capacity.
func (w *Warehouse) HasFreeCapacity() bool {
	if w.Capacity == nil {
		return true
	}
	return w.CurrentOccupancy < *w.Capacity
}
