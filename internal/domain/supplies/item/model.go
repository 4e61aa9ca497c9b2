// Package item provides supply item (batch) records and their business rules.
// An item is one receipt of a material: a batch number, a quantity, a
// category reference and optional warehouse placement.
package item

import (
	"context"
	"strings"
	"time"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/entity"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/catalogs/category"
)

// Status is the lifecycle state of an item. There are no guarded
// transitions: any member may be assigned on update.
type Status string

const (
	StatusInStock  Status = "IN_STOCK"
	StatusReserved Status = "RESERVED"
	StatusExpired  Status = "EXPIRED"
	StatusDisposed Status = "DISPOSED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusReserved, StatusExpired, StatusDisposed:
		return true
	}
	return false
}

// HazardClass describes the physical danger profile of a material.
type HazardClass string

const (
	HazardNone      HazardClass = "NON_HAZARDOUS"
	HazardFlammable HazardClass = "FLAMMABLE"
	HazardExplosive HazardClass = "EXPLOSIVE"
	HazardToxic     HazardClass = "TOXIC"
	HazardCorrosive HazardClass = "CORROSIVE"
)

// Valid reports whether h is a known hazard class.
func (h HazardClass) Valid() bool {
	switch h {
	case HazardNone, HazardFlammable, HazardExplosive, HazardToxic, HazardCorrosive:
		return true
	}
	return false
}

// DefaultUnit is used when the caller does not supply a unit of measure.
const DefaultUnit = "pcs"

// Item represents one batch of a material.
type Item struct {
	entity.BaseEntity

	// Name is the material name
	Name string `db:"name" json:"name"`

	// BatchNumber identifies the batch, globally unique
	BatchNumber string `db:"batch_number" json:"batchNumber"`

	// CategoryID references the owning category, required.
	// The category cannot be changed after creation.
	CategoryID id.ID `db:"category_id" json:"categoryId"`

	// Quantity is the amount on hand, always positive
	Quantity int `db:"quantity" json:"quantity"`

	// Unit is the unit of measure, defaults to "pcs"
	Unit string `db:"unit" json:"unit"`

	// ExpirationDate, when set, must be strictly after the creation date
	ExpirationDate *time.Time `db:"expiration_date" json:"expirationDate,omitempty"`

	// HazardClass describes the danger profile
	HazardClass HazardClass `db:"hazard_class" json:"hazardClass"`

	// StorageConditions holds free-form storage requirements
	StorageConditions *string `db:"storage_conditions" json:"storageConditions,omitempty"`

	// WarehouseID optionally references the storing warehouse
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`

	// Status is the lifecycle state, forced to IN_STOCK on creation
	Status Status `db:"status" json:"status"`
}

// Validate implements entity.Validatable interface.
func (i *Item) Validate(_ context.Context) error {
	if strings.TrimSpace(i.Name) == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}
	if len(i.Name) > 200 {
		return apperror.NewValidation("item name exceeds 200 characters").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(i.BatchNumber) == "" {
		return apperror.NewValidation("batch number is required").
			WithDetail("field", "batchNumber")
	}
	if len(i.BatchNumber) > 50 {
		return apperror.NewValidation("batch number exceeds 50 characters").
			WithDetail("field", "batchNumber")
	}
	if i.CategoryID == id.Nil {
		return apperror.NewValidation("category is required").
			WithDetail("field", "categoryId")
	}
	if i.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if !i.HazardClass.Valid() {
		return apperror.NewValidation("invalid hazard class").
			WithDetail("field", "hazardClass").
			WithDetail("value", string(i.HazardClass))
	}
	if i.Status != "" && !i.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(i.Status))
	}
	if i.StorageConditions != nil && len(*i.StorageConditions) > 200 {
		return apperror.NewValidation("storage conditions exceed 200 characters").
			WithDetail("field", "storageConditions")
	}
	return nil
}

// Details is the read projection of an item: the category is inlined
// in full, the warehouse is reduced to id + name.
type Details struct {
	Item

	Category category.Category `db:"category" json:"category"`

	WarehouseName *string `db:"warehouse_name" json:"warehouseName,omitempty"`
}

// Patch carries a partial update. Nil fields are left unchanged.
// CategoryID is deliberately absent: the category is fixed at creation.
type Patch struct {
	Name              *string      `json:"name,omitempty"`
	Quantity          *int         `json:"quantity,omitempty"`
	Unit              *string      `json:"unit,omitempty"`
	ExpirationDate    *time.Time   `json:"expirationDate,omitempty"`
	StorageConditions *string      `json:"storageConditions,omitempty"`
	WarehouseID       *id.ID       `json:"warehouseId,omitempty"`
	Status            *Status      `json:"status,omitempty"`
	HazardClass       *HazardClass `json:"hazardClass,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Quantity == nil && p.Unit == nil &&
		p.ExpirationDate == nil && p.StorageConditions == nil &&
		p.WarehouseID == nil && p.Status == nil && p.HazardClass == nil
}

// Filter narrows list queries. Both fields are independently optional.
type Filter struct {
	Status     *Status
	CategoryID *id.ID
}
