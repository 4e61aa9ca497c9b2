// Package entity provides base types shared by all domain records.
package entity

import (
	"context"
	"time"

	"supplytrack/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// BaseEntity contains the common fields for all records.
// ID and the audit timestamps are assigned by the storage layer on write,
// so a freshly built entity carries zero values until it is persisted.
type BaseEntity struct {
	// ID is the primary key (UUIDv7, assigned by the repository on create)
	ID id.ID `db:"id" json:"id"`

	// Audit timestamps (assigned by the repository on write)
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Record is implemented by entities whose identity and audit
// timestamps are assigned by the storage layer on write.
type Record interface {
	GetID() id.ID
	AssignID(id.ID)
	SetCreated(t time.Time)
	SetUpdatedAt(t time.Time)
}

// GetID returns the primary key.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// AssignID sets the primary key (used by the repository on create).
func (b *BaseEntity) AssignID(v id.ID) {
	b.ID = v
}

// Touch updates the UpdatedAt timestamp.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// SetCreated stamps both audit timestamps (used by the repository on insert).
func (b *BaseEntity) SetCreated(t time.Time) {
	b.CreatedAt = t
	b.UpdatedAt = t
}

// SetUpdatedAt updates the updated_at timestamp (used by the repository).
func (b *BaseEntity) SetUpdatedAt(t time.Time) {
	b.UpdatedAt = t
}
