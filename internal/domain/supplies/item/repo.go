package item

import (
	"context"
	"time"

	"supplytrack/internal/core/id"
)

// Repository defines the interface for Item persistence.
// List queries return the Details projection (category joined in,
// warehouse name resolved).
type Repository interface {
	// Create inserts a new item. The repository assigns the ID and
	// timestamps on write.
	Create(ctx context.Context, item *Item) error

	// GetByID retrieves the raw item record.
	GetByID(ctx context.Context, id id.ID) (*Item, error)

	// GetDetails retrieves the item projection by ID.
	GetDetails(ctx context.Context, id id.ID) (*Details, error)

	// ListAll retrieves all item projections.
	ListAll(ctx context.Context) ([]*Details, error)

	// ListByStatus retrieves projections with the given status.
	ListByStatus(ctx context.Context, status Status) ([]*Details, error)

	// ListByCategory retrieves projections referencing the category.
	ListByCategory(ctx context.Context, categoryID id.ID) ([]*Details, error)

	// ListByStatusAndCategory retrieves projections matching both.
	ListByStatusAndCategory(ctx context.Context, status Status, categoryID id.ID) ([]*Details, error)

	// ListExpiringBefore retrieves projections whose expiration date is
	// set and earlier than the threshold.
	ListExpiringBefore(ctx context.Context, threshold time.Time) ([]*Details, error)

	// Update overwrites the stored item.
	Update(ctx context.Context, item *Item) error

	// Delete removes the item permanently.
	Delete(ctx context.Context, id id.ID) error

	// Exists checks if an item with the given ID exists.
	Exists(ctx context.Context, id id.ID) (bool, error)

	// ExistsByBatchNumber checks if a batch number is already taken.
	ExistsByBatchNumber(ctx context.Context, batchNumber string) (bool, error)
}
