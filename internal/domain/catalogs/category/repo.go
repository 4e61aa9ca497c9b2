package category

import (
	"context"

	"supplytrack/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// GetByName retrieves category by its name.
	GetByName(ctx context.Context, name string) (*Category, error)
}
