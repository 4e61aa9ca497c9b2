package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"supplytrack/internal/domain/catalogs/category"
	"supplytrack/internal/infrastructure/storage/postgres"
)

// Compile-time check that CategoryRepo implements category.Repository.
var _ category.Repository = (*CategoryRepo)(nil)

// CategoryRepo is the PostgreSQL repository for supply categories.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			"supply_categories",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
			txm,
		),
	}
}

// GetByName retrieves a category by its name.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*category.Category, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	return r.FindOne(ctx, q)
}
