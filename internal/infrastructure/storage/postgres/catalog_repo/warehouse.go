package catalog_repo

import (
	"supplytrack/internal/domain/catalogs/warehouse"
	"supplytrack/internal/infrastructure/storage/postgres"
)

// Compile-time check that WarehouseRepo implements warehouse.Repository.
var _ warehouse.Repository = (*WarehouseRepo)(nil)

// WarehouseRepo is the PostgreSQL repository for warehouses.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a warehouse repository.
func NewWarehouseRepo(txm *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			"warehouses",
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
			txm,
		),
	}
}
