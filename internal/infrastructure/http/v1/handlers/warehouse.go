package handlers

import (
	"supplytrack/internal/domain/catalogs/warehouse"
	"supplytrack/internal/infrastructure/http/v1/dto"
)

// WarehouseHandler handles warehouse endpoints.
type WarehouseHandler = CatalogHandler[*warehouse.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]

// NewWarehouseHandler creates a warehouse handler over the generic
// catalog handler.
func NewWarehouseHandler(base *BaseHandler, svc *warehouse.Service) *WarehouseHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*warehouse.Warehouse, dto.CreateWarehouseRequest, dto.UpdateWarehouseRequest]{
		Service:    svc.CatalogService,
		EntityName: "warehouse",
		MapCreateDTO: func(req dto.CreateWarehouseRequest) *warehouse.Warehouse {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateWarehouseRequest, existing *warehouse.Warehouse) *warehouse.Warehouse {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(wh *warehouse.Warehouse) any {
			return dto.FromWarehouse(wh)
		},
	})
}
