package handlers

import (
	"supplytrack/internal/domain/catalogs/category"
	"supplytrack/internal/infrastructure/http/v1/dto"
)

// CategoryHandler handles supply category endpoints.
type CategoryHandler = CatalogHandler[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]

// NewCategoryHandler creates a category handler over the generic
// catalog handler.
func NewCategoryHandler(base *BaseHandler, svc *category.Service) *CategoryHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig[*category.Category, dto.CreateCategoryRequest, dto.UpdateCategoryRequest]{
		Service:    svc.CatalogService,
		EntityName: "category",
		MapCreateDTO: func(req dto.CreateCategoryRequest) *category.Category {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCategoryRequest, existing *category.Category) *category.Category {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(cat *category.Category) any {
			return dto.FromCategory(cat)
		},
	})
}
