package dto

import (
	"time"

	"supplytrack/internal/domain/catalogs/category"
)

// --- Request DTOs ---

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name                string  `json:"name" binding:"required"`
	Code                string  `json:"code" binding:"required"`
	Description         *string `json:"description"`
	RequiresColdStorage bool    `json:"requiresColdStorage"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	cat := category.New(r.Code, r.Name)
	cat.Description = r.Description
	cat.RequiresColdStorage = r.RequiresColdStorage
	return cat
}

// UpdateCategoryRequest is the request body for updating a category.
// Update is a full-field replace.
type UpdateCategoryRequest struct {
	Name                string  `json:"name" binding:"required"`
	Code                string  `json:"code" binding:"required"`
	Description         *string `json:"description"`
	RequiresColdStorage bool    `json:"requiresColdStorage"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCategoryRequest) ApplyTo(cat *category.Category) {
	cat.Name = r.Name
	cat.Code = r.Code
	cat.Description = r.Description
	cat.RequiresColdStorage = r.RequiresColdStorage
}

// --- Response DTOs ---

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	Description         *string   `json:"description,omitempty"`
	RequiresColdStorage bool      `json:"requiresColdStorage"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// FromCategory creates response DTO from domain entity.
func FromCategory(cat *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:                  cat.ID.String(),
		Name:                cat.Name,
		Code:                cat.Code,
		Description:         cat.Description,
		RequiresColdStorage: cat.RequiresColdStorage,
		CreatedAt:           cat.CreatedAt,
		UpdatedAt:           cat.UpdatedAt,
	}
}

// FromCategories converts a slice of entities.
func FromCategories(cats []*category.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, FromCategory(cat))
	}
	return out
}
