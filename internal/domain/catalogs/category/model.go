// Package category provides the supply category catalog.
// Categories classify supply items and carry storage requirements.
package category

import (
	"context"
	"strings"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/entity"
)

// Category represents a classification of supply items.
type Category struct {
	entity.BaseEntity

	// Name is the human-readable category name, unique across categories
	Name string `db:"name" json:"name"`

	// Code is a short mnemonic identifier, unique across categories
	Code string `db:"code" json:"code"`

	// Description is an optional free-form note
	Description *string `db:"description" json:"description,omitempty"`

	// RequiresColdStorage marks categories whose items need refrigeration
	RequiresColdStorage bool `db:"requires_cold_storage" json:"requiresColdStorage"`
}

// New creates a Category with required fields.
func New(code, name string) *Category {
	return &Category{
		Code: code,
		Name: name,
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("category name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 100 {
		return apperror.NewValidation("category name exceeds 100 characters").
			WithDetail("field", "name")
	}
	if strings.TrimSpace(c.Code) == "" {
		return apperror.NewValidation("category code is required").
			WithDetail("field", "code")
	}
	if len(c.Code) > 20 {
		return apperror.NewValidation("category code exceeds 20 characters").
			WithDetail("field", "code")
	}
	if c.Description != nil && len(*c.Description) > 500 {
		return apperror.NewValidation("category description exceeds 500 characters").
			WithDetail("field", "description")
	}
	return nil
}
