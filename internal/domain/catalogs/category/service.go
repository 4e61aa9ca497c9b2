package category

import (
	"context"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/core/tx"
	"supplytrack/internal/domain"
)

// Service provides business logic for the Category catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkUnique)
	base.Hooks().OnBeforeUpdate(svc.checkUnique)

	return svc
}

// checkUnique rejects duplicate codes and names. Code is checked first,
// so a record colliding on both reports the code conflict.
func (s *Service) checkUnique(ctx context.Context, cat *Category) error {
	if taken, _ := s.codeTaken(ctx, cat.Code, cat.ID); taken {
		return apperror.NewDuplicate("category", "code", cat.Code)
	}
	if taken, _ := s.nameTaken(ctx, cat.Name, cat.ID); taken {
		return apperror.NewDuplicate("category", "name", cat.Name)
	}
	return nil
}

// codeTaken checks if the code is used by a different category.
func (s *Service) codeTaken(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

// nameTaken checks if the name is used by a different category.
func (s *Service) nameTaken(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
