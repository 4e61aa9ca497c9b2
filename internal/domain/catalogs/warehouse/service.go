package warehouse

import (
	"context"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/core/tx"
	"supplytrack/internal/domain"
)

// Service provides business logic for the Warehouse catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Warehouse]
	repo Repository
}

// NewService creates a new Warehouse service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "warehouse",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	// Only code uniqueness is enforced here. Name collisions are caught
	// by the storage unique index.
	base.Hooks().OnBeforeCreate(svc.checkCodeUnique)
	base.Hooks().OnBeforeUpdate(svc.checkCodeUnique)

	return svc
}

func (s *Service) checkCodeUnique(ctx context.Context, wh *Warehouse) error {
	if taken, _ := s.codeTaken(ctx, wh.Code, wh.ID); taken {
		return apperror.NewDuplicate("warehouse", "code", wh.Code)
	}
	return nil
}

// codeTaken checks if the code is used by a different warehouse.
func (s *Service) codeTaken(ctx context.Context, code string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
