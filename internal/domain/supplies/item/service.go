package item

import (
	"context"
	"fmt"
	"time"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/core/tx"
	"supplytrack/pkg/logger"
)

// CategoryChecker resolves category references. Satisfied by the
// category service.
type CategoryChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// WarehouseChecker resolves warehouse references. Satisfied by the
// warehouse service.
type WarehouseChecker interface {
	Exists(ctx context.Context, id id.ID) (bool, error)
}

// Service provides business logic for supply items.
// It reads category and warehouse state to validate references but
// never mutates either catalog.
type Service struct {
	repo       Repository
	categories CategoryChecker
	warehouses WarehouseChecker
	txManager  tx.Manager
}

// NewService creates a new item service.
func NewService(repo Repository, categories CategoryChecker, warehouses WarehouseChecker, txManager tx.Manager) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		warehouses: warehouses,
		txManager:  txManager,
	}
}

// Create validates and persists a new item.
//
// Check order is part of the contract: batch number uniqueness, then
// the expiration rule, then the category reference, then the warehouse
// reference. Status is forced to IN_STOCK regardless of input.
func (s *Service) Create(ctx context.Context, item *Item) (*Details, error) {
	item.Status = StatusInStock
	if item.Unit == "" {
		item.Unit = DefaultUnit
	}

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByBatchNumber(ctx, item.BatchNumber)
	if err != nil {
		return nil, fmt.Errorf("check batch number: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("item", "batchNumber", item.BatchNumber)
	}

	if err := validateExpiration(item.ExpirationDate); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, item.CategoryID); err != nil {
		return nil, err
	}

	if item.WarehouseID != nil {
		if err := s.checkWarehouse(ctx, *item.WarehouseID); err != nil {
			return nil, err
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, item); err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "item created",
		"item_id", item.ID.String(),
		"batch_number", item.BatchNumber,
	)

	return s.GetByID(ctx, item.ID)
}

// GetByID retrieves the item projection.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Details, error) {
	details, err := s.repo.GetDetails(ctx, itemID)
	if err != nil {
		return nil, s.normalizeGetErr(err, itemID)
	}
	return details, nil
}

// List retrieves item projections matching the filter. Status and
// category are independently optional, selecting one of four lookup
// paths.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Details, error) {
	switch {
	case filter.Status != nil && filter.CategoryID != nil:
		return s.repo.ListByStatusAndCategory(ctx, *filter.Status, *filter.CategoryID)
	case filter.Status != nil:
		return s.repo.ListByStatus(ctx, *filter.Status)
	case filter.CategoryID != nil:
		return s.repo.ListByCategory(ctx, *filter.CategoryID)
	default:
		return s.repo.ListAll(ctx)
	}
}

// Update applies a partial update. Nil patch fields keep their stored
// values; the category cannot be changed. An empty patch is a no-op
// that still bumps nothing and returns the current projection.
func (s *Service) Update(ctx context.Context, itemID id.ID, patch Patch) (*Details, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, s.normalizeGetErr(err, itemID)
	}

	if patch.IsEmpty() {
		return s.GetByID(ctx, itemID)
	}

	if patch.ExpirationDate != nil {
		if err := validateExpiration(patch.ExpirationDate); err != nil {
			return nil, err
		}
	}
	if patch.WarehouseID != nil {
		if err := s.checkWarehouse(ctx, *patch.WarehouseID); err != nil {
			return nil, err
		}
	}

	applyPatch(item, patch)

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, item); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, itemID)
}

// Delete removes the item.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	exists, err := s.repo.Exists(ctx, itemID)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("item", itemID.String())
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "item deleted", "item_id", itemID.String())
	return nil
}

// FindExpiringSoon returns items whose expiration date falls strictly
// between today and today+daysThreshold. Already-expired items and
// items expiring exactly on the threshold day are excluded. A negative
// threshold yields an empty result.
func (s *Service) FindExpiringSoon(ctx context.Context, daysThreshold int) ([]*Details, error) {
	today := dateOnly(time.Now())
	threshold := today.AddDate(0, 0, daysThreshold)

	candidates, err := s.repo.ListExpiringBefore(ctx, threshold)
	if err != nil {
		return nil, err
	}

	// The repository only bounds the upper end; drop anything already
	// expired or expiring today.
	result := make([]*Details, 0, len(candidates))
	for _, d := range candidates {
		if d.ExpirationDate == nil {
			continue
		}
		if dateOnly(*d.ExpirationDate).After(today) {
			result = append(result, d)
		}
	}
	return result, nil
}

// --- Helpers ---

func (s *Service) normalizeGetErr(err error, itemID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound("item", itemID.String())
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", "item").WithDetail("id", itemID.String())
}

func (s *Service) checkCategory(ctx context.Context, categoryID id.ID) error {
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("category", categoryID.String())
	}
	return nil
}

func (s *Service) checkWarehouse(ctx context.Context, warehouseID id.ID) error {
	exists, err := s.warehouses.Exists(ctx, warehouseID)
	if err != nil {
		return fmt.Errorf("check warehouse: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("warehouse", warehouseID.String())
	}
	return nil
}

// validateExpiration enforces the expiration rule: when set, the date
// must be strictly after today at date granularity. Expiring today is
// rejected.
func validateExpiration(expiration *time.Time) error {
	if expiration == nil {
		return nil
	}
	if !dateOnly(*expiration).After(dateOnly(time.Now())) {
		return apperror.NewBusinessRule("expiration date must be in the future").
			WithDetail("expirationDate", expiration.Format("2006-01-02"))
	}
	return nil
}

func applyPatch(item *Item, patch Patch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.ExpirationDate != nil {
		item.ExpirationDate = patch.ExpirationDate
	}
	if patch.StorageConditions != nil {
		item.StorageConditions = patch.StorageConditions
	}
	if patch.WarehouseID != nil {
		item.WarehouseID = patch.WarehouseID
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.HazardClass != nil {
		item.HazardClass = *patch.HazardClass
	}
}

// dateOnly truncates t to midnight in its own location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
