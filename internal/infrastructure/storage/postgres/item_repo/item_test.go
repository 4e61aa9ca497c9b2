package item_repo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/entity"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/supplies/item"
	"supplytrack/internal/infrastructure/storage/postgres"
)

func newMockRepo(t *testing.T) (*ItemRepo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewItemRepo(postgres.NewTxManager(mock)), mock
}

var detailRowCols = []string{
	"id", "created_at", "updated_at",
	"name", "batch_number", "category_id",
	"quantity", "unit", "expiration_date",
	"hazard_class", "storage_conditions",
	"warehouse_id", "status",
	"category.id", "category.created_at", "category.updated_at",
	"category.name", "category.code", "category.description",
	"category.requires_cold_storage",
	"warehouse_name",
}

func detailRow(rows *pgxmock.Rows, d *item.Details) *pgxmock.Rows {
	return rows.AddRow(
		d.ID, d.CreatedAt, d.UpdatedAt,
		d.Name, d.BatchNumber, d.CategoryID,
		d.Quantity, d.Unit, d.ExpirationDate,
		d.HazardClass, d.StorageConditions,
		d.WarehouseID, d.Status,
		d.Category.ID, d.Category.CreatedAt, d.Category.UpdatedAt,
		d.Category.Name, d.Category.Code, d.Category.Description,
		d.Category.RequiresColdStorage,
		d.WarehouseName,
	)
}

func storedDetails() *item.Details {
	now := time.Now().UTC()
	categoryID := id.New()

	d := &item.Details{
		Item: item.Item{
			BaseEntity:  entity.BaseEntity{ID: id.New(), CreatedAt: now, UpdatedAt: now},
			Name:        "5.56mm rounds",
			BatchNumber: "B-2026-001",
			CategoryID:  categoryID,
			Quantity:    1000,
			Unit:        item.DefaultUnit,
			HazardClass: item.HazardExplosive,
			Status:      item.StatusInStock,
		},
	}
	d.Category.ID = categoryID
	d.Category.CreatedAt = now
	d.Category.UpdatedAt = now
	d.Category.Name = "Ammunition"
	d.Category.Code = "AMMO"
	return d
}

func TestItemRepo_GetDetails(t *testing.T) {
	repo, mock := newMockRepo(t)
	stored := storedDetails()

	mock.ExpectQuery(`SELECT .+ FROM supply_items i JOIN supply_categories c ON c\.id = i\.category_id LEFT JOIN warehouses w ON w\.id = i\.warehouse_id`).
		WithArgs(stored.ID).
		WillReturnRows(detailRow(pgxmock.NewRows(detailRowCols), stored))

	got, err := repo.GetDetails(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "B-2026-001", got.BatchNumber)
	assert.Equal(t, "AMMO", got.Category.Code)
	assert.Nil(t, got.WarehouseName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_GetDetails_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	missing := id.New()

	mock.ExpectQuery(`SELECT .+ FROM supply_items i`).
		WithArgs(missing).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetDetails(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ListByStatus(t *testing.T) {
	repo, mock := newMockRepo(t)
	stored := storedDetails()

	mock.ExpectQuery(`SELECT .+ FROM supply_items i .+ WHERE i\.status = \$1 ORDER BY i\.name ASC`).
		WithArgs(item.StatusInStock).
		WillReturnRows(detailRow(pgxmock.NewRows(detailRowCols), stored))

	got, err := repo.ListByStatus(context.Background(), item.StatusInStock)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, stored.ID, got[0].ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ListExpiringBefore(t *testing.T) {
	repo, mock := newMockRepo(t)
	threshold := time.Now().UTC().AddDate(0, 0, 30)

	mock.ExpectQuery(`SELECT .+ WHERE i\.expiration_date IS NOT NULL AND i\.expiration_date < \$1`).
		WithArgs(threshold).
		WillReturnRows(pgxmock.NewRows(detailRowCols))

	got, err := repo.ListExpiringBefore(context.Background(), threshold)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_Create_AssignsIdentity(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO supply_items`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	it := &item.Item{
		Name:        "Bandages",
		BatchNumber: "B-77",
		CategoryID:  id.New(),
		Quantity:    40,
		Unit:        item.DefaultUnit,
		HazardClass: item.HazardNone,
		Status:      item.StatusInStock,
	}
	require.NoError(t, repo.Create(context.Background(), it))

	assert.NotEqual(t, id.Nil, it.ID)
	assert.False(t, it.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE supply_items`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	it := &item.Item{
		BaseEntity:  entity.BaseEntity{ID: id.New()},
		Name:        "Bandages",
		BatchNumber: "B-77",
		CategoryID:  id.New(),
		Quantity:    40,
		Unit:        item.DefaultUnit,
		HazardClass: item.HazardNone,
		Status:      item.StatusInStock,
	}
	err := repo.Update(context.Background(), it)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepo_ExistsByBatchNumber(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT 1 FROM supply_items WHERE batch_number = \$1`).
		WithArgs("B-2026-001").
		WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByBatchNumber(context.Background(), "B-2026-001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, mock.ExpectationsWereMet())
}
