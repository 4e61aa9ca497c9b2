// Package item_repo provides the PostgreSQL repository for supply items.
package item_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/supplies/item"
	"supplytrack/internal/infrastructure/storage/postgres"
)

// Compile-time check that ItemRepo implements item.Repository.
var _ item.Repository = (*ItemRepo)(nil)

const itemsTable = "supply_items"

// detailCols are the projection columns: the item row, the full
// category joined in (scany nested-struct aliases) and the warehouse
// reduced to its name.
var detailCols = []string{
	"i.id", "i.created_at", "i.updated_at",
	"i.name", "i.batch_number", "i.category_id",
	"i.quantity", "i.unit", "i.expiration_date",
	"i.hazard_class", "i.storage_conditions",
	"i.warehouse_id", "i.status",
	`c.id AS "category.id"`,
	`c.created_at AS "category.created_at"`,
	`c.updated_at AS "category.updated_at"`,
	`c.name AS "category.name"`,
	`c.code AS "category.code"`,
	`c.description AS "category.description"`,
	`c.requires_cold_storage AS "category.requires_cold_storage"`,
	"w.name AS warehouse_name",
}

// ItemRepo is the PostgreSQL repository for supply items.
type ItemRepo struct {
	cols []string
	txm  *postgres.TxManager
}

// NewItemRepo creates an item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{
		cols: postgres.ExtractDBColumns[item.Item](),
		txm:  txm,
	}
}

func (r *ItemRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ItemRepo) querier(ctx context.Context) postgres.Querier {
	return r.txm.GetQuerier(ctx)
}

// detailSelect builds the projection query. The category join is an
// inner join: an item whose category was deleted out from under it
// does not resolve.
func (r *ItemRepo) detailSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(detailCols...).
		From(itemsTable + " i").
		Join("supply_categories c ON c.id = i.category_id").
		LeftJoin("warehouses w ON w.id = i.warehouse_id")
}

// Create inserts a new item. ID and timestamps are assigned here.
func (r *ItemRepo) Create(ctx context.Context, it *item.Item) error {
	if it.ID == id.Nil {
		it.AssignID(id.New())
	}
	it.SetCreated(time.Now().UTC())

	data := postgres.StructToMap(it)

	q := r.builder().
		Insert(itemsTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.querier(ctx).Exec(ctx, sql, args...); err != nil {
		if mapped := postgres.TranslateError(err, "item"); mapped != err {
			return mapped
		}
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// GetByID retrieves the raw item record.
func (r *ItemRepo) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	q := r.builder().
		Select(r.cols...).
		From(itemsTable).
		Where(squirrel.Eq{"id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var it item.Item
	if err := pgxscan.Get(ctx, r.querier(ctx), &it, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemID.String())
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &it, nil
}

// GetDetails retrieves the item projection by ID.
func (r *ItemRepo) GetDetails(ctx context.Context, itemID id.ID) (*item.Details, error) {
	q := r.detailSelect().
		Where(squirrel.Eq{"i.id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var details item.Details
	if err := pgxscan.Get(ctx, r.querier(ctx), &details, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", itemID.String())
		}
		return nil, fmt.Errorf("get item details: %w", err)
	}

	return &details, nil
}

// ListAll retrieves all item projections.
func (r *ItemRepo) ListAll(ctx context.Context) ([]*item.Details, error) {
	return r.selectDetails(ctx, r.detailSelect())
}

// ListByStatus retrieves projections with the given status.
func (r *ItemRepo) ListByStatus(ctx context.Context, status item.Status) ([]*item.Details, error) {
	return r.selectDetails(ctx, r.detailSelect().Where(squirrel.Eq{"i.status": status}))
}

// ListByCategory retrieves projections referencing the category.
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID id.ID) ([]*item.Details, error) {
	return r.selectDetails(ctx, r.detailSelect().Where(squirrel.Eq{"i.category_id": categoryID}))
}

// ListByStatusAndCategory retrieves projections matching both.
func (r *ItemRepo) ListByStatusAndCategory(ctx context.Context, status item.Status, categoryID id.ID) ([]*item.Details, error) {
	q := r.detailSelect().
		Where(squirrel.Eq{"i.status": status}).
		Where(squirrel.Eq{"i.category_id": categoryID})
	return r.selectDetails(ctx, q)
}

// ListExpiringBefore retrieves projections whose expiration date is set
// and earlier than the threshold.
func (r *ItemRepo) ListExpiringBefore(ctx context.Context, threshold time.Time) ([]*item.Details, error) {
	q := r.detailSelect().
		Where(squirrel.NotEq{"i.expiration_date": nil}).
		Where(squirrel.Lt{"i.expiration_date": threshold})
	return r.selectDetails(ctx, q)
}

func (r *ItemRepo) selectDetails(ctx context.Context, q squirrel.SelectBuilder) ([]*item.Details, error) {
	sql, args, err := q.OrderBy("i.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*item.Details
	if err := pgxscan.Select(ctx, r.querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

// Update overwrites the stored item. ID and created_at are never
// touched; updated_at is bumped.
func (r *ItemRepo) Update(ctx context.Context, it *item.Item) error {
	it.SetUpdatedAt(time.Now().UTC())

	data := postgres.StructToMap(it)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(itemsTable).
		SetMap(data).
		Where(squirrel.Eq{"id": it.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if mapped := postgres.TranslateError(err, "item"); mapped != err {
			return mapped
		}
		return fmt.Errorf("update item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", it.ID.String())
	}

	return nil
}

// Delete removes the item permanently.
func (r *ItemRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := r.builder().
		Delete(itemsTable).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID.String())
	}

	return nil
}

// Exists checks if an item with the given ID exists.
func (r *ItemRepo) Exists(ctx context.Context, itemID id.ID) (bool, error) {
	q := r.builder().
		Select("1").
		From(itemsTable).
		Where(squirrel.Eq{"id": itemID}).
		Limit(1)

	return r.exists(ctx, q)
}

// ExistsByBatchNumber checks if a batch number is already taken.
func (r *ItemRepo) ExistsByBatchNumber(ctx context.Context, batchNumber string) (bool, error) {
	q := r.builder().
		Select("1").
		From(itemsTable).
		Where(squirrel.Eq{"batch_number": batchNumber}).
		Limit(1)

	return r.exists(ctx, q)
}

func (r *ItemRepo) exists(ctx context.Context, q squirrel.SelectBuilder) (bool, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	err = r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}
