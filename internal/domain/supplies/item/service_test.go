package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/entity"
	"supplytrack/internal/core/id"
)

// --- Mocks ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockChecker struct {
	exists bool
	err    error
	called int
}

func (m *mockChecker) Exists(_ context.Context, _ id.ID) (bool, error) {
	m.called++
	return m.exists, m.err
}

type mockRepo struct {
	items map[id.ID]*Item

	batchExists bool
	createCalls int
	updateCalls int
	deleteCalls int

	listAllCalls             int
	listByStatusCalls        int
	listByCategoryCalls      int
	listByBothCalls          int
	expiringBeforeThreshold  time.Time
	expiringBeforeCandidates []*Details
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[id.ID]*Item)}
}

func (m *mockRepo) Create(_ context.Context, it *Item) error {
	m.createCalls++
	if it.ID == id.Nil {
		it.AssignID(id.New())
	}
	it.SetCreated(time.Now().UTC())
	m.items[it.ID] = it
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, itemID id.ID) (*Item, error) {
	it, ok := m.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	cp := *it
	return &cp, nil
}

func (m *mockRepo) GetDetails(ctx context.Context, itemID id.ID) (*Details, error) {
	it, err := m.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &Details{Item: *it}, nil
}

func (m *mockRepo) ListAll(_ context.Context) ([]*Details, error) {
	m.listAllCalls++
	return nil, nil
}

func (m *mockRepo) ListByStatus(_ context.Context, _ Status) ([]*Details, error) {
	m.listByStatusCalls++
	return nil, nil
}

func (m *mockRepo) ListByCategory(_ context.Context, _ id.ID) ([]*Details, error) {
	m.listByCategoryCalls++
	return nil, nil
}

func (m *mockRepo) ListByStatusAndCategory(_ context.Context, _ Status, _ id.ID) ([]*Details, error) {
	m.listByBothCalls++
	return nil, nil
}

func (m *mockRepo) ListExpiringBefore(_ context.Context, threshold time.Time) ([]*Details, error) {
	m.expiringBeforeThreshold = threshold
	var out []*Details
	for _, d := range m.expiringBeforeCandidates {
		if d.ExpirationDate != nil && d.ExpirationDate.Before(threshold) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, it *Item) error {
	m.updateCalls++
	if _, ok := m.items[it.ID]; !ok {
		return apperror.NewNotFound("item", it.ID.String())
	}
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, itemID id.ID) error {
	m.deleteCalls++
	delete(m.items, itemID)
	return nil
}

func (m *mockRepo) Exists(_ context.Context, itemID id.ID) (bool, error) {
	_, ok := m.items[itemID]
	return ok, nil
}

func (m *mockRepo) ExistsByBatchNumber(_ context.Context, _ string) (bool, error) {
	return m.batchExists, nil
}

// --- Helpers ---

func newTestService(repo *mockRepo) (*Service, *mockChecker, *mockChecker) {
	categories := &mockChecker{exists: true}
	warehouses := &mockChecker{exists: true}
	svc := NewService(repo, categories, warehouses, fakeTxManager{})
	return svc, categories, warehouses
}

func validItem() *Item {
	return &Item{
		Name:        "5.56mm rounds",
		BatchNumber: "B-001",
		CategoryID:  id.New(),
		Quantity:    10,
		HazardClass: HazardExplosive,
	}
}

func daysFromNow(days int) *time.Time {
	t := time.Now().AddDate(0, 0, days)
	return &t
}

// --- Create ---

func TestCreate_ForcesInStockAndDefaultUnit(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	in := validItem()
	in.Status = StatusDisposed // must be ignored

	details, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, StatusInStock, details.Status)
	assert.Equal(t, DefaultUnit, details.Unit)
	assert.NotEqual(t, id.Nil, details.ID)
	assert.Equal(t, 10, details.Quantity)
}

func TestCreate_KeepsSuppliedUnit(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	in := validItem()
	in.Unit = "boxes"

	details, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "boxes", details.Unit)
}

func TestCreate_DuplicateBatchNumber(t *testing.T) {
	repo := newMockRepo()
	repo.batchExists = true
	svc, _, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), validItem())
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
	assert.Zero(t, repo.createCalls)
}

func TestCreate_DuplicateBatchCheckedBeforeExpiration(t *testing.T) {
	repo := newMockRepo()
	repo.batchExists = true
	svc, _, _ := newTestService(repo)

	in := validItem()
	in.ExpirationDate = daysFromNow(-1) // also invalid

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err), "batch duplicate must win over expiration rule")
}

func TestCreate_ExpirationRule(t *testing.T) {
	tests := []struct {
		name    string
		expDays int
		wantErr bool
	}{
		{"past date fails", -1, true},
		{"today fails", 0, true},
		{"tomorrow succeeds", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			svc, _, _ := newTestService(repo)

			in := validItem()
			in.ExpirationDate = daysFromNow(tt.expDays)

			_, err := svc.Create(context.Background(), in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsBusinessRule(err))
				assert.Zero(t, repo.createCalls)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreate_MissingCategory(t *testing.T) {
	repo := newMockRepo()
	svc, categories, _ := newTestService(repo)
	categories.exists = false

	_, err := svc.Create(context.Background(), validItem())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Zero(t, repo.createCalls, "nothing persisted on failed reference check")
}

func TestCreate_MissingWarehouse(t *testing.T) {
	repo := newMockRepo()
	svc, _, warehouses := newTestService(repo)
	warehouses.exists = false

	in := validItem()
	warehouseID := id.New()
	in.WarehouseID = &warehouseID

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Zero(t, repo.createCalls)
}

func TestCreate_NoWarehouseSkipsWarehouseCheck(t *testing.T) {
	repo := newMockRepo()
	svc, _, warehouses := newTestService(repo)
	warehouses.exists = false // would fail if consulted

	_, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)
	assert.Zero(t, warehouses.called)
}

func TestCreate_InvalidQuantity(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	in := validItem()
	in.Quantity = 0

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

// --- Update ---

func TestUpdate_PartialOnlyQuantity(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	quantity := 42
	details, err := svc.Update(context.Background(), created.ID, Patch{Quantity: &quantity})
	require.NoError(t, err)

	assert.Equal(t, 42, details.Quantity)
	assert.Equal(t, created.Name, details.Name)
	assert.Equal(t, created.BatchNumber, details.BatchNumber)
	assert.Equal(t, created.Status, details.Status)
	assert.Equal(t, created.CategoryID, details.CategoryID)
}

func TestUpdate_EmptyPatchIsNoOp(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	details, err := svc.Update(context.Background(), created.ID, Patch{})
	require.NoError(t, err)

	assert.Zero(t, repo.updateCalls, "empty patch must not write")
	assert.Equal(t, created.Quantity, details.Quantity)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	quantity := 1
	_, err := svc.Update(context.Background(), id.New(), Patch{Quantity: &quantity})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_ExpirationInPast(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, Patch{ExpirationDate: daysFromNow(-2)})
	require.Error(t, err)
	assert.True(t, apperror.IsBusinessRule(err))
	assert.Zero(t, repo.updateCalls)
}

func TestUpdate_MissingWarehouse(t *testing.T) {
	repo := newMockRepo()
	svc, _, warehouses := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	warehouses.exists = false
	warehouseID := id.New()
	_, err = svc.Update(context.Background(), created.ID, Patch{WarehouseID: &warehouseID})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdate_StatusAcceptedWithoutTransitionChecks(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	// Any enum member is accepted, no state machine
	status := StatusDisposed
	details, err := svc.Update(context.Background(), created.ID, Patch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusDisposed, details.Status)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	status := Status("BROKEN")
	_, err = svc.Update(context.Background(), created.ID, Patch{Status: &status})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

// --- List ---

func TestList_FourLookupPaths(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)
	ctx := context.Background()

	status := StatusInStock
	categoryID := id.New()

	_, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listAllCalls)

	_, err = svc.List(ctx, Filter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listByStatusCalls)

	_, err = svc.List(ctx, Filter{CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listByCategoryCalls)

	_, err = svc.List(ctx, Filter{Status: &status, CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listByBothCalls)
}

// --- Delete ---

func TestDelete_RemovesItem(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	created, err := svc.Create(context.Background(), validItem())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, 1, repo.deleteCalls)

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDelete_NotFound(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	err := svc.Delete(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Zero(t, repo.deleteCalls)
}

// --- FindExpiringSoon ---

func expiringDetails(name string, expDays int) *Details {
	exp := time.Now().AddDate(0, 0, expDays)
	return &Details{Item: Item{
		BaseEntity:     entity.BaseEntity{ID: id.New()},
		Name:           name,
		ExpirationDate: &exp,
	}}
}

func TestFindExpiringSoon_Window(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	repo.expiringBeforeCandidates = []*Details{
		expiringDetails("already expired", -3),
		expiringDetails("expires today", 0),
		expiringDetails("inside window", 15),
		expiringDetails("on threshold day", 30),
		expiringDetails("beyond window", 45),
	}

	result, err := svc.FindExpiringSoon(context.Background(), 30)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, "inside window", result[0].Name)
}

func TestFindExpiringSoon_NegativeThresholdIsEmpty(t *testing.T) {
	repo := newMockRepo()
	svc, _, _ := newTestService(repo)

	repo.expiringBeforeCandidates = []*Details{
		expiringDetails("already expired", -3),
		expiringDetails("inside window", 15),
	}

	result, err := svc.FindExpiringSoon(context.Background(), -5)
	require.NoError(t, err)
	assert.Empty(t, result)
}
