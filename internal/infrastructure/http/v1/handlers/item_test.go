package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supplytrack/internal/core/apperror"
	"supplytrack/internal/core/id"
	"supplytrack/internal/domain/supplies/item"
	"supplytrack/internal/infrastructure/http/v1/middleware"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeChecker struct{ exists bool }

func (f fakeChecker) Exists(context.Context, id.ID) (bool, error) { return f.exists, nil }

// fakeItemRepo keeps items in memory behind the item.Repository surface.
type fakeItemRepo struct {
	items       map[id.ID]*item.Item
	batchExists bool
	updateCalls int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[id.ID]*item.Item)}
}

func (f *fakeItemRepo) Create(_ context.Context, it *item.Item) error {
	if it.ID == id.Nil {
		it.AssignID(id.New())
	}
	it.SetCreated(time.Now().UTC())
	f.items[it.ID] = it
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, itemID id.ID) (*item.Item, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepo) GetDetails(ctx context.Context, itemID id.ID) (*item.Details, error) {
	it, err := f.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &item.Details{Item: *it}, nil
}

func (f *fakeItemRepo) ListAll(context.Context) ([]*item.Details, error) {
	out := make([]*item.Details, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, &item.Details{Item: *it})
	}
	return out, nil
}

func (f *fakeItemRepo) ListByStatus(context.Context, item.Status) ([]*item.Details, error) {
	return nil, nil
}

func (f *fakeItemRepo) ListByCategory(context.Context, id.ID) ([]*item.Details, error) {
	return nil, nil
}

func (f *fakeItemRepo) ListByStatusAndCategory(context.Context, item.Status, id.ID) ([]*item.Details, error) {
	return nil, nil
}

func (f *fakeItemRepo) ListExpiringBefore(context.Context, time.Time) ([]*item.Details, error) {
	return nil, nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *item.Item) error {
	f.updateCalls++
	cp := *it
	f.items[it.ID] = &cp
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, itemID id.ID) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeItemRepo) Exists(_ context.Context, itemID id.ID) (bool, error) {
	_, ok := f.items[itemID]
	return ok, nil
}

func (f *fakeItemRepo) ExistsByBatchNumber(context.Context, string) (bool, error) {
	return f.batchExists, nil
}

func newItemTestRouter(repo *fakeItemRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := item.NewService(repo, fakeChecker{exists: true}, fakeChecker{exists: true}, fakeTxManager{})
	handler := NewItemHandler(NewBaseHandler(), svc)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	items := router.Group("/supply-items")
	items.GET("", handler.List)
	items.POST("", handler.Create)
	items.GET("/expiring", handler.Expiring)
	items.GET("/:id", handler.Get)
	items.PATCH("/:id", handler.Update)
	items.DELETE("/:id", handler.Delete)

	return router
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	return map[string]any{
		"name":        "Field rations",
		"batchNumber": "B-100",
		"categoryId":  id.New().String(),
		"quantity":    25,
		"hazardClass": "NON_HAZARDOUS",
	}
}

func TestItemHandler_Create(t *testing.T) {
	repo := newFakeItemRepo()
	router := newItemTestRouter(repo)

	rec := performJSON(t, router, http.MethodPost, "/supply-items", createBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "IN_STOCK", resp["status"])
	assert.Equal(t, "pcs", resp["unit"])
	assert.NotEmpty(t, resp["id"])
}

func TestItemHandler_Create_DuplicateBatch(t *testing.T) {
	repo := newFakeItemRepo()
	repo.batchExists = true
	router := newItemTestRouter(repo)

	rec := performJSON(t, router, http.MethodPost, "/supply-items", createBody())
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeDuplicate, resp["code"])
}

func TestItemHandler_Create_MissingRequiredField(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	body := createBody()
	delete(body, "batchNumber")

	rec := performJSON(t, router, http.MethodPost, "/supply-items", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	rec := performJSON(t, router, http.MethodGet, "/supply-items/"+id.New().String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeNotFound, resp["code"])
}

func TestItemHandler_Get_BadID(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	rec := performJSON(t, router, http.MethodGet, "/supply-items/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemHandler_List_InvalidStatus(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	rec := performJSON(t, router, http.MethodGet, "/supply-items?status=BROKEN", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemHandler_Update_EmptyPatch(t *testing.T) {
	repo := newFakeItemRepo()
	router := newItemTestRouter(repo)

	rec := performJSON(t, router, http.MethodPost, "/supply-items", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = performJSON(t, router, http.MethodPatch, "/supply-items/"+created["id"].(string), map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, repo.updateCalls, "empty patch must not write")
}

func TestItemHandler_Delete(t *testing.T) {
	repo := newFakeItemRepo()
	router := newItemTestRouter(repo)

	rec := performJSON(t, router, http.MethodPost, "/supply-items", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = performJSON(t, router, http.MethodDelete, "/supply-items/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = performJSON(t, router, http.MethodDelete, "/supply-items/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestItemHandler_Expiring(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	rec := performJSON(t, router, http.MethodGet, "/supply-items/expiring?days=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestItemHandler_Create_PastExpiration(t *testing.T) {
	router := newItemTestRouter(newFakeItemRepo())

	body := createBody()
	body["expirationDate"] = time.Now().AddDate(0, 0, -1).Format(time.RFC3339)

	rec := performJSON(t, router, http.MethodPost, "/supply-items", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperror.CodeBusinessRule, resp["code"])
}
