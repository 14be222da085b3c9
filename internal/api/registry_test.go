package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResource records which operations ran.
type stubResource struct {
	listed   bool
	got      int64
	softDel  []int64
	restored []int64
}

func (s *stubResource) List(c *gin.Context) (PageData, error) {
	s.listed = true
	return PageData{Content: []string{"a", "b"}, Number: 0, TotalPages: 1, TotalElements: 2}, nil
}

func (s *stubResource) Get(c *gin.Context, id int64) (any, error) {
	s.got = id
	return map[string]int64{"id": id}, nil
}

func (s *stubResource) Create(c *gin.Context) (any, error) { return map[string]string{}, nil }

func (s *stubResource) Update(c *gin.Context, id int64) (any, error) {
	return map[string]int64{"id": id}, nil
}

func (s *stubResource) LogicDelete(_ context.Context, id int64) error {
	s.softDel = append(s.softDel, id)
	return nil
}

func (s *stubResource) LogicDeleteBatch(_ context.Context, ids []int64) error {
	s.softDel = append(s.softDel, ids...)
	return nil
}

func (s *stubResource) Delete(_ context.Context, id int64) error { return nil }

func (s *stubResource) DeleteBatch(_ context.Context, ids []int64) error { return nil }

func (s *stubResource) Restore(_ context.Context, id int64) error {
	s.restored = append(s.restored, id)
	return nil
}

func (s *stubResource) RestoreBatch(_ context.Context, ids []int64) error {
	s.restored = append(s.restored, ids...)
	return nil
}

func newRegistryTestRouter(stub *stubResource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry()
	registry.Register("widgets", stub)
	registry.RegisterReadOnly("readonlies", stub)

	router := gin.New()
	registry.Mount(router.Group("/api/admin"))
	return router
}

func TestRegistryDispatchesList(t *testing.T) {
	stub := &stubResource{}
	router := newRegistryTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/widgets", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.True(t, stub.listed)

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["totalElements"])
	assert.Equal(t, float64(1), body["totalPages"])
	assert.Equal(t, float64(0), body["pageNumber"])
}

func TestRegistryUnknownEntity(t *testing.T) {
	router := newRegistryTestRouter(&stubResource{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/gizmos", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Bad Request", body.Error)
	assert.Contains(t, body.Message, "gizmos")
	assert.Contains(t, body.Message, "widgets")
	assert.Equal(t, "/api/admin/gizmos", body.Path)
}

func TestRegistryEntityNameIsCaseInsensitive(t *testing.T) {
	stub := &stubResource{}
	router := newRegistryTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/Widgets", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
}

func TestRegistrySoftDeleteAndRestore(t *testing.T) {
	stub := &stubResource{}
	router := newRegistryTestRouter(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/widgets/5", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []int64{5}, stub.softDel)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/widgets/5/restore", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []int64{5}, stub.restored)
}

func TestRegistryBatchOperations(t *testing.T) {
	stub := &stubResource{}
	router := newRegistryTestRouter(stub)

	body := strings.NewReader(`{"ids":[1,2,3]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/widgets/batch/logic-delete", body)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []int64{1, 2, 3}, stub.softDel)
}

func TestRegistryBatchRejectsEmptyIDs(t *testing.T) {
	router := newRegistryTestRouter(&stubResource{})

	body := strings.NewReader(`{"ids":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/widgets/batch/delete", body)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestRegistryInvalidID(t *testing.T) {
	router := newRegistryTestRouter(&stubResource{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/widgets/abc", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestReadOnlyEntityRejectsWrites(t *testing.T) {
	stub := &stubResource{}
	router := newRegistryTestRouter(stub)

	// reads pass
	req := httptest.NewRequest(http.MethodGet, "/api/admin/readonlies", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)

	// writes are forbidden
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/readonlies/1", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Empty(t, stub.softDel)
}
