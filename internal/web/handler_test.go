package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"backoffice-service/internal/api"
	"backoffice-service/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gadget struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required"`
}

// gadgetResource records what the form handlers feed through the
// registry.
type gadgetResource struct {
	created []gadget
	updated map[int64]gadget
}

func newGadgetResource() *gadgetResource {
	return &gadgetResource{updated: map[int64]gadget{}}
}

func (r *gadgetResource) List(c *gin.Context) (api.PageData, error) {
	return api.PageData{Content: []gadget{{ID: 1, Name: "sprocket"}}, TotalPages: 1, TotalElements: 1}, nil
}

func (r *gadgetResource) Get(c *gin.Context, id int64) (any, error) {
	return gadget{ID: id, Name: "sprocket"}, nil
}

func (r *gadgetResource) Create(c *gin.Context) (any, error) {
	var g gadget
	if err := c.ShouldBindJSON(&g); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	r.created = append(r.created, g)
	return g, nil
}

func (r *gadgetResource) Update(c *gin.Context, id int64) (any, error) {
	var g gadget
	if err := c.ShouldBindJSON(&g); err != nil {
		return nil, apperr.Validation("validation failed",
			apperr.FieldError{Field: "name", Message: "must not be blank"})
	}
	g.ID = id
	r.updated[id] = g
	return g, nil
}

func (r *gadgetResource) LogicDelete(_ context.Context, id int64) error { return nil }
func (r *gadgetResource) LogicDeleteBatch(_ context.Context, ids []int64) error { return nil }
func (r *gadgetResource) Delete(_ context.Context, id int64) error { return nil }
func (r *gadgetResource) DeleteBatch(_ context.Context, ids []int64) error { return nil }
func (r *gadgetResource) Restore(_ context.Context, id int64) error { return nil }
func (r *gadgetResource) RestoreBatch(_ context.Context, ids []int64) error { return nil }

func newWebTestRouter(t *testing.T) (*gin.Engine, *gadgetResource) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	stub := newGadgetResource()
	registry := api.NewRegistry()
	registry.Register("gadgets", stub)

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.tmpl")
	NewHandler(nil, registry).RegisterRoutes(router)
	return router, stub
}

func postForm(router *gin.Engine, target, payload string) *httptest.ResponseRecorder {
	form := url.Values{"payload": {payload}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestAdminNewFormRenders(t *testing.T) {
	router, _ := newWebTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/gadgets/new", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `action="/admin/gadgets"`)
	assert.Contains(t, res.Body.String(), "<textarea")
}

func TestAdminCreateSubmitsDocument(t *testing.T) {
	router, stub := newWebTestRouter(t)

	res := postForm(router, "/admin/gadgets", `{"name":"flux capacitor"}`)

	require.Equal(t, http.StatusFound, res.Code)
	assert.Contains(t, res.Header().Get("Location"), "/admin/gadgets?flash=")
	require.Len(t, stub.created, 1)
	assert.Equal(t, "flux capacitor", stub.created[0].Name)
}

func TestAdminCreateInvalidDocumentRerendersForm(t *testing.T) {
	router, stub := newWebTestRouter(t)

	res := postForm(router, "/admin/gadgets", `{}`)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "validation failed")
	// the submitted document survives the round trip
	assert.Contains(t, res.Body.String(), "{}")
	assert.Empty(t, stub.created)
}

func TestAdminEditFormPrefillsRecord(t *testing.T) {
	router, _ := newWebTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/gadgets/7/edit", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `action="/admin/gadgets/7"`)
	assert.Contains(t, res.Body.String(), "sprocket")
}

func TestAdminUpdateSubmitsDocument(t *testing.T) {
	router, stub := newWebTestRouter(t)

	res := postForm(router, "/admin/gadgets/7", `{"name":"renamed"}`)

	require.Equal(t, http.StatusFound, res.Code)
	require.Contains(t, stub.updated, int64(7))
	assert.Equal(t, "renamed", stub.updated[7].Name)
}

func TestAdminDetailRenders(t *testing.T) {
	router, _ := newWebTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/gadgets/7", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "gadgets #7")
	assert.Contains(t, res.Body.String(), "sprocket")
}

func TestAdminCreateUnknownEntityRedirects(t *testing.T) {
	router, _ := newWebTestRouter(t)

	res := postForm(router, "/admin/gizmos", `{"name":"x"}`)

	assert.Equal(t, http.StatusFound, res.Code)
	assert.Contains(t, res.Header().Get("Location"), "/admin/gizmos?flash=")
}
