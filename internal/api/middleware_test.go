package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice-service/internal/auth"
	"backoffice-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthenticator resolves fixed tokens and sessions.
type stubAuthenticator struct {
	tokens   map[string]*auth.Claims
	sessions map[string]*auth.Session
}

func (s *stubAuthenticator) ValidateToken(tokenString string) (*auth.Claims, error) {
	claims, ok := s.tokens[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *stubAuthenticator) GetSession(_ context.Context, sessionID string) (*auth.Session, error) {
	return s.sessions[sessionID], nil
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authn := &stubAuthenticator{
		tokens: map[string]*auth.Claims{
			"admin-token":   {Username: "admin@example.com", Role: models.RoleAdministrator},
			"manager-token": {Username: "manager@example.com", Role: models.RoleManager},
			"client-token":  {Username: "client@example.com", Role: models.RoleClient},
		},
		sessions: map[string]*auth.Session{
			"sess-1": {ID: "sess-1", UserID: 7, Username: "client@example.com", Role: models.RoleClient},
		},
	}

	router := gin.New()
	router.Use(AuthMiddleware(authn, DefaultRouteRules()))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	router.GET("/health", ok)
	router.GET("/api/admin/roles", ok)
	router.GET("/api/manager/orders", ok)
	router.GET("/api/client/profile", ok)
	router.GET("/profile", ok)
	router.GET("/api/other", ok)
	return router
}

func doRequest(router *gin.Engine, token, cookie, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPublicRouteNeedsNoCredentials(t *testing.T) {
	router := newAuthTestRouter()
	res := doRequest(router, "", "", "/health")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestProtectedRouteWithoutCredentials(t *testing.T) {
	router := newAuthTestRouter()
	res := doRequest(router, "", "", "/api/admin/roles")
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	var body FailureResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "/api/admin/roles", body.Path)
	assert.NotEmpty(t, body.Message)
}

func TestAdminRouteRejectsLowerRoles(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(router, "admin-token", "", "/api/admin/roles").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "manager-token", "", "/api/admin/roles").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "client-token", "", "/api/admin/roles").Code)
}

func TestManagerRouteAllowsAdminAndManager(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(router, "admin-token", "", "/api/manager/orders").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "manager-token", "", "/api/manager/orders").Code)
	assert.Equal(t, http.StatusForbidden, doRequest(router, "client-token", "", "/api/manager/orders").Code)
}

func TestClientRouteAllowsAnyRole(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(router, "admin-token", "", "/api/client/profile").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "client-token", "", "/api/client/profile").Code)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusOK, doRequest(router, "", "sess-1", "/profile").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "", "missing", "/profile").Code)
}

func TestBearerTokenBeatsInvalidCookie(t *testing.T) {
	router := newAuthTestRouter()

	res := doRequest(router, "admin-token", "missing", "/api/admin/roles")
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestUnlistedRouteRequiresAuthentication(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "", "", "/api/other").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "client-token", "", "/api/other").Code)
}

func TestGarbageTokenIsUnauthorized(t *testing.T) {
	router := newAuthTestRouter()

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "nonsense", "", "/api/admin/roles").Code)
}
