package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/SscSPs/purchase_converter_app/internal/middleware"
	"github.com/SscSPs/purchase_converter_app/internal/platform/keys"
	"github.com/SscSPs/purchase_converter_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthTestRouter wires a protected route the way the real app does:
// AuthMiddleware on the group, RequireScope on the route.
func newAuthTestRouter(t *testing.T, keyFunc jwt.Keyfunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", middleware.AuthMiddleware(keyFunc))
	api.GET("/open", func(c *gin.Context) {
		clientID, _ := middleware.GetClientIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"client_id": clientID})
	})
	api.GET("/scoped", middleware.RequireScope("purchase"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

// newKeyFuncForProvider builds a jwt.Keyfunc from the provider's own JWKS
// document, the same path main uses when no remote JWKS URL is configured.
func newKeyFuncForProvider(t *testing.T, provider *keys.Provider) jwt.Keyfunc {
	t.Helper()
	doc, err := provider.JWKS()
	require.NoError(t, err)
	jwks, err := keyfunc.NewJSON(json.RawMessage(doc))
	require.NoError(t, err)
	return jwks.Keyfunc
}

func signToken(t *testing.T, provider *keys.Provider, scopes []string, expiry time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWT("client1", scopes, "test-jti", provider.Private(), provider.KeyID(), expiry, "purchase-converter-app")
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	provider, err := keys.NewProvider("")
	require.NoError(t, err)
	router := newAuthTestRouter(t, newKeyFuncForProvider(t, provider))

	t.Run("missing authorization header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authorization header required")
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.Header.Set("Authorization", "Basic abc123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Bearer")
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, provider, []string{"purchase"}, -time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token has expired")
	})

	t.Run("token signed by a different key", func(t *testing.T) {
		otherProvider, err := keys.NewProvider("")
		require.NoError(t, err)
		forged := signToken(t, otherProvider, []string{"purchase"}, time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches handler with client identity", func(t *testing.T) {
		valid := signToken(t, provider, []string{"purchase"}, time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/open", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "client1")
	})
}

func TestRequireScope(t *testing.T) {
	provider, err := keys.NewProvider("")
	require.NoError(t, err)
	router := newAuthTestRouter(t, newKeyFuncForProvider(t, provider))

	t.Run("valid token without the scope is forbidden", func(t *testing.T) {
		noScope := signToken(t, provider, nil, time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/scoped", nil)
		req.Header.Set("Authorization", "Bearer "+noScope)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "purchase")
	})

	t.Run("valid token with a different scope is forbidden", func(t *testing.T) {
		wrongScope := signToken(t, provider, []string{"reporting"}, time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/scoped", nil)
		req.Header.Set("Authorization", "Bearer "+wrongScope)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token with the scope passes", func(t *testing.T) {
		withScope := signToken(t, provider, []string{"purchase"}, time.Minute)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/scoped", nil)
		req.Header.Set("Authorization", "Bearer "+withScope)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
