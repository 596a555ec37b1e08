package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nordlayer-server/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	setupTestDB(t)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	router := gin.New()
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", Login)
		auth.POST("/register", RegisterAdmin)
		auth.GET("/validate", AuthMiddleware(), ValidateToken)
	}
	admin := router.Group("/api/v1/admin", AuthMiddleware(), AdminMiddleware())
	{
		admin.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	}
	return router
}

func extractToken(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestRegisterCreatesFirstAdminOnly(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "Admin@Example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	extractToken(t, w)

	// a second signup must be refused
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "intruder@example.com",
		"password": "letmein12345",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "ADMIN@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := extractToken(t, w)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	claims := decodeData(t, rec)
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newAuthRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":    "admin@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "admin@example.com",
		"password": "wrong horse",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	router := newAuthRouter(t)

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic abc123",
		"garbage token":  "Bearer not.a.jwt",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestAdminMiddlewareRequiresAdminClaim(t *testing.T) {
	router := newAuthRouter(t)

	token, err := generateJWT(7, "viewer@example.com", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
