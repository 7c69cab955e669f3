package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"clausevet/internal/config"
	"clausevet/internal/middleware"
	"clausevet/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authFixture(t *testing.T) (service.AuthService, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := service.NewAuthService(config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "clausevet",
		Users:       []config.UserConfig{{Username: "alice", PasswordHash: string(hash)}},
	})

	result, err := svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	return svc, result.Token
}

func protectedRouter(svc service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(svc))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": middleware.GetUsername(c)})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	svc, token := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc, _ := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization header required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	svc, token := authFixture(t)
	r := protectedRouter(svc)

	for _, header := range []string{token, "Basic " + token, "Bearer"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	svc, _ := authFixture(t)
	r := protectedRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.valid.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired token")
}
