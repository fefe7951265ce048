package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pulsehub/internal/config"
	"pulsehub/pkg"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantUserID, r.Context().Value(UserIDKey))
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAcceptsBearerToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	token, err := pkg.GenerateToken(jwt.MapClaims{"sub": "user-1"}, "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWT(cfg)(protectedHandler(t, "user-1")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAcceptsCookie(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	token, err := pkg.GenerateToken(jwt.MapClaims{"sub": "user-2"}, "secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	rec := httptest.NewRecorder()

	JWT(cfg)(protectedHandler(t, "user-2")).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rec := httptest.NewRecorder()

	called := false
	JWT(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestJWTRejectsForgedToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	token, err := pkg.GenerateToken(jwt.MapClaims{"sub": "user-3"}, "other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	called := false
	JWT(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
