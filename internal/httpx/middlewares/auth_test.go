package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/shoply-api/internal/auth"
	"github.com/jcmexdev/shoply-api/internal/auth/domain"
)

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromContext(r.Context())
		assert.True(t, ok, "claims must be in context by the time the handler runs")
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	verifier := verifierFunc(issuer.Verify)
	handler := RequireAuth(verifier)(protectedHandler(t))

	t.Run("missing header is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged token is 401", func(t *testing.T) {
		forged, _ := auth.NewTokenIssuer("other-secret", time.Hour).Issue(domain.User{ID: "u1"})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, _ := issuer.Issue(domain.User{ID: "u1", Role: domain.RoleUser})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	verifier := verifierFunc(issuer.Verify)
	handler := RequireAuth(verifier)(RequireRole(domain.RoleAdmin)(protectedHandler(t)))

	t.Run("user token is 403", func(t *testing.T) {
		token, _ := issuer.Issue(domain.User{ID: "u1", Role: domain.RoleUser})
		req := httptest.NewRequest(http.MethodPatch, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin token passes", func(t *testing.T) {
		token, _ := issuer.Issue(domain.User{ID: "a1", Role: domain.RoleAdmin})
		req := httptest.NewRequest(http.MethodPatch, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

// verifierFunc adapts a bare function to TokenVerifier.
type verifierFunc func(raw string) (auth.Claims, error)

func (f verifierFunc) VerifyToken(raw string) (auth.Claims, error) { return f(raw) }
