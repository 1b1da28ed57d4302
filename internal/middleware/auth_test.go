package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"branches-api/internal/model"
)

type fakeResolver struct {
	identity model.Identity
	err      error
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, _ string) (model.Identity, error) {
	return f.identity, f.err
}

func identityEcho(t *testing.T, expectIdentity bool) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := IdentityFromContext(r.Context())
		require.Equal(t, expectIdentity, ok)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(&fakeResolver{identity: model.Identity{Email: "a@x.com"}})
	handler := mw.RequireAuth(identityEcho(t, true))

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuthResolverErrors(t *testing.T) {
	for _, err := range []error{model.ErrTokenExpired, model.ErrTokenInvalid, model.ErrUserNotFound} {
		mw := NewAuthMiddleware(&fakeResolver{err: err})
		handler := mw.RequireAuth(identityEcho(t, true))

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t,
			`{"error":{"code":"UNAUTHORIZED","message":"Invalid credentials"}}`,
			rec.Body.String(), "401 body must not distinguish %v", err)
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	mw := NewAuthMiddleware(&fakeResolver{identity: model.Identity{Email: "a@x.com"}})

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "a@x.com", identity.Email)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous passes through without identity", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeResolver{identity: model.Identity{Email: "a@x.com"}})
		handler := mw.OptionalAuth(identityEcho(t, false))

		req := httptest.NewRequest(http.MethodGet, "/boards", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeResolver{identity: model.Identity{Email: "a@x.com"}})
		handler := mw.OptionalAuth(identityEcho(t, true))

		req := httptest.NewRequest(http.MethodGet, "/boards", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad token still passes through anonymously", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeResolver{err: model.ErrTokenInvalid})
		handler := mw.OptionalAuth(identityEcho(t, false))

		req := httptest.NewRequest(http.MethodGet, "/boards", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
