package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"branches-api/internal/model"
)

// identityResolver is implemented by the auth service: it validates a bearer
// token and, depending on the deployment policy, re-checks that the subject
// still exists in the credential store.
type identityResolver interface {
	ResolveIdentity(ctx context.Context, tokenString string) (model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "identity"

type AuthMiddleware struct {
	resolver identityResolver
}

func NewAuthMiddleware(resolver identityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAuth rejects requests without a valid bearer token. The client sees
// one generic 401 body; the actual failure (missing header, expired token,
// bad signature, deleted user) is only logged.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeUnauthorized(w)
			return
		}

		identity, err := m.resolver.ResolveIdentity(r.Context(), token)
		if err != nil {
			logAuthFailure(r, err)
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), identity)))
	})
}

// OptionalAuth attaches an identity when a valid bearer token is present and
// lets the request through either way. Board routes use it so authenticated
// callers get ownership recorded without locking anonymous callers out.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if identity, err := m.resolver.ResolveIdentity(r.Context(), token); err == nil {
				r = r.WithContext(withIdentity(r.Context(), identity))
			}
		}

		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

func withIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", false
	}

	token := strings.TrimSpace(header[7:])
	return token, token != ""
}

func logAuthFailure(r *http.Request, err error) {
	reason := "invalid"
	switch {
	case errors.Is(err, model.ErrTokenExpired):
		reason = "expired"
	case errors.Is(err, model.ErrUserNotFound):
		reason = "user_missing"
	}

	slog.Warn("auth rejected", "path", r.URL.Path, "reason", reason)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = jsonEncode(w, model.ErrorResponse{
		Error: &model.APIError{
			Code:    "UNAUTHORIZED",
			Message: "Invalid credentials",
		},
	})
}
