package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sakif/gitcompare/internal/model"
)

// Authenticator resolves a bearer token to the identity it belongs to.
// Implemented by service.AuthService; declared here so the middleware
// doesn't import the service package.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
}

// contextKey is an unexported type for context keys in this package, so
// no other package can read or shadow the identity value.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth enforces authentication on protected routes.
//
// It reads the token from the "Authorization: Bearer <token>" header,
// resolves it to an identity, and stores the identity in the request
// context. Missing, malformed, invalid, or expired tokens all get the
// same 401 — the response never says which check failed.
func RequireAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			identity, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity placed in the
// context by RequireAuth. Returns (nil, false) on unauthenticated
// requests.
func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	return identity, ok && identity != nil
}

// bearerToken extracts the credential from an Authorization header of the
// form "Bearer <token>". The scheme comparison is case-insensitive per
// RFC 7235.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
}
