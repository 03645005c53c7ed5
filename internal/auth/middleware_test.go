package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sakif/gitcompare/internal/model"
)

// fakeAuthenticator resolves a single known token to a fixed identity.
type fakeAuthenticator struct {
	validToken string
	identity   *model.Identity
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	if token == f.validToken {
		return f.identity, nil
	}
	return nil, errors.New("unauthorized")
}

func newProtectedHandler(t *testing.T, authn Authenticator) (http.Handler, *bool, **model.Identity) {
	t.Helper()

	var called bool
	var seen *model.Identity
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return RequireAuth(authn)(inner), &called, &seen
}

func TestRequireAuth_ValidToken(t *testing.T) {
	identity := &model.Identity{ID: "id-1", Username: "alice", Email: "alice@example.com"}
	h, called, seen := newProtectedHandler(t, &fakeAuthenticator{
		validToken: "good-token",
		identity:   identity,
	})

	req := httptest.NewRequest(http.MethodPost, "/compare", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !*called {
		t.Fatal("inner handler was not called")
	}
	if *seen == nil || (*seen).Email != "alice@example.com" {
		t.Errorf("IdentityFromContext() = %+v, want the authenticated identity", *seen)
	}
}

func TestRequireAuth_LowercaseScheme(t *testing.T) {
	identity := &model.Identity{ID: "id-1", Username: "alice", Email: "alice@example.com"}
	h, _, _ := newProtectedHandler(t, &fakeAuthenticator{
		validToken: "good-token",
		identity:   identity,
	})

	// RFC 7235: the auth scheme is case-insensitive.
	req := httptest.NewRequest(http.MethodPost, "/compare", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for lowercase scheme", rr.Code)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	h, called, _ := newProtectedHandler(t, &fakeAuthenticator{
		validToken: "good-token",
		identity:   &model.Identity{ID: "id-1"},
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"empty credential", "Bearer "},
		{"invalid token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*called = false

			req := httptest.NewRequest(http.MethodPost, "/compare", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			if *called {
				t.Error("inner handler ran on an unauthorized request")
			}
		})
	}
}

func TestIdentityFromContext_Anonymous(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("IdentityFromContext() reported an identity on an empty context")
	}
}
