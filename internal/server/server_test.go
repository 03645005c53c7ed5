package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// newTestServer builds a full Server over an in-memory database and a
// stub GitHub API, and returns its router for httptest-driven requests.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	stub := http.NewServeMux()
	stub.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":"alice","name":"Alice","followers":10}`))
	})
	stub.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"a","stargazers_count":5,"language":"Go"}]`))
	})
	stub.HandleFunc("/users/bob", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":"bob","name":"Bob","followers":20}`))
	})
	stub.HandleFunc("/users/bob/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	upstream := httptest.NewServer(stub)
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	srv, err := New(Config{
		Port:         0,
		DBPath:       ":memory:",
		JWTSecret:    "test-secret-at-least-16-chars!!",
		GitHubAPIURL: upstream.URL,
		CORSOrigins:  []string{"http://localhost:5173"},
	}, logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		srv.db.Close()
		srv.authLimiter.Stop()
	})

	return srv
}

func do(t *testing.T, srv *Server, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	srv.router.ServeHTTP(rr, req)
	return rr
}

func TestServer_FullFlow(t *testing.T) {
	srv := newTestServer(t)

	// Root banner
	root := do(t, srv, http.MethodGet, "/", "", "")
	if root.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", root.Code)
	}

	// Compare without a token is rejected
	anon := do(t, srv, http.MethodPost, "/compare",
		`{"url1":"alice","url2":"bob"}`, "")
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated compare status = %d, want 401", anon.Code)
	}

	// Signup
	signup := do(t, srv, http.MethodPost, "/signup",
		`{"username":"alice","email":"alice@example.com","password":"s3cret"}`, "")
	if signup.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201: %s", signup.Code, signup.Body.String())
	}

	// Login
	login := do(t, srv, http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"s3cret"}`, "")
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", login.Code, login.Body.String())
	}
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(login.Body).Decode(&loginBody); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}

	// Authenticated compare against the stub upstream
	cmp := do(t, srv, http.MethodPost, "/compare",
		`{"url1":"https://github.com/alice","url2":"https://github.com/bob"}`,
		loginBody.AccessToken)
	if cmp.Code != http.StatusOK {
		t.Fatalf("compare status = %d, want 200: %s", cmp.Code, cmp.Body.String())
	}
	var cmpBody struct {
		ComparisonText string `json:"comparison_text"`
		User1          struct {
			TotalStars int `json:"total_stars"`
		} `json:"user1"`
	}
	if err := json.NewDecoder(cmp.Body).Decode(&cmpBody); err != nil {
		t.Fatalf("decoding compare response: %v", err)
	}
	if cmpBody.User1.TotalStars != 5 {
		t.Errorf("user1 total_stars = %d, want 5", cmpBody.User1.TotalStars)
	}
	if cmpBody.ComparisonText == "" {
		t.Error("comparison_text is empty")
	}

	// /me with the same token
	me := do(t, srv, http.MethodGet, "/me", "", loginBody.AccessToken)
	if me.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", me.Code)
	}
}

func TestServer_RequiresJWTSecret(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	_, err := New(Config{DBPath: ":memory:"}, logger)
	if err == nil {
		t.Fatal("New() should fail without a JWT secret")
	}
}
