// Package github is the client for the upstream GitHub REST API.
//
// It fetches exactly two things per user: the profile record and the
// first page of up to 100 repositories sorted by most-recently-updated.
// No pagination, no retries — a failure surfaces immediately, except the
// repository call, which degrades to an empty list (a profile with zero
// repos beats a failed compare).
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"github.com/sakif/gitcompare/internal/apperror"
)

// DefaultBaseURL is the public GitHub API endpoint. Tests point the
// client at an httptest server instead.
const DefaultBaseURL = "https://api.github.com"

// requestTimeout bounds each upstream call.
const requestTimeout = 10 * time.Second

const acceptHeader = "application/vnd.github.v3+json"

// Profile is the subset of GitHub's /users/{username} response we
// consume. GitHub returns a much larger object; we only decode these.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"created_at"`
}

// Repository is the subset of a /users/{username}/repos entry we consume.
type Repository struct {
	Name        string `json:"name"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
}

// Client fetches user data from the GitHub REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client for the given API base URL.
//
// token is optional: when non-empty it is attached to every request via
// an oauth2 static token source, which lifts GitHub's unauthenticated
// rate limit. With an empty token requests go out unauthenticated, which
// is all the public endpoints require.
func New(baseURL, token string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{Timeout: requestTimeout}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), src)
		httpClient.Timeout = requestTimeout
	}

	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
	}
}

// FetchUser fetches a user's profile and repository list.
//
// Error contract:
//   - any non-200 profile response → apperror.ErrNotFound. This folds
//     upstream 5xx and rate-limit responses into "user not found" — a
//     known inaccuracy kept for compatibility with the existing API
//     contract.
//   - profile call exceeding the 10s bound → apperror.ErrUpstreamTimeout
//   - other transport failures → apperror.ErrUpstream
//   - any repository-call failure → empty slice, logged, not an error
func (c *Client) FetchUser(ctx context.Context, username string) (*Profile, []Repository, error) {
	profile, err := c.fetchProfile(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	repos := c.fetchRepositories(ctx, username)

	return profile, repos, nil
}

func (c *Client) fetchProfile(ctx context.Context, username string) (*Profile, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		if isTimeout(err) {
			return nil, apperror.UpstreamTimeout("GitHub API timeout")
		}
		return nil, apperror.Upstream(fmt.Sprintf("error fetching GitHub data: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NotFound("GitHub user", username)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, apperror.Upstream(fmt.Sprintf("error decoding GitHub profile: %v", err))
	}

	return &profile, nil
}

// fetchRepositories returns the user's repositories, or an empty slice on
// any failure. Partial data (profile with zero repos) is preferred over
// failing the whole operation.
func (c *Client) fetchRepositories(ctx context.Context, username string) []Repository {
	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated",
		c.baseURL, url.PathEscape(username))

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		c.logger.Warn("repository fetch failed, continuing with empty list",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return []Repository{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("repository fetch returned non-200, continuing with empty list",
			slog.String("username", username),
			slog.Int("status", resp.StatusCode),
		)
		return []Repository{}
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		c.logger.Warn("repository fetch decode failed, continuing with empty list",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return []Repository{}
	}

	return repos
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: building request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)

	return c.http.Do(req)
}

// isTimeout reports whether err is a client timeout or deadline
// expiry. url.Error wraps both the http.Client.Timeout case and a
// context deadline.
func isTimeout(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
