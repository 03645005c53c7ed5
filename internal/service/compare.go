package service

import (
	"context"
	"log/slog"

	"github.com/sakif/gitcompare/internal/analyze"
	"github.com/sakif/gitcompare/internal/apperror"
	"github.com/sakif/gitcompare/internal/compare"
	"github.com/sakif/gitcompare/internal/github"
	"github.com/sakif/gitcompare/internal/model"
)

// ProfileFetcher is the upstream dependency of CompareService,
// implemented by github.Client and by the fakes in the tests.
type ProfileFetcher interface {
	FetchUser(ctx context.Context, username string) (*github.Profile, []github.Repository, error)
}

// CompareService orchestrates a profile comparison: extract usernames,
// fetch both users, analyze, format.
type CompareService struct {
	fetcher ProfileFetcher
	logger  *slog.Logger
}

// NewCompareService creates a CompareService.
func NewCompareService(fetcher ProfileFetcher, logger *slog.Logger) *CompareService {
	return &CompareService{fetcher: fetcher, logger: logger}
}

// CompareResult is the full compare response: the rendered report plus
// both structured summaries, so callers needing either form need not
// re-derive it.
type CompareResult struct {
	ComparisonText string                `json:"comparison_text"`
	User1          model.AnalyzedProfile `json:"user1"`
	User2          model.AnalyzedProfile `json:"user2"`
}

// fetchOutcome carries one upstream fetch across the goroutine join.
type fetchOutcome struct {
	profile *github.Profile
	repos   []github.Repository
	err     error
}

// Compare compares the two users behind url1 and url2.
//
// Same-user detection happens after username extraction and before any
// network call. The two fetches are independent — no shared state, no
// ordering — so they run concurrently and are joined before analysis.
// When both fail, url1's error wins, matching the sequential error order
// of the API contract.
func (s *CompareService) Compare(ctx context.Context, url1, url2 string) (*CompareResult, error) {
	username1 := analyze.ExtractUsername(url1)
	username2 := analyze.ExtractUsername(url2)

	if username1 == "" || username2 == "" {
		return nil, apperror.ValidationFailed("url", "could not extract a username from URL")
	}
	if username1 == username2 {
		return nil, apperror.ValidationFailed("url", "cannot compare the same user")
	}

	fetch := func(username string) chan fetchOutcome {
		ch := make(chan fetchOutcome, 1)
		go func() {
			profile, repos, err := s.fetcher.FetchUser(ctx, username)
			ch <- fetchOutcome{profile: profile, repos: repos, err: err}
		}()
		return ch
	}

	ch1 := fetch(username1)
	ch2 := fetch(username2)
	out1, out2 := <-ch1, <-ch2

	if out1.err != nil {
		return nil, out1.err
	}
	if out2.err != nil {
		return nil, out2.err
	}

	user1 := analyze.Profile(out1.profile, out1.repos)
	user2 := analyze.Profile(out2.profile, out2.repos)

	s.logger.Info("profiles compared",
		slog.String("user1", username1),
		slog.String("user2", username2),
	)

	return &CompareResult{
		ComparisonText: compare.Report(user1, user2),
		User1:          user1,
		User2:          user2,
	}, nil
}
