// Package analyze reduces raw GitHub data into the summary metrics shown
// in a comparison. Everything here is a pure function: no I/O, no clocks,
// deterministic output for identical input.
package analyze

import (
	"sort"
	"strings"

	"github.com/sakif/gitcompare/internal/github"
	"github.com/sakif/gitcompare/internal/model"
)

// topN caps the language and project lists.
const topN = 5

// Profile folds a raw profile and repository list into an
// AnalyzedProfile.
//
// Ordering rules (they make the output deterministic):
//   - languages ranked by repository count, ties broken by first
//     appearance in the input sequence (stable sort)
//   - projects ranked by star count, ties broken by input order
func Profile(p *github.Profile, repos []github.Repository) model.AnalyzedProfile {
	name := p.Name
	if name == "" {
		name = p.Login
	}

	bio := p.Bio
	if bio == "" {
		bio = "No bio"
	}

	totalStars := 0
	for _, repo := range repos {
		totalStars += repo.Stars
	}

	return model.AnalyzedProfile{
		Username:     p.Login,
		Name:         name,
		Bio:          bio,
		Followers:    p.Followers,
		Following:    p.Following,
		TotalRepos:   len(repos),
		TotalStars:   totalStars,
		TopLanguages: topLanguages(repos),
		TopProjects:  topProjects(repos),
		AvatarURL:    p.AvatarURL,
		CreatedAt:    p.CreatedAt,
	}
}

// topLanguages counts repositories by primary language, skipping
// repositories with no language set, and returns the topN languages.
func topLanguages(repos []github.Repository) []model.LanguageCount {
	counts := make(map[string]int)
	order := make([]string, 0) // encounter order, for stable ties

	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if _, seen := counts[repo.Language]; !seen {
			order = append(order, repo.Language)
		}
		counts[repo.Language]++
	}

	langs := make([]model.LanguageCount, 0, len(order))
	for _, lang := range order {
		langs = append(langs, model.LanguageCount{Language: lang, Count: counts[lang]})
	}

	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].Count > langs[j].Count
	})

	if len(langs) > topN {
		langs = langs[:topN]
	}
	return langs
}

// topProjects returns the topN repositories by star count, each reduced
// to the comparison fields.
func topProjects(repos []github.Repository) []model.Project {
	sorted := make([]github.Repository, len(repos))
	copy(sorted, repos)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	projects := make([]model.Project, 0, len(sorted))
	for _, repo := range sorted {
		description := repo.Description
		if description == "" {
			description = "No description"
		}
		projects = append(projects, model.Project{
			Name:        repo.Name,
			Stars:       repo.Stars,
			Description: description,
			URL:         repo.HTMLURL,
		})
	}
	return projects
}

// ExtractUsername pulls a GitHub username out of a profile URL.
//
// Rules: trailing slashes are stripped; if the input contains
// "github.com/", the username is the path segment immediately after the
// last occurrence; otherwise the whole input is treated as the username
// literal (so plain "alice" works too).
func ExtractUsername(raw string) string {
	raw = strings.TrimRight(raw, "/")

	const marker = "github.com/"
	idx := strings.LastIndex(raw, marker)
	if idx < 0 {
		return raw
	}

	rest := raw[idx+len(marker):]
	username, _, _ := strings.Cut(rest, "/")
	return username
}
