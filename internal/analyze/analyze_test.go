package analyze

import (
	"testing"

	"github.com/sakif/gitcompare/internal/github"
)

func repo(name string, stars int, lang string) github.Repository {
	return github.Repository{
		Name:     name,
		Stars:    stars,
		Language: lang,
		HTMLURL:  "https://github.com/octocat/" + name,
	}
}

// =========================================================================
// PROFILE FOLD TESTS
// =========================================================================

func TestProfile_Totals(t *testing.T) {
	p := &github.Profile{Login: "octocat", Name: "The Octocat"}
	repos := []github.Repository{
		repo("a", 5, "Go"),
		repo("b", 50, "Go"),
		repo("c", 1, "Rust"),
	}

	got := Profile(p, repos)

	if got.TotalRepos != 3 {
		t.Errorf("TotalRepos = %d, want 3", got.TotalRepos)
	}
	if got.TotalStars != 56 {
		t.Errorf("TotalStars = %d, want 56", got.TotalStars)
	}

	wantLangs := []struct {
		lang  string
		count int
	}{{"Go", 2}, {"Rust", 1}}
	if len(got.TopLanguages) != len(wantLangs) {
		t.Fatalf("len(TopLanguages) = %d, want %d", len(got.TopLanguages), len(wantLangs))
	}
	for i, want := range wantLangs {
		if got.TopLanguages[i].Language != want.lang || got.TopLanguages[i].Count != want.count {
			t.Errorf("TopLanguages[%d] = %+v, want (%s, %d)",
				i, got.TopLanguages[i], want.lang, want.count)
		}
	}

	wantStars := []int{50, 5, 1}
	for i, want := range wantStars {
		if got.TopProjects[i].Stars != want {
			t.Errorf("TopProjects[%d].Stars = %d, want %d", i, got.TopProjects[i].Stars, want)
		}
	}
}

func TestProfile_DisplayFallbacks(t *testing.T) {
	p := &github.Profile{Login: "octocat"} // no Name, no Bio

	got := Profile(p, nil)

	if got.Name != "octocat" {
		t.Errorf("Name = %q, want fallback to login", got.Name)
	}
	if got.Bio != "No bio" {
		t.Errorf("Bio = %q, want %q", got.Bio, "No bio")
	}
}

func TestProfile_DescriptionFallback(t *testing.T) {
	p := &github.Profile{Login: "octocat"}
	repos := []github.Repository{repo("bare", 1, "Go")} // no description

	got := Profile(p, repos)

	if got.TopProjects[0].Description != "No description" {
		t.Errorf("Description = %q, want %q", got.TopProjects[0].Description, "No description")
	}
}

func TestProfile_EmptyRepos(t *testing.T) {
	// A failed repository fetch reaches the analyzer as an empty slice;
	// the summary must still come out with zeros, not an error.
	p := &github.Profile{Login: "octocat", Followers: 3}

	got := Profile(p, []github.Repository{})

	if got.TotalRepos != 0 || got.TotalStars != 0 {
		t.Errorf("totals = (%d, %d), want zeros", got.TotalRepos, got.TotalStars)
	}
	if len(got.TopLanguages) != 0 {
		t.Errorf("TopLanguages = %v, want empty", got.TopLanguages)
	}
	if len(got.TopProjects) != 0 {
		t.Errorf("TopProjects = %v, want empty", got.TopProjects)
	}
	if got.Followers != 3 {
		t.Errorf("Followers = %d, want profile data preserved", got.Followers)
	}
}

func TestProfile_SkipsRepositoriesWithoutLanguage(t *testing.T) {
	p := &github.Profile{Login: "octocat"}
	repos := []github.Repository{
		repo("a", 0, ""),
		repo("b", 0, "Go"),
		repo("c", 0, ""),
	}

	got := Profile(p, repos)

	if len(got.TopLanguages) != 1 || got.TopLanguages[0].Language != "Go" {
		t.Errorf("TopLanguages = %v, want only Go", got.TopLanguages)
	}
}

func TestProfile_LanguageTiesKeepEncounterOrder(t *testing.T) {
	p := &github.Profile{Login: "octocat"}
	repos := []github.Repository{
		repo("a", 0, "Rust"),
		repo("b", 0, "Go"),
		repo("c", 0, "Go"),
		repo("d", 0, "Rust"),
		repo("e", 0, "Zig"),
	}

	got := Profile(p, repos)

	// Rust and Go both have 2; Rust appeared first, so the stable sort
	// keeps it first.
	want := []string{"Rust", "Go", "Zig"}
	for i, lang := range want {
		if got.TopLanguages[i].Language != lang {
			t.Errorf("TopLanguages[%d] = %q, want %q", i, got.TopLanguages[i].Language, lang)
		}
	}
}

func TestProfile_CapsAtFive(t *testing.T) {
	p := &github.Profile{Login: "octocat"}
	langs := []string{"Go", "Rust", "Zig", "C", "Python", "Ruby", "Lua"}
	var repos []github.Repository
	for i, lang := range langs {
		repos = append(repos, repo(lang+"-repo", i, lang))
	}

	got := Profile(p, repos)

	if len(got.TopLanguages) != 5 {
		t.Errorf("len(TopLanguages) = %d, want 5", len(got.TopLanguages))
	}
	if len(got.TopProjects) != 5 {
		t.Errorf("len(TopProjects) = %d, want 5", len(got.TopProjects))
	}
}

func TestProfile_DoesNotMutateInput(t *testing.T) {
	p := &github.Profile{Login: "octocat"}
	repos := []github.Repository{
		repo("low", 1, "Go"),
		repo("high", 9, "Go"),
	}

	Profile(p, repos)

	if repos[0].Name != "low" || repos[1].Name != "high" {
		t.Error("Profile() reordered the caller's slice")
	}
}

// =========================================================================
// USERNAME EXTRACTION TESTS
// =========================================================================

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/alice/", "alice"},
		{"https://github.com/alice", "alice"},
		{"bob", "bob"},
		{"https://github.com/alice/some-repo", "alice"},
		{"github.com/alice", "alice"},
		{"https://github.com/alice///", "alice"},
		{"", ""},
		{"/", ""},
		// A bare host loses its only slash to trimming, so the marker is
		// never found and the trimmed input falls through as a literal.
		{"https://github.com/", "https://github.com"},
	}

	for _, tt := range tests {
		if got := ExtractUsername(tt.in); got != tt.want {
			t.Errorf("ExtractUsername(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
