// Package compare renders two analyzed profiles into the markdown-style
// comparison report embedded in the API response.
//
// The layout is part of the wire contract: given identical inputs the
// output is byte-for-byte identical (no timestamps, no map iteration),
// and consumers parse section headers out of it.
package compare

import (
	"fmt"
	"strings"

	"github.com/sakif/gitcompare/internal/model"
)

// Report renders the comparison between two analyzed profiles.
// Pure function; the report never ends with a trailing newline.
func Report(u1, u2 model.AnalyzedProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# GitHub Profile Comparison\n\n")
	fmt.Fprintf(&b, "## %s vs %s\n\n", u1.Name, u2.Name)

	fmt.Fprintf(&b, "### Profile Overview\n")
	fmt.Fprintf(&b, "- **%s**: %d followers, %d following, %d repositories\n",
		u1.Name, u1.Followers, u1.Following, u1.TotalRepos)
	fmt.Fprintf(&b, "- **%s**: %d followers, %d following, %d repositories\n\n",
		u2.Name, u2.Followers, u2.Following, u2.TotalRepos)

	statBlock(&b, "Repository Count", "repositories", u1, u2, u1.TotalRepos, u2.TotalRepos)
	statBlock(&b, "Total Stars", "stars", u1, u2, u1.TotalStars, u2.TotalStars)
	statBlock(&b, "Followers", "followers", u1, u2, u1.Followers, u2.Followers)

	fmt.Fprintf(&b, "### Most Used Languages\n\n")
	fmt.Fprintf(&b, "**%s:**\n", u1.Name)
	languageList(&b, u1.TopLanguages)
	fmt.Fprintf(&b, "\n**%s:**\n", u2.Name)
	languageList(&b, u2.TopLanguages)

	fmt.Fprintf(&b, "\n### Notable Projects\n\n")
	fmt.Fprintf(&b, "**%s's Top Projects:**\n", u1.Name)
	projectList(&b, u1.TopProjects)
	fmt.Fprintf(&b, "\n**%s's Top Projects:**\n", u2.Name)
	projectList(&b, u2.TopProjects)

	fmt.Fprintf(&b, "\n### Bio\n")
	fmt.Fprintf(&b, "- **%s**: %s\n", u1.Name, u1.Bio)
	fmt.Fprintf(&b, "- **%s**: %s\n", u2.Name, u2.Bio)

	return strings.TrimSpace(b.String())
}

// statBlock writes one two-line stat section plus its Winner line.
// The winner is decided by strict greater-than; equal values are a "Tie".
func statBlock(b *strings.Builder, title, unit string, u1, u2 model.AnalyzedProfile, v1, v2 int) {
	fmt.Fprintf(b, "### %s\n", title)
	fmt.Fprintf(b, "- **%s**: %d %s\n", u1.Name, v1, unit)
	fmt.Fprintf(b, "- **%s**: %d %s\n", u2.Name, v2, unit)
	fmt.Fprintf(b, "- **Winner**: %s\n\n", winner(u1.Name, v1, u2.Name, v2))
}

func winner(name1 string, v1 int, name2 string, v2 int) string {
	switch {
	case v1 > v2:
		return name1
	case v2 > v1:
		return name2
	default:
		return "Tie"
	}
}

func languageList(b *strings.Builder, langs []model.LanguageCount) {
	if len(langs) == 0 {
		b.WriteString("- No languages detected\n")
		return
	}
	for _, lang := range langs {
		fmt.Fprintf(b, "- %s: %d repositories\n", lang.Language, lang.Count)
	}
}

func projectList(b *strings.Builder, projects []model.Project) {
	for _, p := range projects {
		fmt.Fprintf(b, "- **%s** (%d stars): %s\n", p.Name, p.Stars, p.Description)
	}
}
