package model

// LanguageCount is one entry of a profile's language histogram: how many
// of the user's repositories have this primary language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// Project is a repository reduced to the fields shown in a comparison.
type Project struct {
	Name        string `json:"name"`
	Stars       int    `json:"stars"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// AnalyzedProfile is the derived summary of one GitHub user, computed
// fresh on every compare call and never persisted.
//
// The JSON field names match the wire contract consumed by the frontend:
// "most_used_languages" and "notable_projects" rather than the Go names.
type AnalyzedProfile struct {
	Username     string          `json:"username"`
	Name         string          `json:"name"`
	Bio          string          `json:"bio"`
	Followers    int             `json:"followers"`
	Following    int             `json:"following"`
	TotalRepos   int             `json:"total_repos"`
	TotalStars   int             `json:"total_stars"`
	TopLanguages []LanguageCount `json:"most_used_languages"`
	TopProjects  []Project       `json:"notable_projects"`
	AvatarURL    string          `json:"avatar_url"`
	CreatedAt    string          `json:"created_at"`
}
