package domain

import "strings"

// Category is the closed set of vendor buckets an article can land in.
type Category string

const (
	CategoryClaude Category = "Claude"
	CategoryOpenAI Category = "OpenAI"
	CategoryGoogle Category = "Google"
	CategoryOther  Category = "Other"
)

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryClaude, CategoryOpenAI, CategoryGoogle, CategoryOther:
		return true
	}
	return false
}

// DetectCategory maps a title and source identifier to a Category using
// case-insensitive substring markers. Evaluation order is fixed: a title
// naming several vendors classifies by the first matching group.
func DetectCategory(title, source string) Category {
	t := strings.ToLower(title)
	s := strings.ToLower(source)

	switch {
	case strings.Contains(t, "claude") || strings.Contains(s, "anthropic"):
		return CategoryClaude
	case strings.Contains(t, "openai") || strings.Contains(t, "chatgpt") || strings.Contains(t, "gpt"):
		return CategoryOpenAI
	case strings.Contains(t, "google") || strings.Contains(t, "gemini") ||
		strings.Contains(t, "deepmind") || strings.Contains(s, "google"):
		return CategoryGoogle
	}
	return CategoryOther
}
