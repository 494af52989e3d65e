package usecase

import (
	"net/url"
	"strings"
	"time"

	"ainewshub/internal/domain"
	"ainewshub/internal/source"
)

// summaryCap bounds the stored summary length in characters.
const summaryCap = 500

// Normalize converts a raw candidate into the canonical article handed to
// the repository. Candidates with an empty title or a non-absolute URL are
// dropped; the second return value reports whether the candidate survived.
func Normalize(c source.Candidate, sourceName string, now time.Time) (domain.Article, bool) {
	title := strings.TrimSpace(c.Title)
	rawURL := strings.TrimSpace(c.URL)
	if title == "" || rawURL == "" {
		return domain.Article{}, false
	}

	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return domain.Article{}, false
	}

	summary := strings.TrimSpace(c.Summary)
	if summary == "" {
		summary = title
	}
	if runes := []rune(summary); len(runes) > summaryCap {
		summary = string(runes[:summaryCap]) + "…"
	}

	category := c.Category
	if category == "" {
		category = domain.DetectCategory(title, sourceName)
	}

	publishedAt := c.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = now
	}

	return domain.Article{
		Title:       title,
		Summary:     summary,
		URL:         rawURL,
		Source:      sourceName,
		Category:    category,
		PublishedAt: publishedAt,
		CreatedAt:   now,
	}, true
}
