package usecase

import (
	"strings"
	"testing"
	"time"

	"ainewshub/internal/domain"
	"ainewshub/internal/source"
)

func TestNormalizeDropsInvalidCandidates(t *testing.T) {
	t.Parallel()

	now := time.Now()

	cases := []struct {
		name string
		c    source.Candidate
	}{
		{"empty title", source.Candidate{Title: "  ", URL: "https://example.com/a"}},
		{"empty url", source.Candidate{Title: "Title", URL: ""}},
		{"relative url", source.Candidate{Title: "Title", URL: "/news/a"}},
		{"unparseable url", source.Candidate{Title: "Title", URL: "https://ex ample.com/%zz"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, ok := Normalize(tc.c, "example.com", now); ok {
				t.Fatalf("expected candidate %+v to be dropped", tc.c)
			}
		})
	}
}

func TestNormalizeTruncatesSummary(t *testing.T) {
	t.Parallel()

	now := time.Now()
	long := strings.Repeat("x", summaryCap+100)

	article, ok := Normalize(source.Candidate{
		Title:   "Title",
		Summary: long,
		URL:     "https://example.com/a",
	}, "example.com", now)
	if !ok {
		t.Fatal("expected candidate to survive")
	}

	runes := []rune(article.Summary)
	if len(runes) != summaryCap+1 {
		t.Fatalf("expected summary of %d chars, got %d", summaryCap+1, len(runes))
	}
	if runes[len(runes)-1] != '…' {
		t.Fatalf("expected ellipsis marker, got %q", string(runes[len(runes)-1]))
	}
}

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	article, ok := Normalize(source.Candidate{
		Title: "  OpenAI ships something  ",
		URL:   "https://example.com/a",
	}, "example.com", now)
	if !ok {
		t.Fatal("expected candidate to survive")
	}

	if article.Title != "OpenAI ships something" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	if article.Summary != article.Title {
		t.Fatalf("expected summary to fall back to title, got %q", article.Summary)
	}
	if article.Category != domain.CategoryOpenAI {
		t.Fatalf("expected OpenAI category, got %s", article.Category)
	}
	if !article.PublishedAt.Equal(now) {
		t.Fatalf("expected publishedAt to default to %v, got %v", now, article.PublishedAt)
	}
	if !article.CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt %v, got %v", now, article.CreatedAt)
	}
	if article.Pushed {
		t.Fatal("expected new article to be unpushed")
	}
}

func TestNormalizeKeepsPinnedCategory(t *testing.T) {
	t.Parallel()

	article, ok := Normalize(source.Candidate{
		Title:    "OpenAI mentioned in a Google post",
		URL:      "https://blog.google/a",
		Category: domain.CategoryGoogle,
	}, "blog.google", time.Now())
	if !ok {
		t.Fatal("expected candidate to survive")
	}
	if article.Category != domain.CategoryGoogle {
		t.Fatalf("expected pinned Google category, got %s", article.Category)
	}
}
