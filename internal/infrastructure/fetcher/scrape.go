package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ainewshub/internal/config"
	"ainewshub/internal/domain"
	"ainewshub/internal/source"
	"ainewshub/pkg/httpclient"
)

// ScrapeSource extracts candidates from an HTML page using a prioritized
// stack of extraction strategies.
type ScrapeSource struct {
	name       string
	pageURL    string
	pinned     domain.Category
	strategies []ExtractFunc
	client     httpclient.Client
	userAgent  string
	maxItems   int
	now        func() time.Time
}

var _ source.Source = (*ScrapeSource)(nil)

// NewScrapeSource builds an HTML-scrape source. strategies are tried in
// order; the first non-empty result wins.
func NewScrapeSource(name, pageURL string, pinned domain.Category, strategies []ExtractFunc, client httpclient.Client, userAgent string, maxItems int) *ScrapeSource {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if maxItems <= 0 {
		maxItems = 20
	}
	return &ScrapeSource{
		name:       name,
		pageURL:    pageURL,
		pinned:     pinned,
		strategies: strategies,
		client:     client,
		userAgent:  userAgent,
		maxItems:   maxItems,
		now:        time.Now,
	}
}

// Name identifies the source in logs and stored records.
func (s *ScrapeSource) Name() string {
	return s.name
}

// Fetch retrieves and parses the page. HTML sources rarely expose reliable
// dates, so every candidate gets the fetch time as its publication time.
func (s *ScrapeSource) Fetch(ctx context.Context) ([]source.Candidate, error) {
	resp, err := s.client.Get(ctx, s.pageURL, map[string]string{"User-Agent": s.userAgent})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d", s.pageURL, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.pageURL, err)
	}

	base, err := url.Parse(s.pageURL)
	if err != nil {
		base = nil
	}

	var candidates []source.Candidate
	for _, extract := range s.strategies {
		if candidates = extract(doc, base); len(candidates) > 0 {
			break
		}
	}

	fetchedAt := s.now()
	for i := range candidates {
		candidates[i].Category = s.pinned
		if candidates[i].PublishedAt.IsZero() {
			candidates[i].PublishedAt = fetchedAt
		}
	}

	candidates = source.DedupeByURL(candidates)
	if len(candidates) > s.maxItems {
		candidates = candidates[:s.maxItems]
	}
	return candidates, nil
}

// NewHTMLBuilder returns a source.Builder producing ScrapeSources with the
// strategy stack registered for the configured source name.
func NewHTMLBuilder(client httpclient.Client, userAgent string, maxItems int) source.Builder {
	return func(cfg config.SourceConfig) (source.Source, error) {
		pinned, err := pinnedCategory(cfg.Category)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", cfg.Name, err)
		}
		return NewScrapeSource(cfg.Name, cfg.URL, pinned, StrategiesFor(cfg.Name), client, userAgent, maxItems), nil
	}
}

func pinnedCategory(raw string) (domain.Category, error) {
	if raw == "" {
		return "", nil
	}
	cat := domain.Category(raw)
	if !cat.Valid() {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return cat, nil
}
