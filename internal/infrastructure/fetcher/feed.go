package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"ainewshub/internal/config"
	"ainewshub/internal/domain"
	"ainewshub/internal/source"
	"ainewshub/pkg/httpclient"
)

// FeedSource extracts candidates from an RSS or Atom document. A source
// may carry a secondary HTML fallback invoked only when the feed cannot
// be fetched or parsed at all.
type FeedSource struct {
	name      string
	feedURL   string
	pinned    domain.Category
	client    httpclient.Client
	parser    *gofeed.Parser
	userAgent string
	maxItems  int
	fallback  source.Source
	logger    *slog.Logger
	now       func() time.Time
}

var _ source.Source = (*FeedSource)(nil)

// NewFeedSource builds a feed source; fallback may be nil.
func NewFeedSource(name, feedURL string, pinned domain.Category, client httpclient.Client, userAgent string, maxItems int, fallback source.Source, logger *slog.Logger) *FeedSource {
	if client == nil {
		client = httpclient.NewRestyClient(15 * time.Second)
	}
	if maxItems <= 0 {
		maxItems = 20
	}
	return &FeedSource{
		name:      name,
		feedURL:   feedURL,
		pinned:    pinned,
		client:    client,
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
		maxItems:  maxItems,
		fallback:  fallback,
		logger:    logger,
		now:       time.Now,
	}
}

// Name identifies the source in logs and stored records.
func (s *FeedSource) Name() string {
	return s.name
}

// Fetch downloads and parses the feed, mapping the most recent entries.
// Entries missing a title or a link are skipped.
func (s *FeedSource) Fetch(ctx context.Context) ([]source.Candidate, error) {
	feed, err := s.fetchFeed(ctx)
	if err != nil {
		if s.fallback == nil {
			return nil, err
		}
		if s.logger != nil {
			s.logger.Warn("feed failed, falling back to html scrape", "source", s.name, "error", err)
		}
		return s.fallback.Fetch(ctx)
	}

	fetchedAt := s.now()
	candidates := make([]source.Candidate, 0, s.maxItems)
	for _, item := range feed.Items {
		if len(candidates) == s.maxItems {
			break
		}
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		if summary == "" {
			summary = item.Title
		}

		publishedAt := fetchedAt
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		candidates = append(candidates, source.Candidate{
			Title:       item.Title,
			Summary:     summary,
			URL:         item.Link,
			Category:    s.pinned,
			PublishedAt: publishedAt,
		})
	}

	return source.DedupeByURL(candidates), nil
}

func (s *FeedSource) fetchFeed(ctx context.Context) (*gofeed.Feed, error) {
	resp, err := s.client.Get(ctx, s.feedURL, map[string]string{"User-Agent": s.userAgent})
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", s.feedURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: HTTP %d", s.feedURL, resp.StatusCode())
	}

	feed, err := s.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.feedURL, err)
	}
	return feed, nil
}

// NewFeedBuilder returns a source.Builder producing FeedSources. Entries
// with a fallbackUrl get a generic HTML scrape fallback.
func NewFeedBuilder(client httpclient.Client, userAgent string, maxItems int, logger *slog.Logger) source.Builder {
	return func(cfg config.SourceConfig) (source.Source, error) {
		pinned, err := pinnedCategory(cfg.Category)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", cfg.Name, err)
		}

		var fallback source.Source
		if cfg.FallbackURL != "" {
			fallback = NewScrapeSource(cfg.Name, cfg.FallbackURL, pinned, StrategiesFor(cfg.Name), client, userAgent, maxItems)
		}

		return NewFeedSource(cfg.Name, cfg.URL, pinned, client, userAgent, maxItems, fallback, logger), nil
	}
}
