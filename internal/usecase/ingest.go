package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ainewshub/internal/ports"
	"ainewshub/internal/source"
)

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	PerSource map[string]int
	Fetched   int
	Saved     int
}

// Ingest fans out over all sources, normalizes their candidates and
// submits them to the repository with upsert-ignore-on-conflict semantics.
// Re-running with unchanged sources inserts nothing.
type Ingest struct {
	sources []source.Source
	repo    ports.ArticleRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewIngest constructs the ingestion coordinator.
func NewIngest(sources []source.Source, repo ports.ArticleRepository, logger *slog.Logger) *Ingest {
	return &Ingest{
		sources: sources,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
	}
}

// Run fetches all sources concurrently, waits for every one to finish,
// then persists the concatenated candidates single-threaded. A failing
// source contributes zero candidates and never aborts the run; only a
// repository failure is fatal.
func (p *Ingest) Run(ctx context.Context) (IngestResult, error) {
	batches := make([][]source.Candidate, len(p.sources))

	var wg sync.WaitGroup
	for i, src := range p.sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			candidates, err := src.Fetch(ctx)
			if err != nil {
				p.logger.Warn("source fetch failed", "source", src.Name(), "error", err)
				return
			}
			batches[i] = candidates
		}(i, src)
	}
	wg.Wait()

	result := IngestResult{PerSource: make(map[string]int, len(p.sources))}
	now := p.now()

	for i, src := range p.sources {
		result.PerSource[src.Name()] = len(batches[i])
		result.Fetched += len(batches[i])

		for _, c := range batches[i] {
			article, ok := Normalize(c, src.Name(), now)
			if !ok {
				continue
			}

			created, err := p.repo.Upsert(ctx, article)
			if err != nil {
				return result, fmt.Errorf("upsert %s: %w", article.URL, err)
			}
			if created {
				result.Saved++
			}
		}

		p.logger.Info("source ingested", "source", src.Name(), "fetched", len(batches[i]))
	}

	p.logger.Info("ingestion finished", "fetched", result.Fetched, "saved", result.Saved)
	return result, nil
}
