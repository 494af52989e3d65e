package source

import (
	"context"
	"fmt"
	"time"

	"ainewshub/internal/config"
	"ainewshub/internal/domain"
)

// Candidate is an unvalidated article-like record extracted from a source
// before normalization. Category is set only by sources pinned to a single
// vendor; everything else is classified during normalization.
type Candidate struct {
	Title       string
	Summary     string
	URL         string
	Category    domain.Category
	PublishedAt time.Time
}

// Source captures a single fetcher variant (HTML scrape, feed, etc.).
// Fetch errors are source-local: the coordinator logs them and treats the
// source as having produced nothing.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// Builder constructs a Source from its config entry.
type Builder func(cfg config.SourceConfig) (Source, error)

// Registry keeps a mapping from source kinds to their builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: map[string]Builder{}}
}

// Register adds or replaces a builder for the given kind.
func (r *Registry) Register(kind string, build Builder) {
	if r.builders == nil {
		r.builders = map[string]Builder{}
	}
	r.builders[kind] = build
}

// Build resolves the builder for cfg.Kind and constructs the source.
func (r *Registry) Build(cfg config.SourceConfig) (Source, error) {
	build, ok := r.builders[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("source kind %q is not registered", cfg.Kind)
	}
	return build(cfg)
}

// DedupeByURL drops candidates whose URL was already seen earlier in the
// batch, guarding against a page listing the same link twice.
func DedupeByURL(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}
