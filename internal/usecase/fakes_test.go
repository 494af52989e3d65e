package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ainewshub/internal/domain"
	"ainewshub/internal/ports"
	"ainewshub/internal/source"
)

// memRepo is an in-memory ports.ArticleRepository with url-unique upserts.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	byURL  map[string]*domain.Article
}

var _ ports.ArticleRepository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{byURL: map[string]*domain.Article{}}
}

func (r *memRepo) Upsert(_ context.Context, article domain.Article) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byURL[article.URL]; exists {
		return false, nil
	}
	r.nextID++
	article.ID = r.nextID
	r.byURL[article.URL] = &article
	return true, nil
}

func (r *memRepo) FindUnpushed(_ context.Context, limit int) ([]domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Article
	for _, a := range r.byURL {
		if !a.Pushed {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) MarkPushed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.byURL {
		if a.ID == id {
			a.Pushed = true
			return nil
		}
	}
	return fmt.Errorf("article %d not found", id)
}

func (r *memRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for url, a := range r.byURL {
		if a.CreatedAt.Before(cutoff) {
			delete(r.byURL, url)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byURL)), nil
}

func (r *memRepo) get(url string) (domain.Article, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byURL[url]
	if !ok {
		return domain.Article{}, false
	}
	return *a, true
}

// fakeSource returns fixed candidates or a fixed error.
type fakeSource struct {
	name       string
	candidates []source.Candidate
	err        error
}

var _ source.Source = (*fakeSource)(nil)

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Fetch(context.Context) ([]source.Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

// fakeNotifier records sent messages and can fail specific calls.
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []string
	calls  int
	failOn map[int]bool
}

var _ ports.Notifier = (*fakeNotifier)(nil)

func (n *fakeNotifier) Send(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls++
	if n.failOn[n.calls] {
		return fmt.Errorf("send rejected on call %d", n.calls)
	}
	n.sent = append(n.sent, text)
	return nil
}
