package ports

import (
	"context"
	"time"

	"ainewshub/internal/domain"
)

// ArticleRepository persists articles for deduplication, push tracking and
// retention sweeps. Upsert reports whether a row was actually created; a
// URL conflict is the expected no-op path, not an error.
type ArticleRepository interface {
	Upsert(ctx context.Context, article domain.Article) (created bool, err error)
	FindUnpushed(ctx context.Context, limit int) ([]domain.Article, error)
	MarkPushed(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// Notifier delivers one formatted message to the external channel.
type Notifier interface {
	Send(ctx context.Context, text string) error
}
