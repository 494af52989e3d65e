package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ainewshub/internal/domain"
	"ainewshub/internal/ports"
)

// DispatchResult summarizes one dispatch run.
type DispatchResult struct {
	Attempted int
	Delivered int
}

// Dispatch delivers a bounded batch of unpushed articles to the
// notification channel, one at a time, pacing between sends to stay under
// the channel's rate limit. Failed items stay unpushed and are retried on
// the next scheduled run.
type Dispatch struct {
	repo        ports.ArticleRepository
	notifier    ports.Notifier
	format      func(domain.Article) string
	batchSize   int
	pacing      time.Duration
	sendTimeout time.Duration
	logger      *slog.Logger
	sleep       func(time.Duration)
}

// NewDispatch constructs the dispatcher. format renders one article into
// the channel's markup.
func NewDispatch(repo ports.ArticleRepository, notifier ports.Notifier, format func(domain.Article) string, batchSize int, pacing, sendTimeout time.Duration, logger *slog.Logger) *Dispatch {
	return &Dispatch{
		repo:        repo,
		notifier:    notifier,
		format:      format,
		batchSize:   batchSize,
		pacing:      pacing,
		sendTimeout: sendTimeout,
		logger:      logger,
		sleep:       time.Sleep,
	}
}

// Run selects the batch and sends sequentially. The pacing delay occurs
// only between sends, not before the first or after the last.
func (d *Dispatch) Run(ctx context.Context) (DispatchResult, error) {
	var result DispatchResult

	articles, err := d.repo.FindUnpushed(ctx, d.batchSize)
	if err != nil {
		return result, fmt.Errorf("find unpushed: %w", err)
	}
	if len(articles) == 0 {
		d.logger.Info("no unpushed articles")
		return result, nil
	}

	d.logger.Info("dispatching articles", "count", len(articles))

	for i, article := range articles {
		if i > 0 {
			d.sleep(d.pacing)
		}
		result.Attempted++

		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		err := d.notifier.Send(sendCtx, d.format(article))
		cancel()
		if err != nil {
			d.logger.Warn("send failed, left for next run", "id", article.ID, "url", article.URL, "error", err)
			continue
		}
		result.Delivered++

		if err := d.repo.MarkPushed(ctx, article.ID); err != nil {
			// The message went out; the article will be re-sent next run.
			d.logger.Error("mark pushed failed", "id", article.ID, "error", err)
		}
	}

	d.logger.Info("dispatch finished", "attempted", result.Attempted, "delivered", result.Delivered)
	return result, nil
}
