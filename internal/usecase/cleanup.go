package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ainewshub/internal/ports"
)

// Cleanup deletes articles older than the retention window, independent
// of their delivery state.
type Cleanup struct {
	repo   ports.ArticleRepository
	days   int
	logger *slog.Logger
	now    func() time.Time
}

// NewCleanup constructs the retention sweep.
func NewCleanup(repo ports.ArticleRepository, days int, logger *slog.Logger) *Cleanup {
	return &Cleanup{
		repo:   repo,
		days:   days,
		logger: logger,
		now:    time.Now,
	}
}

// Run removes aged rows and reports how many were deleted and how many
// remain stored.
func (c *Cleanup) Run(ctx context.Context) (deleted, remaining int64, err error) {
	cutoff := c.now().AddDate(0, 0, -c.days)

	deleted, err = c.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, 0, fmt.Errorf("delete older than %s: %w", cutoff.Format(time.RFC3339), err)
	}

	remaining, err = c.repo.Count(ctx)
	if err != nil {
		return deleted, 0, fmt.Errorf("count articles: %w", err)
	}

	c.logger.Info("cleanup finished", "deleted", deleted, "remaining", remaining, "retention_days", c.days)
	return deleted, remaining, nil
}
