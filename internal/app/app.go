package app

import (
	"context"
	"fmt"
	"log/slog"

	"ainewshub/internal/config"
	"ainewshub/internal/infrastructure/fetcher"
	"ainewshub/internal/infrastructure/storage"
	"ainewshub/internal/infrastructure/telegram"
	"ainewshub/internal/source"
	"ainewshub/internal/usecase"
	"ainewshub/pkg/httpclient"
)

// App wires configuration to the repository, sources and use cases. Each
// binary constructs one App and runs a single pipeline.
type App struct {
	cfg     config.Config
	logger  *slog.Logger
	repo    *storage.PostgresRepository
	sources []source.Source
	sender  *telegram.Sender
}

// New connects to the store and builds all configured sources. A store
// that cannot be reached is fatal; the caller exits non-zero.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	repo, err := storage.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}

	client := httpclient.NewRestyClient(cfg.Ingest.Timeout())

	registry := source.NewRegistry()
	registry.Register("html", fetcher.NewHTMLBuilder(client, cfg.Ingest.UserAgent, cfg.Ingest.MaxPerSource))
	registry.Register("feed", fetcher.NewFeedBuilder(client, cfg.Ingest.UserAgent, cfg.Ingest.MaxPerSource, logger.With("component", "fetcher")))

	sources := make([]source.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		src, err := registry.Build(sc)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("build source %s: %w", sc.Name, err)
		}
		sources = append(sources, src)
	}

	sender := telegram.NewSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.APIBaseURL, cfg.Dispatch.Timeout())

	return &App{
		cfg:     cfg,
		logger:  logger,
		repo:    repo,
		sources: sources,
		sender:  sender,
	}, nil
}

// Close releases the store connection.
func (a *App) Close() {
	if a.repo != nil {
		_ = a.repo.Close()
	}
}

// Ingest runs the fetch-normalize-store pipeline once.
func (a *App) Ingest(ctx context.Context) error {
	ingest := usecase.NewIngest(a.sources, a.repo, a.logger.With("component", "ingest"))
	_, err := ingest.Run(ctx)
	return err
}

// Dispatch runs one notification batch. Missing Telegram credentials make
// this a logged no-op, not an error.
func (a *App) Dispatch(ctx context.Context) error {
	if !a.sender.Configured() {
		a.logger.Warn("telegram bot token or chat id not configured, skipping dispatch")
		return nil
	}

	dispatch := usecase.NewDispatch(
		a.repo,
		a.sender,
		telegram.FormatArticle,
		a.cfg.Dispatch.BatchSize,
		a.cfg.Dispatch.Pacing(),
		a.cfg.Dispatch.Timeout(),
		a.logger.With("component", "dispatch"),
	)
	_, err := dispatch.Run(ctx)
	return err
}

// Cleanup runs the retention sweep once.
func (a *App) Cleanup(ctx context.Context) error {
	cleanup := usecase.NewCleanup(a.repo, a.cfg.Retention.Days, a.logger.With("component", "cleanup"))
	_, _, err := cleanup.Run(ctx)
	return err
}
