package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"

	"ainewshub/internal/domain"
	"ainewshub/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists articles into Postgres. The unique index on
// url is what makes ingestion idempotent.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleRepository = (*PostgresRepository)(nil)

// Open connects to Postgres and verifies connectivity.
func Open(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewPostgresRepository wires an existing sql.DB handle.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close releases the underlying connection pool.
func (r *PostgresRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Upsert inserts the article unless its URL is already known. It reports
// whether a row was created; a conflict leaves the stored record untouched.
func (r *PostgresRepository) Upsert(ctx context.Context, article domain.Article) (bool, error) {
	query, args, err := psql.Insert("articles").
		Columns("title", "summary", "url", "source", "category", "published_at", "created_at", "pushed").
		Values(article.Title, article.Summary, article.URL, article.Source, string(article.Category), article.PublishedAt, article.CreatedAt, false).
		Suffix("ON CONFLICT (url) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build upsert: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("upsert article: %w", err)
	}
	return true, nil
}

// FindUnpushed returns up to limit articles not yet delivered, most
// recently published first.
func (r *PostgresRepository) FindUnpushed(ctx context.Context, limit int) ([]domain.Article, error) {
	query, args, err := psql.Select("id", "title", "summary", "url", "source", "category", "published_at", "created_at", "pushed").
		From("articles").
		Where(sq.Eq{"pushed": false}).
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find unpushed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unpushed: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var (
			a   domain.Article
			cat string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.URL, &a.Source, &cat, &a.PublishedAt, &a.CreatedAt, &a.Pushed); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		a.Category = domain.Category(cat)
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// MarkPushed flips the delivery flag for one article. The flag is
// monotonic: it is never reverted.
func (r *PostgresRepository) MarkPushed(ctx context.Context, id int64) error {
	query, args, err := psql.Update("articles").
		Set("pushed", true).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark pushed: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark pushed %d: %w", id, err)
	}
	return nil
}

// DeleteOlderThan removes articles created before cutoff, regardless of
// delivery state, and returns the number of deleted rows.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psql.Delete("articles").
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old articles: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}

// Count returns the total number of stored articles.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").From("articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return total, nil
}
