package domain

import "time"

// Article is the persisted news record. URL is the sole deduplication
// identity: two candidates sharing a URL are the same article, and the
// first successful insert wins.
type Article struct {
	ID          int64
	Title       string
	Summary     string
	URL         string
	Source      string
	Category    Category
	PublishedAt time.Time
	CreatedAt   time.Time
	Pushed      bool
}
