package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// HTTPCache returns the stored validators for a feed URL. Unknown URLs
// yield empty validators, not an error.
func (s *Store) HTTPCache(ctx context.Context, feedURL string) (etag, lastModified string, err error) {
	var row struct {
		ETag         string `db:"etag"`
		LastModified string `db:"last_modified"`
	}
	err = s.db.GetContext(ctx, &row, "SELECT etag, last_modified FROM http_cache WHERE url = ?", feedURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("get http cache for %s: %w", feedURL, err)
	}
	return row.ETag, row.LastModified, nil
}

// SetHTTPCache stores the validators received with the last 200 answer.
func (s *Store) SetHTTPCache(ctx context.Context, feedURL, etag, lastModified string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO http_cache (url, etag, last_modified, updated_at)
			VALUES (?, ?, ?, strftime('%s','now'))
			ON CONFLICT(url) DO UPDATE SET
				etag = excluded.etag,
				last_modified = excluded.last_modified,
				updated_at = excluded.updated_at
		`
		_, err := s.db.ExecContext(ctx, query, feedURL, etag, lastModified)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set http cache for %s: %w", feedURL, err)}
		}
		return nil
	})
}
