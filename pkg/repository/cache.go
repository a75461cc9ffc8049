package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// Get returns the cached payload for key and the time it was stored.
// A missing key is not an error, found reports it.
func (s *Store) Get(ctx context.Context, key string) (payload []byte, fetchedAt time.Time, found bool, err error) {
	var row struct {
		Payload   []byte `db:"payload"`
		FetchedAt int64  `db:"fetched_at"`
	}
	err = s.db.GetContext(ctx, &row, "SELECT payload, fetched_at FROM app_cache WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("get cache entry %q: %w", key, err)
	}
	return row.Payload, time.Unix(row.FetchedAt, 0), true, nil
}

// Set stores the payload under key. Entries with a positive ttl are removed
// by Cleanup once expired; ttl zero keeps the entry until overwritten.
func (s *Store) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO app_cache (key, payload, fetched_at, ttl_seconds)
			VALUES (?, ?, strftime('%s','now'), ?)
			ON CONFLICT(key) DO UPDATE SET
				payload = excluded.payload,
				fetched_at = excluded.fetched_at,
				ttl_seconds = excluded.ttl_seconds
		`
		_, err := s.db.ExecContext(ctx, query, key, payload, int64(ttl.Seconds()))
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set cache entry %q: %w", key, err)}
		}
		return nil
	})
}

// Cleanup removes expired cache entries and validators untouched for the
// given retention period. Returns the number of rows removed.
func (s *Store) Cleanup(ctx context.Context, httpRetention time.Duration) (int64, error) {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	var removed int64
	err := retrier.Do(ctx, func() error {
		res, err := s.db.ExecContext(ctx,
			`DELETE FROM app_cache WHERE ttl_seconds > 0 AND fetched_at + ttl_seconds < strftime('%s','now')`)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("cleanup cache: %w", err)}
		}
		n, _ := res.RowsAffected()

		res, err = s.db.ExecContext(ctx,
			`DELETE FROM http_cache WHERE updated_at < strftime('%s','now') - ?`, int64(httpRetention.Seconds()))
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("cleanup http cache: %w", err)}
		}
		m, _ := res.RowsAffected()

		removed = n + m
		return nil
	})
	return removed, err
}
