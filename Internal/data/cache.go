package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// CacheProvider wraps another BarProvider with an on-disk SQLite cache keyed
// by (symbol, day). A symbol is served from disk when its newest cached day
// is at or past the freshness cutoff; otherwise the inner provider refreshes
// the whole series.
type CacheProvider struct {
	Inner BarProvider
	DB    *sql.DB
	Log   zerolog.Logger
	// FreshAsOf is the newest completed trading day, ISO format. Cached
	// series ending before it are considered stale.
	FreshAsOf string
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string, inner BarProvider, freshAsOf string, log zerolog.Logger) (*CacheProvider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open candle cache: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		log.Warn().Err(err).Msg("failed to set WAL mode on candle cache")
	}
	schema := `
		CREATE TABLE IF NOT EXISTS candles (
			symbol TEXT NOT NULL,
			day    TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume INTEGER NOT NULL,
			PRIMARY KEY (symbol, day)
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create candle cache schema: %w", err)
	}
	return &CacheProvider{Inner: inner, DB: db, Log: log, FreshAsOf: freshAsOf}, nil
}

// Close releases the underlying database handle.
func (c *CacheProvider) Close() error { return c.DB.Close() }

// Bars serves from the cache when fresh, refreshing through the inner
// provider otherwise.
func (c *CacheProvider) Bars(ctx context.Context, symbol string) ([]types.Candle, error) {
	cached, err := c.read(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 && cached[len(cached)-1].Date >= c.FreshAsOf {
		c.Log.Debug().Str("symbol", symbol).Int("bars", len(cached)).Msg("candle cache hit")
		return cached, nil
	}

	fresh, err := c.Inner.Bars(ctx, symbol)
	if err != nil {
		// A stale cache still beats nothing when the provider is down.
		if len(cached) > 0 {
			c.Log.Warn().Err(err).Str("symbol", symbol).Msg("provider failed, serving stale cache")
			return cached, nil
		}
		return nil, err
	}
	if err := c.write(ctx, symbol, fresh); err != nil {
		c.Log.Warn().Err(err).Str("symbol", symbol).Msg("failed to persist candles to cache")
	}
	return fresh, nil
}

func (c *CacheProvider) read(ctx context.Context, symbol string) ([]types.Candle, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT day, open, high, low, close, volume FROM candles WHERE symbol = ? ORDER BY day ASC`, symbol)
	if err != nil {
		return nil, fmt.Errorf("read candle cache for %s: %w", symbol, err)
	}
	defer rows.Close()

	var out []types.Candle
	for rows.Next() {
		var cd types.Candle
		if err := rows.Scan(&cd.Date, &cd.Open, &cd.High, &cd.Low, &cd.Close, &cd.Volume); err != nil {
			return nil, fmt.Errorf("scan candle cache row for %s: %w", symbol, err)
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

func (c *CacheProvider) write(ctx context.Context, symbol string, candles []types.Candle) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO candles (symbol, day, open, high, low, close, volume) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, cd := range candles {
		if _, err := stmt.ExecContext(ctx, symbol, cd.Date, cd.Open, cd.High, cd.Low, cd.Close, cd.Volume); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
