package data

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// scriptedProvider counts calls and can be told to fail.
type scriptedProvider struct {
	series []types.Candle
	err    error
	calls  int
}

func (s *scriptedProvider) Bars(_ context.Context, _ string) ([]types.Candle, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func testCandles() []types.Candle {
	return []types.Candle{
		{Date: "2024-05-31", Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1_500_000},
		{Date: "2024-06-03", Open: 100.5, High: 102, Low: 100, Close: 101.5, Volume: 1_600_000},
	}
}

func openTestCache(t *testing.T, inner BarProvider, freshAsOf string) *CacheProvider {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), inner, freshAsOf, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	inner := &scriptedProvider{series: testCandles()}
	c := openTestCache(t, inner, "2024-06-03")
	ctx := context.Background()

	got, err := c.Bars(ctx, "ABC")
	if err != nil {
		t.Fatalf("cold Bars: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("cold read made %d provider calls, want 1", inner.calls)
	}
	if !reflect.DeepEqual(got, testCandles()) {
		t.Errorf("cold read = %+v", got)
	}

	// Warm read must come entirely from disk.
	got, err = c.Bars(ctx, "ABC")
	if err != nil {
		t.Fatalf("warm Bars: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("warm read made %d provider calls, want still 1", inner.calls)
	}
	if !reflect.DeepEqual(got, testCandles()) {
		t.Errorf("warm read = %+v", got)
	}
}

func TestCacheRefreshesWhenStale(t *testing.T) {
	inner := &scriptedProvider{series: testCandles()}
	c := openTestCache(t, inner, "2024-06-03")
	ctx := context.Background()

	if _, err := c.Bars(ctx, "ABC"); err != nil {
		t.Fatalf("seed Bars: %v", err)
	}

	// Move the freshness cutoff past the cached series; the next read must go
	// back to the provider.
	c.FreshAsOf = "2024-06-04"
	newer := append(testCandles(), types.Candle{
		Date: "2024-06-04", Open: 101.5, High: 103, Low: 101, Close: 102.5, Volume: 1_700_000,
	})
	inner.series = newer

	got, err := c.Bars(ctx, "ABC")
	if err != nil {
		t.Fatalf("stale Bars: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("stale read made %d provider calls, want 2", inner.calls)
	}
	if !reflect.DeepEqual(got, newer) {
		t.Errorf("stale read = %+v, want refreshed series", got)
	}

	// The refresh was persisted: a warm read at the new cutoff stays on disk.
	got, err = c.Bars(ctx, "ABC")
	if err != nil {
		t.Fatalf("post-refresh Bars: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("post-refresh read made %d provider calls, want still 2", inner.calls)
	}
	if !reflect.DeepEqual(got, newer) {
		t.Errorf("post-refresh read = %+v", got)
	}
}

func TestCacheServesStaleOnProviderFailure(t *testing.T) {
	inner := &scriptedProvider{series: testCandles()}
	c := openTestCache(t, inner, "2024-06-03")
	ctx := context.Background()

	if _, err := c.Bars(ctx, "ABC"); err != nil {
		t.Fatalf("seed Bars: %v", err)
	}

	c.FreshAsOf = "2024-06-04"
	inner.err = errors.New("upstream down")

	got, err := c.Bars(ctx, "ABC")
	if err != nil {
		t.Fatalf("stale-serve Bars: %v", err)
	}
	if !reflect.DeepEqual(got, testCandles()) {
		t.Errorf("stale-serve = %+v, want the cached series", got)
	}
}

func TestCacheColdMissWithFailingProvider(t *testing.T) {
	inner := &scriptedProvider{err: errors.New("upstream down")}
	c := openTestCache(t, inner, "2024-06-03")

	if _, err := c.Bars(context.Background(), "ABC"); err == nil {
		t.Error("cold miss with a failing provider should error")
	}
}
