// Package data supplies the collaborators the engine consumes: candle
// providers (live, cached, CSV, synthetic), ticker metadata sources, and
// index membership. The engine itself performs no I/O; everything here runs
// before a screening pass and hands the engine plain maps.
package data

import (
	"context"
	"sort"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// BarProvider supplies a daily candle series for one symbol, oldest first.
type BarProvider interface {
	Bars(ctx context.Context, symbol string) ([]types.Candle, error)
}

// MetaSource supplies static ticker metadata. The second return is false when
// the symbol is unknown, which silently excludes it from a run.
type MetaSource interface {
	Meta(symbol string) (types.TickerMeta, bool)
}

// IndexMembership answers symbol-in-index questions for the Leo index filter.
type IndexMembership interface {
	Member(symbol, index string) bool
}

// StaticMeta is a map-backed MetaSource.
type StaticMeta map[string]types.TickerMeta

func (m StaticMeta) Meta(symbol string) (types.TickerMeta, bool) {
	meta, ok := m[symbol]
	return meta, ok
}

// StaticIndexes is a map of index name to member symbols.
type StaticIndexes map[string][]string

func (s StaticIndexes) Member(symbol, index string) bool {
	for _, sym := range s[index] {
		if sym == symbol {
			return true
		}
	}
	return false
}

// LoadUniverse resolves candles for every symbol through the provider,
// skipping symbols whose fetch fails; the screener's soft-exclusion model
// treats those the same as missing history. The error list is returned for
// logging by the caller.
func LoadUniverse(ctx context.Context, provider BarProvider, symbols []string) (map[string][]types.Candle, []error) {
	series := make(map[string][]types.Candle, len(symbols))
	var errs []error
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	for _, sym := range sorted {
		candles, err := provider.Bars(ctx, sym)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(candles) > 0 {
			series[sym] = candles
		}
	}
	return series, errs
}
