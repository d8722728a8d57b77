package data

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickerhawk/tickerhawk/Internal/types"
	"github.com/tickerhawk/tickerhawk/Internal/utils/config"
)

// BuildProviders assembles the provider chain and metadata source for the
// configured data mode. The returned closer releases cache resources and is
// safe to call on a nil-cache chain.
func BuildProviders(cfg *config.Config, asOf string, log zerolog.Logger) (BarProvider, MetaSource, func() error, error) {
	closer := func() error { return nil }

	var meta MetaSource
	if cfg.Data.MetaCSV != "" {
		loaded, err := LoadMetaCSV(cfg.Data.MetaCSV)
		if err != nil {
			return nil, nil, nil, err
		}
		meta = loaded
	} else {
		meta = placeholderMeta(cfg.Screen.Universe)
	}

	switch cfg.Data.Mode {
	case "sample":
		return NewSampleProvider(300, asOf), meta, closer, nil
	case "csv":
		return &CSVProvider{Dir: cfg.Data.CSVDir}, meta, closer, nil
	case "alpaca":
		inner := NewAlpacaProvider(log)
		cache, err := OpenCache(cfg.Data.CachePath, inner, asOf, log)
		if err != nil {
			return nil, nil, nil, err
		}
		return cache, meta, cache.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown data mode %q", cfg.Data.Mode)
	}
}

// placeholderMeta fabricates permissive metadata for universes that ship
// without a metadata file, so sample and CSV modes work out of the box.
func placeholderMeta(symbols []string) StaticMeta {
	meta := make(StaticMeta, len(symbols))
	earnings := time.Now().UTC().AddDate(0, 0, 45).Format("2006-01-02")
	for _, sym := range symbols {
		meta[sym] = types.TickerMeta{
			Symbol:       sym,
			Name:         sym,
			Sector:       "Technology",
			Industry:     "Software",
			MarketCap:    50e9,
			NextEarnings: earnings,
		}
	}
	return meta
}
