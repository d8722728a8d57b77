package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tickerhawk/tickerhawk/Internal/data"
	"github.com/tickerhawk/tickerhawk/Internal/screener"
	"github.com/tickerhawk/tickerhawk/Internal/types"
	"github.com/tickerhawk/tickerhawk/Internal/utils/config"
	"github.com/tickerhawk/tickerhawk/Internal/utils/formatting"
	"github.com/tickerhawk/tickerhawk/Internal/utils/logging"
)

func main() {
	leoMode := flag.Bool("leo", false, "enable Leo reversal classification")
	asOfFlag := flag.String("as-of", "", "as-of date (YYYY-MM-DD), defaults to today")
	maxResults := flag.Int("max", 0, "result cap, overrides config")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Server.LogLevel)

	asOf := *asOfFlag
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	}

	provider, meta, closeData, err := data.BuildProviders(cfg, asOf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build data providers")
	}
	defer closeData()

	params := screener.DefaultParams(asOf)
	if *maxResults > 0 {
		params.MaxResults = *maxResults
	} else if cfg.Screen.MaxResults > 0 {
		params.MaxResults = cfg.Screen.MaxResults
	}
	params.Leo.Enabled = *leoMode

	series, errs := data.LoadUniverse(context.Background(), provider, cfg.Screen.Universe)
	for _, err := range errs {
		log.Warn().Err(err).Msg("symbol fetch failed")
	}

	metaMap := make(map[string]types.TickerMeta, len(cfg.Screen.Universe))
	for _, sym := range cfg.Screen.Universe {
		if m, ok := meta.Meta(sym); ok {
			metaMap[sym] = m
		}
	}

	engine := screener.New()
	engine.Indexes = data.StaticIndexes(cfg.Indexes)
	engine.Workers = cfg.Screen.Workers

	start := time.Now()
	out, err := engine.Run(params, series, metaMap)
	if err != nil {
		log.Fatal().Err(err).Msg("screening run failed")
	}
	log.Info().Int("universe", len(series)).Int("picks", len(out.Picks)).
		Dur("elapsed", time.Since(start)).Msg("screen complete")

	printPicks(out, *leoMode)
}

func printPicks(out *types.EngineOutput, leoMode bool) {
	fmt.Println(formatting.Separator(96))
	fmt.Printf("Screen results as of %s (%d picks)\n", out.AsOfDate, len(out.Picks))
	fmt.Println(formatting.Separator(96))

	if len(out.Picks) == 0 {
		fmt.Println("No setups found.")
		return
	}

	fmt.Printf("%-8s %-26s %10s %10s %10s %7s %9s\n",
		"SYMBOL", "SETUP", "PRICE", "VOLUME", "MKT CAP", "RSI", "REL VOL")
	for _, p := range out.Picks {
		fmt.Printf("%-8s %-26s %10.2f %10s %10s %7.1f %9.2f\n",
			p.Symbol, p.Setup, p.Price, formatting.Volume(p.Volume),
			formatting.MarketCap(p.MarketCap), p.RSI, p.RelVolume)
		if leoMode {
			if p.Pattern != types.PatternNone && p.Pattern != "" {
				fmt.Printf("         pattern=%s entry_confirmed=%v earnings_warning=%v\n",
					p.Pattern, p.EntryConfirmed, p.EarningsWarning)
			}
			for _, t := range p.Targets {
				fmt.Printf("         target %8.2f  confidence %d  (%s)\n", t.Price, t.Confidence, t.Source)
			}
		}
	}
	fmt.Println(formatting.Separator(96))
}
