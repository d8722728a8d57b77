package screener

import (
	"sort"
	"sync"
	"time"

	"github.com/tickerhawk/tickerhawk/Internal/metrics"
	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// Engine runs screening passes. It holds no state across runs; the struct
// only carries wiring (fixed-filter constants, the optional index lookup, and
// the worker count for the per-ticker pass).
type Engine struct {
	Fixed   FixedFilters
	Indexes IndexLookup
	// Workers bounds the concurrent per-ticker evaluations. Values below 2
	// keep the pass sequential. Output ordering never depends on it.
	Workers int
}

// New returns an engine with the canonical fixed filters and a sequential
// per-ticker pass.
func New() *Engine {
	return &Engine{Fixed: DefaultFixedFilters()}
}

type tickerResult struct {
	pick  *types.ClassifiedPick
	stage string // drop stage when pick is nil
}

// Run executes one screening pass: validate configuration, filter and
// classify every ticker, then rank and cap the survivors. Tickers with
// missing metadata, short history, or any failed filter are silently dropped.
// The returned picks are ordered by the setup priority rules, never by
// completion order.
func (e *Engine) Run(params ScreenerParams, series map[string][]types.Candle, meta map[string]types.TickerMeta) (*types.EngineOutput, error) {
	if err := verifyFixedFilters(e.Fixed); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	asOf, _ := time.Parse("2006-01-02", params.AsOfDate)

	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	metrics.ScreensTotal.Inc()
	metrics.TickersScreenedTotal.Add(float64(len(symbols)))

	results := make([]tickerResult, len(symbols))
	if e.Workers > 1 {
		var wg sync.WaitGroup
		jobs := make(chan int)
		for w := 0; w < e.Workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = e.evaluate(&params, symbols[i], series[symbols[i]], meta, asOf)
				}
			}()
		}
		for i := range symbols {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i, sym := range symbols {
			results[i] = e.evaluate(&params, sym, series[sym], meta, asOf)
		}
	}

	// Discovery order is the sorted symbol order, which keeps score ties
	// deterministic regardless of worker scheduling.
	var classified []types.ClassifiedPick
	for _, r := range results {
		if r.pick == nil {
			metrics.FilterDropsTotal.WithLabelValues(r.stage).Inc()
			continue
		}
		metrics.PicksTotal.WithLabelValues(string(r.pick.Setup)).Inc()
		classified = append(classified, *r.pick)
	}

	picks := assemble(classified, params.Leo.Enabled, params.MaxResults)
	return &types.EngineOutput{AsOfDate: params.AsOfDate, Picks: picks}, nil
}

// evaluate runs the full filter+classify pass for one ticker.
func (e *Engine) evaluate(p *ScreenerParams, symbol string, candles []types.Candle, metaMap map[string]types.TickerMeta, asOf time.Time) tickerResult {
	m, ok := metaMap[symbol]
	if !ok {
		return tickerResult{stage: StageNoMeta}
	}

	candles = truncateAsOf(candles, p.AsOfDate)

	if !passesFixedFilters(e.Fixed, candles) {
		return tickerResult{stage: StageFixed}
	}
	if !passesUserFilters(p, m) {
		return tickerResult{stage: StageUser}
	}
	last := candles[len(candles)-1]
	if !passesLeoFilters(p, symbol, last.Close, e.Indexes) {
		return tickerResult{stage: StageLeo}
	}

	snap := computeSnapshot(p, candles, m, asOf)
	if !passesIndicatorFilters(p, snap) {
		return tickerResult{stage: StageIndicator}
	}

	reason, score, matched := classify(p, snap)
	if !matched {
		return tickerResult{stage: StageNoSetup}
	}

	pick := &types.ClassifiedPick{
		Symbol:    symbol,
		Name:      m.Name,
		Sector:    m.Sector,
		Price:     snap.LastClose,
		Volume:    snap.LastVolume,
		MarketCap: m.MarketCap,
		Trend:     snap.Trend,
		Setup:     reason,
		Score:     score,
	}
	if snap.RSI != nil {
		pick.RSI = *snap.RSI
	}
	if snap.RelVolume != nil {
		pick.RelVolume = *snap.RelVolume
	}
	if p.Leo.Enabled {
		pick.Pattern = snap.Pattern
		pick.VolumeShift = snap.VolShift
		pick.StochK = snap.StochK
		if snap.BB != nil {
			pb := snap.BB.PercentB
			pick.PercentB = &pb
		}
		pick.EntryConfirmed = snap.EntryConfirmed
		pick.EarningsWarning = snap.EarningsWarning
		pick.Targets = priceTargets(snap.FVGs, snap.Swings, snap.LastClose)
	}
	return tickerResult{pick: pick}
}

// truncateAsOf drops candles dated after the as-of date. ISO dates compare
// correctly as strings.
func truncateAsOf(candles []types.Candle, asOf string) []types.Candle {
	cut := len(candles)
	for cut > 0 && candles[cut-1].Date > asOf {
		cut--
	}
	return candles[:cut]
}
