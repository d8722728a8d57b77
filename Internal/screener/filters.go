package screener

import "github.com/tickerhawk/tickerhawk/Internal/types"

// Filter stage labels, used for drop metrics.
const (
	StageFixed     = "fixed"
	StageUser      = "user"
	StageLeo       = "leo"
	StageIndicator = "indicator"
	StageNoMeta    = "no_metadata"
	StageNoSetup   = "no_setup"
)

// IndexLookup answers whether a symbol belongs to a named index. It is only
// consulted when Leo mode's index filter is active; a nil lookup passes
// everything.
type IndexLookup interface {
	Member(symbol, index string) bool
}

// passesFixedFilters applies the non-configurable liquidity/price floors.
// Every comparison is strict: a ticker sitting exactly on a floor fails.
func passesFixedFilters(f FixedFilters, candles []types.Candle) bool {
	if len(candles) < f.MinBars {
		return false
	}
	last := candles[len(candles)-1]
	if !(last.Close > f.MinLastClose) {
		return false
	}
	avg := avgVolumeValue(candles)
	if avg == nil || !(*avg > f.MinAvgVolume20) {
		return false
	}
	rel := float64(last.Volume) / *avg
	return rel > f.MinRelVolume
}

func avgVolumeValue(candles []types.Candle) *float64 {
	if len(candles) < 21 {
		return nil
	}
	sum := 0.0
	for _, c := range candles[len(candles)-21 : len(candles)-1] {
		sum += float64(c.Volume)
	}
	if sum == 0 {
		return nil
	}
	avg := sum / 20
	return &avg
}

// passesUserFilters applies the configurable sector/industry/market-cap
// filters. Empty selectors are wildcards; MaxMarketCap zero is unbounded.
func passesUserFilters(p *ScreenerParams, meta types.TickerMeta) bool {
	if p.Sector != "" && p.Sector != meta.Sector {
		return false
	}
	if p.Industry != "" && p.Industry != meta.Industry {
		return false
	}
	if meta.MarketCap < p.MinMarketCap {
		return false
	}
	if p.MaxMarketCap > 0 && meta.MarketCap > p.MaxMarketCap {
		return false
	}
	return true
}

// passesLeoFilters applies the Leo price floor and index membership. With no
// index selected, or no lookup wired, membership does not filter.
func passesLeoFilters(p *ScreenerParams, symbol string, lastClose float64, indexes IndexLookup) bool {
	if !p.Leo.Enabled {
		return true
	}
	if lastClose < p.Leo.MinPrice {
		return false
	}
	if len(p.Leo.Indexes) == 0 || indexes == nil {
		return true
	}
	for _, idx := range p.Leo.Indexes {
		if indexes.Member(symbol, idx) {
			return true
		}
	}
	return false
}

// passesIndicatorFilters applies the threshold filters that need the computed
// snapshot. Stochastic bounds are skipped in Leo mode, where the oversold and
// overbought regions are exactly what the classifier is hunting for.
func passesIndicatorFilters(p *ScreenerParams, s *Snapshot) bool {
	if s.RSI == nil || *s.RSI < p.RSIMin || *s.RSI > p.RSIMax {
		return false
	}
	if !p.Leo.Enabled {
		if s.StochK == nil || *s.StochK < p.StochMin || *s.StochK > p.StochMax {
			return false
		}
	}
	if p.Trend != types.TrendAny && s.Trend != p.Trend {
		return false
	}
	if s.ADX == nil || *s.ADX < p.ADXMin {
		return false
	}
	if !maCrossHolds(p.MACross, s) {
		return false
	}
	if p.SRProximityPct > 0 {
		d := s.srDistancePct()
		if d == nil || *d > p.SRProximityPct {
			return false
		}
	}
	return true
}

// maCrossHolds checks the requested SMA ordering strictly.
func maCrossHolds(cross types.MACross, s *Snapshot) bool {
	switch cross {
	case types.CrossNone:
		return true
	case types.CrossGolden:
		return s.SMA50 != nil && s.SMA200 != nil && *s.SMA50 > *s.SMA200
	case types.CrossDeath:
		return s.SMA50 != nil && s.SMA200 != nil && *s.SMA50 < *s.SMA200
	case types.CrossBull20_50:
		return s.SMA20 != nil && s.SMA50 != nil && *s.SMA20 > *s.SMA50
	case types.CrossBear20_50:
		return s.SMA20 != nil && s.SMA50 != nil && *s.SMA20 < *s.SMA50
	default:
		return false
	}
}
