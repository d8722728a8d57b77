package screener

import (
	"time"

	"github.com/tickerhawk/tickerhawk/Internal/indicators"
	"github.com/tickerhawk/tickerhawk/Internal/types"
)

const (
	bbPeriod        = 20
	bbMultiplier    = 2.0
	srLookback      = 20
	breakoutLookback = 20
	volShiftLookback = 20
	fvgLookback      = 50
	swingStrength    = 3
)

// Snapshot is the per-ticker, per-run indicator state the filter and
// classification stages read from. Each field is independently nil when the
// underlying series was too short to compute it.
type Snapshot struct {
	LastClose  float64
	LastVolume int64

	RSI    *float64
	StochK *float64
	ATR    *float64
	ADX    *float64
	SMA20  *float64
	SMA50  *float64
	SMA200 *float64

	BB *indicators.BandsExt

	AvgVolume20 *float64
	RelVolume   *float64

	Trend types.Trend

	// Prior 20-bar extremes, latest bar excluded.
	High20 *float64
	Low20  *float64

	Fib      *indicators.FibHit
	Pattern  types.CandlePattern
	VolShift *types.VolumeShift
	FVGs     []indicators.FVG
	Swings   []indicators.SwingPoint

	EntryConfirmed  bool
	EarningsWarning bool
}

// computeSnapshot evaluates every indicator the classification stage can
// reach. The candle slice is the already as-of-truncated series.
func computeSnapshot(p *ScreenerParams, candles []types.Candle, meta types.TickerMeta, asOf time.Time) *Snapshot {
	last := candles[len(candles)-1]
	closes := indicators.Closes(candles)

	s := &Snapshot{
		LastClose:  last.Close,
		LastVolume: last.Volume,
		RSI:        indicators.RSI(closes, p.RSIPeriod),
		StochK:     indicators.StochasticK(candles, p.StochPeriod),
		ATR:        indicators.ATR(candles, p.ATRPeriod),
		ADX:        indicators.ADX(candles, p.ADXPeriod),
		SMA20:      indicators.SMA(closes, 20),
		SMA50:      indicators.SMA(closes, 50),
		SMA200:     indicators.SMA(closes, 200),
		BB:         indicators.BollingerExt(closes, bbPeriod, bbMultiplier),
		Pattern:    types.PatternNone,
	}

	s.AvgVolume20 = indicators.AvgVolume(candles, 20)
	if s.AvgVolume20 != nil && *s.AvgVolume20 > 0 {
		rel := float64(last.Volume) / *s.AvgVolume20
		s.RelVolume = &rel
	}

	s.Trend = trendLabel(closes, p.TrendLookback)

	if h, l := priorExtremes(candles, srLookback); h != nil {
		s.High20, s.Low20 = h, l
	}

	if p.FibZone != types.FibNone {
		s.Fib = indicators.FibonacciZone(candles, p.FibDirection, p.FibZone)
	}

	if s.ATR != nil && len(candles) >= 2 {
		s.Pattern = indicators.DetectPattern(candles[len(candles)-2], last, *s.ATR)
	}
	s.VolShift = indicators.AnalyzeVolumeShift(candles, volShiftLookback)
	s.FVGs = indicators.DetectFVGs(candles, fvgLookback)
	s.Swings = indicators.SwingHighs(candles, swingStrength)
	s.EntryConfirmed = indicators.EntryConfirmed(candles)
	s.EarningsWarning = indicators.EarningsWarning(meta.NextEarnings, asOf, p.Leo.EarningsWarnDays)

	return s
}

// trendLabel classifies the series direction: up when the close sits above a
// rising lookback SMA, down when below a falling one, sideways otherwise.
func trendLabel(closes []float64, lookback int) types.Trend {
	cur := indicators.SMA(closes, lookback)
	if cur == nil || len(closes) < 2*lookback {
		return types.TrendSideways
	}
	prev := indicators.SMA(closes[:len(closes)-lookback], lookback)
	if prev == nil {
		return types.TrendSideways
	}
	last := closes[len(closes)-1]
	switch {
	case last > *cur && *cur > *prev:
		return types.TrendUp
	case last < *cur && *cur < *prev:
		return types.TrendDown
	default:
		return types.TrendSideways
	}
}

// priorExtremes returns the highest high and lowest low of the lookback bars
// preceding the latest bar.
func priorExtremes(candles []types.Candle, lookback int) (*float64, *float64) {
	if len(candles) < lookback+1 {
		return nil, nil
	}
	window := candles[len(candles)-lookback-1 : len(candles)-1]
	high := window[0].High
	low := window[0].Low
	for _, c := range window[1:] {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return &high, &low
}

// srDistancePct returns the distance, in percent of the last close, to the
// nearer of the prior 20-bar support and resistance. Nil when unavailable.
func (s *Snapshot) srDistancePct() *float64 {
	if s.High20 == nil || s.Low20 == nil || s.LastClose == 0 {
		return nil
	}
	toSupport := abs(s.LastClose-*s.Low20) / s.LastClose * 100
	toResistance := abs(*s.High20-s.LastClose) / s.LastClose * 100
	d := toSupport
	if toResistance < d {
		d = toResistance
	}
	return &d
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
