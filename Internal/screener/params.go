// Package screener implements the screening/classification engine: it turns
// per-ticker candle series plus static metadata into a ranked, capped list of
// classified picks. The engine is stateless; everything it needs arrives as
// arguments and every run is a one-shot computational pass.
package screener

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// LeoParams is the reversal-focused sub-methodology layered on top of the
// standard predicates.
type LeoParams struct {
	Enabled            bool                  `json:"enabled"`
	Indexes            []string              `json:"indexes,omitempty"`
	MinPrice           float64               `json:"min_price" validate:"gte=0"`
	AllowedPatterns    []types.CandlePattern `json:"allowed_patterns,omitempty"`
	RequireVolumeShift bool                  `json:"require_volume_shift"`
	BollingerBounce    bool                  `json:"bollinger_bounce"`
	OversoldStoch      float64               `json:"oversold_stoch" validate:"gte=0,lte=100"`
	OverboughtStoch    float64               `json:"overbought_stoch" validate:"gte=0,lte=100"`
	EarningsWarnDays   int                   `json:"earnings_warn_days" validate:"gte=0"`
	Timeframe          string                `json:"timeframe"`
}

// ScreenerParams is the full configuration for one screening run. Build it
// with DefaultParams and override; Validate rejects invalid combinations
// before any ticker is touched.
type ScreenerParams struct {
	AsOfDate   string `json:"as_of_date" validate:"required"`
	MaxResults int    `json:"max_results" validate:"gt=0"`

	Sector       string  `json:"sector,omitempty"`   // "" matches any sector
	Industry     string  `json:"industry,omitempty"` // "" matches any industry
	MinMarketCap float64 `json:"min_market_cap" validate:"gte=0"`
	MaxMarketCap float64 `json:"max_market_cap" validate:"gte=0"` // 0 means unbounded

	RSIPeriod     int     `json:"rsi_period" validate:"gt=0"`
	RSIMin        float64 `json:"rsi_min" validate:"gte=0,lte=100"`
	RSIMax        float64 `json:"rsi_max" validate:"gte=0,lte=100"`
	StochPeriod   int     `json:"stoch_period" validate:"gt=0"`
	StochMin      float64 `json:"stoch_min" validate:"gte=0,lte=100"`
	StochMax      float64 `json:"stoch_max" validate:"gte=0,lte=100"`
	ADXPeriod     int     `json:"adx_period" validate:"gt=0"`
	ADXMin        float64 `json:"adx_min" validate:"gte=0"`
	ATRPeriod     int     `json:"atr_period" validate:"gt=0"`
	TrendLookback int     `json:"trend_lookback" validate:"gt=0"`

	Trend        types.Trend        `json:"trend,omitempty"`
	MACross      types.MACross      `json:"ma_cross,omitempty"`
	FibDirection types.FibDirection `json:"fib_direction,omitempty"`
	FibZone      types.FibZone      `json:"fib_zone,omitempty"`

	// SRProximityPct caps the allowed distance to the nearest 20-bar
	// support/resistance, in percent. Zero disables the proximity filter.
	SRProximityPct float64 `json:"sr_proximity_pct" validate:"gte=0"`

	Leo LeoParams `json:"leo"`
}

// DefaultAllowedPatterns is the Leo pattern allow-list used when the caller
// does not narrow it.
func DefaultAllowedPatterns() []types.CandlePattern {
	return []types.CandlePattern{
		types.PatternDoji,
		types.PatternGravestoneDoji,
		types.PatternHammer,
		types.PatternLongLowerShadow,
		types.PatternShootingStar,
		types.PatternBullishEngulfing,
		types.PatternBearishEngulfing,
	}
}

// DefaultParams returns a wide-open parameter set for the given as-of date:
// every configurable filter at its pass-through setting.
func DefaultParams(asOf string) ScreenerParams {
	return ScreenerParams{
		AsOfDate:      asOf,
		MaxResults:    50,
		RSIPeriod:     14,
		RSIMin:        0,
		RSIMax:        100,
		StochPeriod:   14,
		StochMin:      0,
		StochMax:      100,
		ADXPeriod:     14,
		ADXMin:        0,
		ATRPeriod:     14,
		TrendLookback: 20,
		Leo: LeoParams{
			AllowedPatterns:    DefaultAllowedPatterns(),
			RequireVolumeShift: true,
			BollingerBounce:    true,
			OversoldStoch:      20,
			OverboughtStoch:    80,
			EarningsWarnDays:   7,
			Timeframe:          "1Day",
		},
	}
}

var validate = validator.New()

var validTrends = map[types.Trend]bool{
	types.TrendAny: true, types.TrendUp: true, types.TrendDown: true, types.TrendSideways: true,
}

var validCrosses = map[types.MACross]bool{
	types.CrossNone: true, types.CrossGolden: true, types.CrossDeath: true,
	types.CrossBull20_50: true, types.CrossBear20_50: true,
}

var validFibZones = map[types.FibZone]bool{
	types.FibNone: true, types.Fib382: true, types.Fib500: true,
	types.Fib618: true, types.FibExt1272: true, types.FibExt1618: true,
}

var validPatterns = map[types.CandlePattern]bool{
	types.PatternDoji: true, types.PatternGravestoneDoji: true,
	types.PatternHammer: true, types.PatternLongLowerShadow: true,
	types.PatternShootingStar: true, types.PatternBullishEngulfing: true,
	types.PatternBearishEngulfing: true,
}

// Validate checks field ranges, cross-field consistency, and enum membership.
// Any failure is a fatal configuration error for the run.
func (p *ScreenerParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid screener params: %w", err)
	}
	if _, err := time.Parse("2006-01-02", p.AsOfDate); err != nil {
		return fmt.Errorf("invalid screener params: as_of_date %q is not an ISO date", p.AsOfDate)
	}
	if p.MaxMarketCap > 0 && p.MinMarketCap > p.MaxMarketCap {
		return fmt.Errorf("invalid screener params: min_market_cap %.0f exceeds max_market_cap %.0f", p.MinMarketCap, p.MaxMarketCap)
	}
	if p.RSIMin > p.RSIMax {
		return fmt.Errorf("invalid screener params: rsi_min %.1f exceeds rsi_max %.1f", p.RSIMin, p.RSIMax)
	}
	if p.StochMin > p.StochMax {
		return fmt.Errorf("invalid screener params: stoch_min %.1f exceeds stoch_max %.1f", p.StochMin, p.StochMax)
	}
	if !validTrends[p.Trend] {
		return fmt.Errorf("invalid screener params: unknown trend %q", p.Trend)
	}
	if !validCrosses[p.MACross] {
		return fmt.Errorf("invalid screener params: unknown ma_cross %q", p.MACross)
	}
	if !validFibZones[p.FibZone] {
		return fmt.Errorf("invalid screener params: unknown fib_zone %q", p.FibZone)
	}
	if p.FibZone != types.FibNone && p.FibDirection != types.FibFromHigh && p.FibDirection != types.FibFromLow {
		return fmt.Errorf("invalid screener params: fib_zone set without a fib_direction")
	}
	if p.Leo.OversoldStoch > p.Leo.OverboughtStoch {
		return fmt.Errorf("invalid screener params: leo oversold_stoch %.1f exceeds overbought_stoch %.1f", p.Leo.OversoldStoch, p.Leo.OverboughtStoch)
	}
	for _, pat := range p.Leo.AllowedPatterns {
		if !validPatterns[pat] {
			return fmt.Errorf("invalid screener params: unknown pattern %q in allow-list", pat)
		}
	}
	return nil
}

// patternAllowed reports whether the pattern is in the Leo allow-list.
func (l *LeoParams) patternAllowed(p types.CandlePattern) bool {
	for _, allowed := range l.AllowedPatterns {
		if allowed == p {
			return true
		}
	}
	return false
}
