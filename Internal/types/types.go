package types

import "time"

// Candle is one completed trading session, dates ascending within a series.
type Candle struct {
	Date   string  `json:"date"` // ISO calendar date, YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Day parses the candle date. Returns the zero time on malformed input.
func (c Candle) Day() time.Time {
	t, _ := time.Parse("2006-01-02", c.Date)
	return t
}

// Bullish reports whether the session closed above its open.
func (c Candle) Bullish() bool { return c.Close > c.Open }

// Bearish reports whether the session closed below its open.
func (c Candle) Bearish() bool { return c.Close < c.Open }

// Body returns the absolute open-to-close distance.
func (c Candle) Body() float64 {
	if c.Close >= c.Open {
		return c.Close - c.Open
	}
	return c.Open - c.Close
}

// UpperShadow returns the distance from the body top to the high.
func (c Candle) UpperShadow() float64 {
	if c.Close >= c.Open {
		return c.High - c.Close
	}
	return c.High - c.Open
}

// LowerShadow returns the distance from the body bottom to the low.
func (c Candle) LowerShadow() float64 {
	if c.Close >= c.Open {
		return c.Open - c.Low
	}
	return c.Close - c.Low
}

// TickerMeta holds the static facts about a symbol. The engine treats it as
// read-only input; a symbol without metadata is skipped.
type TickerMeta struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	Industry     string  `json:"industry"`
	MarketCap    float64 `json:"market_cap"`
	NextEarnings string  `json:"next_earnings,omitempty"` // ISO date, "" when unknown
	LastBarDate  string  `json:"last_bar_date,omitempty"`
}

// Trend labels the direction of the recent price series.
type Trend string

const (
	TrendUp       Trend = "up"
	TrendDown     Trend = "down"
	TrendSideways Trend = "sideways"
	TrendAny      Trend = "" // wildcard in filter params
)

// MACross names an SMA ordering the user can require.
type MACross string

const (
	CrossNone       MACross = ""
	CrossGolden     MACross = "golden" // SMA50 above SMA200
	CrossDeath      MACross = "death"  // SMA50 below SMA200
	CrossBull20_50  MACross = "bull_20_50"
	CrossBear20_50  MACross = "bear_20_50"
)

// FibDirection selects which swing anchors the retracement grid.
type FibDirection string

const (
	FibFromHigh FibDirection = "from_high" // uptrend swing, retracement measured down
	FibFromLow  FibDirection = "from_low"  // downtrend swing, retracement measured up
)

// FibZone names one retracement or extension level.
type FibZone string

const (
	FibNone    FibZone = ""
	Fib382     FibZone = "38.2"
	Fib500     FibZone = "50"
	Fib618     FibZone = "61.8"
	FibExt1272 FibZone = "127"
	FibExt1618 FibZone = "161.8"
)

// CandlePattern is the single label the detector assigns to the latest candle.
type CandlePattern string

const (
	PatternNone             CandlePattern = "none"
	PatternDoji             CandlePattern = "doji"
	PatternGravestoneDoji   CandlePattern = "gravestone_doji"
	PatternHammer           CandlePattern = "hammer"
	PatternLongLowerShadow  CandlePattern = "long_lower_shadow"
	PatternShootingStar     CandlePattern = "shooting_star"
	PatternBullishEngulfing CandlePattern = "bullish_engulfing"
	PatternBearishEngulfing CandlePattern = "bearish_engulfing"
)

// VolumeShiftDirection summarizes which side of the tape dominated.
type VolumeShiftDirection string

const (
	ShiftBuyer   VolumeShiftDirection = "buyer"
	ShiftSeller  VolumeShiftDirection = "seller"
	ShiftNeutral VolumeShiftDirection = "neutral"
)

// SetupReason is the mutually exclusive category a qualifying ticker lands in.
type SetupReason string

const (
	SetupBreakout      SetupReason = "Breakout"
	SetupMomentum      SetupReason = "Momentum"
	SetupFibPullback   SetupReason = "Fib_Pullback"
	SetupPullback      SetupReason = "Pullback"
	SetupConsolidation SetupReason = "Consolidation"
	SetupReversal      SetupReason = "Reversal"

	SetupReversalAccumulation     SetupReason = "Reversal_Accumulation"
	SetupBBLowerBounce            SetupReason = "BB_Lower_Bounce"
	SetupStochOversoldReversal    SetupReason = "Stoch_Oversold_Reversal"
	SetupReversalDistribution     SetupReason = "Reversal_Distribution"
	SetupBBUpperReject            SetupReason = "BB_Upper_Reject"
	SetupStochOverboughtReversal  SetupReason = "Stoch_Overbought_Reversal"
)

// PriceTarget is one derived objective for a pick, cheapest first in output.
type PriceTarget struct {
	Price      float64 `json:"price"`
	Confidence int     `json:"confidence"` // 0-100
	Source     string  `json:"source"`     // "fvg", "swing_high", "ceiling"
}

// VolumeShift is the buyer/seller balance over a trailing window.
type VolumeShift struct {
	Direction  VolumeShiftDirection `json:"direction"`
	BuyerRatio float64              `json:"buyer_ratio"`
	Strength   float64              `json:"strength"` // 0-100
}

// ClassifiedPick is one output row of a screening run. Leo-only fields stay
// nil/empty when Leo mode is off. Score orders picks within a setup group and
// is not part of the serialized output.
type ClassifiedPick struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Price     float64 `json:"price"`
	Volume    int64   `json:"volume"`
	MarketCap float64 `json:"market_cap"`
	RSI       float64 `json:"rsi"`
	RelVolume float64 `json:"rel_volume"`
	Trend     Trend   `json:"trend"`

	Setup SetupReason `json:"setup"`
	Score float64     `json:"-"`

	Pattern         CandlePattern `json:"pattern,omitempty"`
	VolumeShift     *VolumeShift  `json:"volume_shift,omitempty"`
	PercentB        *float64      `json:"percent_b,omitempty"`
	StochK          *float64      `json:"stoch_k,omitempty"`
	EntryConfirmed  bool          `json:"entry_confirmed,omitempty"`
	EarningsWarning bool          `json:"earnings_warning,omitempty"`
	Targets         []PriceTarget `json:"targets,omitempty"`
}

// EngineOutput is the full result of one screening run.
type EngineOutput struct {
	AsOfDate string           `json:"as_of_date"`
	Picks    []ClassifiedPick `json:"picks"`
}
