package indicators

import (
	"math"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

const (
	dojiBodyATRRatio = 0.10 // body under 10% of ATR counts as a doji body
	shadowBodyRatio  = 2.0  // a "long" shadow is at least twice the body
)

// DetectPattern classifies the latest candle against its predecessor. Exactly
// one label comes back; evaluation order is the documented precedence:
// gravestone-doji, doji, hammer, long-lower-shadow, shooting-star,
// bullish-engulfing, bearish-engulfing.
func DetectPattern(prev, cur types.Candle, atr float64) types.CandlePattern {
	if atr <= 0 {
		return types.PatternNone
	}
	body := cur.Body()
	upper := cur.UpperShadow()
	lower := cur.LowerShadow()

	// Doji family first: body negligible relative to recent range.
	if body < dojiBodyATRRatio*atr {
		if upper >= shadowBodyRatio*math.Max(body, lower) && lower <= 0.5*upper {
			return types.PatternGravestoneDoji
		}
		return types.PatternDoji
	}

	// Shadow-dominated candles.
	if lower >= shadowBodyRatio*body && upper <= body {
		if cur.Bullish() {
			return types.PatternHammer
		}
		return types.PatternLongLowerShadow
	}
	if upper >= shadowBodyRatio*body && lower <= body {
		return types.PatternShootingStar
	}

	// Engulfing last: current body brackets and exceeds the prior body with
	// the opposite color.
	prevBody := prev.Body()
	if body > prevBody && prevBody > 0 {
		if cur.Bullish() && prev.Bearish() &&
			cur.Open <= prev.Close && cur.Close >= prev.Open {
			return types.PatternBullishEngulfing
		}
		if cur.Bearish() && prev.Bullish() &&
			cur.Open >= prev.Close && cur.Close <= prev.Open {
			return types.PatternBearishEngulfing
		}
	}

	return types.PatternNone
}

// AnalyzeVolumeShift splits the trailing lookback bars' volume into buyer
// volume (bullish sessions) and seller volume (bearish sessions), doji volume
// half and half. Ratio above 0.6 reads buyer, below 0.4 seller, else neutral;
// strength grows linearly away from the 0.5 midpoint and caps at 100.
func AnalyzeVolumeShift(candles []types.Candle, lookback int) *types.VolumeShift {
	if lookback <= 0 || len(candles) < lookback {
		return nil
	}
	buyer, total := 0.0, 0.0
	for _, c := range candles[len(candles)-lookback:] {
		v := float64(c.Volume)
		total += v
		switch {
		case c.Bullish():
			buyer += v
		case c.Bearish():
			// seller side, nothing to add
		default:
			buyer += v / 2
		}
	}
	if total == 0 {
		return &types.VolumeShift{Direction: types.ShiftNeutral, BuyerRatio: 0.5}
	}

	ratio := buyer / total
	strength := math.Abs(ratio-0.5) * 200
	if strength > 100 {
		strength = 100
	}

	dir := types.ShiftNeutral
	if ratio > 0.6 {
		dir = types.ShiftBuyer
	} else if ratio < 0.4 {
		dir = types.ShiftSeller
	}
	return &types.VolumeShift{Direction: dir, BuyerRatio: ratio, Strength: strength}
}
