package indicators

import (
	"time"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// fibLookback is the trailing window the retracement grid anchors on.
const fibLookback = 50

// FibHit is the result of testing the latest close against one fib level.
type FibHit struct {
	Zone            types.FibZone
	Level           float64
	Hit             bool
	BullishReaction bool // latest close above the prior close while in the zone
}

var fibRatios = map[types.FibZone]float64{
	types.Fib382:     0.382,
	types.Fib500:     0.500,
	types.Fib618:     0.618,
	types.FibExt1272: 1.272,
	types.FibExt1618: 1.618,
}

// FibonacciZone anchors a retracement grid on the swing high/low of the
// trailing 50 bars and tests whether the latest close sits within the
// requested zone, with a tolerance of 1% of the swing range on either side.
func FibonacciZone(candles []types.Candle, dir types.FibDirection, zone types.FibZone) *FibHit {
	ratio, ok := fibRatios[zone]
	if !ok || len(candles) < 2 {
		return nil
	}
	window := candles
	if len(window) > fibLookback {
		window = window[len(window)-fibLookback:]
	}
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
	swing := high - low
	if swing <= 0 {
		return nil
	}

	// Retracements measure back into the swing; extensions project beyond it.
	var level float64
	switch dir {
	case types.FibFromHigh:
		if ratio <= 1 {
			level = high - ratio*swing
		} else {
			level = high + (ratio-1)*swing
		}
	case types.FibFromLow:
		if ratio <= 1 {
			level = low + ratio*swing
		} else {
			level = low - (ratio-1)*swing
		}
	default:
		return nil
	}

	last := candles[len(candles)-1]
	prev := candles[len(candles)-2]
	tol := 0.01 * swing
	hit := last.Close >= level-tol && last.Close <= level+tol

	return &FibHit{
		Zone:            zone,
		Level:           level,
		Hit:             hit,
		BullishReaction: hit && last.Close > prev.Close,
	}
}

// FVG is a three-candle fair value gap.
type FVG struct {
	Bullish bool
	Top     float64
	Bottom  float64
	Mid     float64
	Filled  bool // price has traded back into the gap since it formed
}

// DetectFVGs scans the trailing lookback bars for three-candle gaps. A bullish
// gap opens when a bar's low clears the high from two bars back; bearish is
// the mirror image.
func DetectFVGs(candles []types.Candle, lookback int) []FVG {
	if len(candles) < 3 {
		return nil
	}
	start := 2
	if lookback > 0 && len(candles) > lookback {
		start = len(candles) - lookback
		if start < 2 {
			start = 2
		}
	}

	var gaps []FVG
	for i := start; i < len(candles); i++ {
		first := candles[i-2]
		cur := candles[i]
		if cur.Low > first.High {
			g := FVG{Bullish: true, Top: cur.Low, Bottom: first.High}
			g.Mid = (g.Top + g.Bottom) / 2
			for j := i + 1; j < len(candles); j++ {
				if candles[j].Low < g.Top {
					g.Filled = true
					break
				}
			}
			gaps = append(gaps, g)
		} else if cur.High < first.Low {
			g := FVG{Bullish: false, Top: first.Low, Bottom: cur.High}
			g.Mid = (g.Top + g.Bottom) / 2
			for j := i + 1; j < len(candles); j++ {
				if candles[j].High > g.Bottom {
					g.Filled = true
					break
				}
			}
			gaps = append(gaps, g)
		}
	}
	return gaps
}

// SwingPoint marks a confirmed local extreme in the series.
type SwingPoint struct {
	Index int
	Price float64
}

// SwingHighs returns bars whose high strictly exceeds every bar within
// strength positions on both sides, oldest first.
func SwingHighs(candles []types.Candle, strength int) []SwingPoint {
	if strength <= 0 {
		return nil
	}
	var points []SwingPoint
	for i := strength; i < len(candles)-strength; i++ {
		isSwing := true
		for j := i - strength; j <= i+strength && isSwing; j++ {
			if j != i && candles[j].High >= candles[i].High {
				isSwing = false
			}
		}
		if isSwing {
			points = append(points, SwingPoint{Index: i, Price: candles[i].High})
		}
	}
	return points
}

// SwingLows returns bars whose low strictly undercuts every bar within
// strength positions on both sides, oldest first.
func SwingLows(candles []types.Candle, strength int) []SwingPoint {
	if strength <= 0 {
		return nil
	}
	var points []SwingPoint
	for i := strength; i < len(candles)-strength; i++ {
		isSwing := true
		for j := i - strength; j <= i+strength && isSwing; j++ {
			if j != i && candles[j].Low <= candles[i].Low {
				isSwing = false
			}
		}
		if isSwing {
			points = append(points, SwingPoint{Index: i, Price: candles[i].Low})
		}
	}
	return points
}

// EntryConfirmed reports whether the latest close took out the prior bar's
// high.
func EntryConfirmed(candles []types.Candle) bool {
	if len(candles) < 2 {
		return false
	}
	return candles[len(candles)-1].Close > candles[len(candles)-2].High
}

// EarningsWarning reports whether the next earnings date falls inside
// [now, now+warningDays], inclusive on both ends. An unknown date never warns.
func EarningsWarning(nextEarnings string, now time.Time, warningDays int) bool {
	if nextEarnings == "" || warningDays < 0 {
		return false
	}
	earnings, err := time.Parse("2006-01-02", nextEarnings)
	if err != nil {
		return false
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	limit := day.AddDate(0, 0, warningDays)
	return !earnings.Before(day) && !earnings.After(limit)
}
