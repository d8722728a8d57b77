// Package indicators holds the pure technical-indicator math used by the
// screener. Every function takes an immutable slice and returns nil when the
// input is shorter than the required window; nothing here panics or logs.
package indicators

import (
	"math"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// SMA returns the arithmetic mean of the last period values.
func SMA(values []float64, period int) *float64 {
	if period <= 0 || len(values) < period {
		return nil
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	out := sum / float64(period)
	return &out
}

// RSI is the windowed (non-Wilder) relative strength index over the last
// period close-to-close deltas. A window with zero average loss reads 100.
func RSI(closes []float64, period int) *float64 {
	if period <= 0 || len(closes) < period+1 {
		return nil
	}
	gains, losses := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses += -delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	var out float64
	if avgLoss == 0 {
		out = 100
	} else {
		out = 100 - 100/(1+avgGain/avgLoss)
	}
	return &out
}

// StochasticK computes %K over the trailing kPeriod bars. A degenerate window
// where the high equals the low reads 50 rather than dividing by zero.
func StochasticK(candles []types.Candle, kPeriod int) *float64 {
	if kPeriod <= 0 || len(candles) < kPeriod {
		return nil
	}
	window := candles[len(candles)-kPeriod:]
	lowest := window[0].Low
	highest := window[0].High
	for _, c := range window[1:] {
		if c.Low < lowest {
			lowest = c.Low
		}
		if c.High > highest {
			highest = c.High
		}
	}
	var out float64
	if highest == lowest {
		out = 50
	} else {
		out = (candles[len(candles)-1].Close - lowest) / (highest - lowest) * 100
	}
	return &out
}

// TrueRange for one bar against the previous close.
func TrueRange(cur, prev types.Candle) float64 {
	tr := cur.High - cur.Low
	if d := math.Abs(cur.High - prev.Close); d > tr {
		tr = d
	}
	if d := math.Abs(cur.Low - prev.Close); d > tr {
		tr = d
	}
	return tr
}

// ATR is the simple average of true range over the last period bars.
func ATR(candles []types.Candle, period int) *float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}
	sum := 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		sum += TrueRange(candles[i], candles[i-1])
	}
	out := sum / float64(period)
	return &out
}

// ADX is a single-pass directional-strength approximation: SMA of +DM and -DM
// over the window, then |+DI - -DI| / (+DI + -DI) * 100. This is deliberately
// not the double-smoothed Wilder ADX; the classification thresholds are tuned
// against this exact formula, so keep it as is.
func ADX(candles []types.Candle, period int) *float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}
	plusSum, minusSum := 0.0, 0.0
	for i := len(candles) - period; i < len(candles); i++ {
		upMove := candles[i].High - candles[i-1].High
		downMove := candles[i-1].Low - candles[i].Low
		if upMove > downMove && upMove > 0 {
			plusSum += upMove
		} else if downMove > upMove && downMove > 0 {
			minusSum += downMove
		}
	}
	plusDI := plusSum / float64(period)
	minusDI := minusSum / float64(period)

	var out float64
	if plusDI+minusDI == 0 {
		out = 0
	} else {
		out = math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
	}
	return &out
}

// Bands is a Bollinger band snapshot for the latest bar.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Width returns the band spread as a fraction of the middle band.
func (b Bands) Width() float64 {
	if b.Middle == 0 {
		return 0
	}
	return (b.Upper - b.Lower) / b.Middle
}

// Bollinger computes middle = SMA and upper/lower = middle +/- mult * stddev
// (population standard deviation) over the trailing window.
func Bollinger(closes []float64, period int, mult float64) *Bands {
	mid := SMA(closes, period)
	if mid == nil {
		return nil
	}
	sumSq := 0.0
	for _, v := range closes[len(closes)-period:] {
		d := v - *mid
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(period))
	return &Bands{
		Upper:  *mid + mult*std,
		Middle: *mid,
		Lower:  *mid - mult*std,
	}
}

// BandsExt extends Bands with %B, the close's position inside the bands.
type BandsExt struct {
	Bands
	PercentB float64 // 0 at the lower band, 1 at the upper band
}

// BollingerExt is Bollinger plus %B. A zero-width band reads %B = 0.5.
func BollingerExt(closes []float64, period int, mult float64) *BandsExt {
	b := Bollinger(closes, period, mult)
	if b == nil {
		return nil
	}
	pb := 0.5
	if b.Upper != b.Lower {
		pb = (closes[len(closes)-1] - b.Lower) / (b.Upper - b.Lower)
	}
	return &BandsExt{Bands: *b, PercentB: pb}
}

// Closes extracts the closing prices from a candle series.
func Closes(candles []types.Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// AvgVolume returns the mean volume of the period bars preceding the latest
// bar, nil when the series is too short. The latest bar is excluded so that
// relative volume compares today against the prior baseline.
func AvgVolume(candles []types.Candle, period int) *float64 {
	if period <= 0 || len(candles) < period+1 {
		return nil
	}
	sum := 0.0
	for _, c := range candles[len(candles)-period-1 : len(candles)-1] {
		sum += float64(c.Volume)
	}
	out := sum / float64(period)
	return &out
}
