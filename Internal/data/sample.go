package data

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/scmhub/calendar"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// SampleShape selects an optional tail shaping for generated series.
type SampleShape string

const (
	ShapeNone     SampleShape = ""
	ShapeBreakout SampleShape = "breakout" // final bar pops above the recent range on heavy volume
	ShapeOversold SampleShape = "oversold" // steady fade into the final bars
)

// SampleProvider generates deterministic synthetic daily candles on real NYSE
// trading days. The same symbol always yields the same series, which keeps
// demo runs and tests reproducible.
type SampleProvider struct {
	Bars_   int
	EndDate string // ISO date of the final bar
	Shapes  map[string]SampleShape
}

// NewSampleProvider generates bars series ending on endDate.
func NewSampleProvider(bars int, endDate string) *SampleProvider {
	return &SampleProvider{Bars_: bars, EndDate: endDate, Shapes: map[string]SampleShape{}}
}

// Bars generates the series for one symbol.
func (p *SampleProvider) Bars(_ context.Context, symbol string) ([]types.Candle, error) {
	count := p.Bars_
	if count <= 0 {
		count = 300
	}
	end, err := time.Parse("2006-01-02", p.EndDate)
	if err != nil {
		end = time.Now().UTC()
	}

	days := tradingDaysEnding(end, count)
	rng := rand.New(rand.NewSource(seedFor(symbol)))

	base := 40 + rng.Float64()*160
	candles := make([]types.Candle, 0, count)
	price := base
	for i, day := range days {
		drift := (rng.Float64() - 0.5) * 0.02
		price *= 1 + drift
		if price < 5 {
			price = 5
		}

		open := price * (1 + (rng.Float64()-0.5)*0.006)
		close := price
		high := math.Max(open, close) * (1 + rng.Float64()*0.008)
		low := math.Min(open, close) * (1 - rng.Float64()*0.008)
		volume := int64(1_500_000 + rng.Intn(2_000_000))

		shape := p.Shapes[symbol]
		if shape == ShapeOversold && i >= len(days)-15 {
			fade := 1 - 0.01*float64(i-(len(days)-15))
			open, close, high, low = open*fade, close*fade, high*fade, low*fade
			price = close
		}
		if shape == ShapeBreakout && i == len(days)-1 {
			close = high * 1.06
			high = close * 1.002
			volume *= 3
			price = close
		}

		candles = append(candles, types.Candle{
			Date:   day.Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(close),
			Volume: volume,
		})
	}
	return candles, nil
}

// tradingDaysEnding walks the NYSE calendar backwards from end collecting
// count business days, returned oldest first. Weekday-only fallback when the
// calendar is unavailable.
func tradingDaysEnding(end time.Time, count int) []time.Time {
	cal := calendar.GetCalendar("xnys")
	isTrading := func(t time.Time) bool {
		if cal != nil {
			return cal.IsBusinessDay(t)
		}
		wd := t.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	}

	days := make([]time.Time, 0, count)
	day := end
	for len(days) < count {
		if isTrading(day) {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, -1)
	}
	// reverse to oldest-first
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

func seedFor(symbol string) int64 {
	var seed int64 = 1469598103934665603
	for _, r := range symbol {
		seed = (seed ^ int64(r)) * 1099511628211
	}
	return seed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
