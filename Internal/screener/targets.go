package screener

import (
	"sort"

	"github.com/tickerhawk/tickerhawk/Internal/indicators"
	"github.com/tickerhawk/tickerhawk/Internal/types"
)

const (
	maxTargets        = 5
	fvgConfidence     = 80
	swingConfidence   = 70
	ceilingConfidence = 50
	// The methodology treats +10% as the maximum realistic move for a setup.
	maxMovePct = 0.10
)

// priceTargets derives the capped, confidence-annotated target list for one
// pick: unfilled FVG midpoints on the relevant side of price, the three most
// recent swing highs above price, and the +10% ceiling. Sorted ascending by
// price, at most five entries.
func priceTargets(fvgs []indicators.FVG, swings []indicators.SwingPoint, price float64) []types.PriceTarget {
	var targets []types.PriceTarget

	for _, g := range fvgs {
		if g.Filled {
			continue
		}
		if g.Bullish && g.Mid > price {
			targets = append(targets, types.PriceTarget{Price: g.Mid, Confidence: fvgConfidence, Source: "fvg"})
		}
		if !g.Bullish && g.Mid < price {
			targets = append(targets, types.PriceTarget{Price: g.Mid, Confidence: fvgConfidence, Source: "fvg"})
		}
	}

	// Swing highs arrive oldest first; take the three most recent above price.
	taken := 0
	for i := len(swings) - 1; i >= 0 && taken < 3; i-- {
		if swings[i].Price > price {
			targets = append(targets, types.PriceTarget{Price: swings[i].Price, Confidence: swingConfidence, Source: "swing_high"})
			taken++
		}
	}

	targets = append(targets, types.PriceTarget{Price: price * (1 + maxMovePct), Confidence: ceilingConfidence, Source: "ceiling"})

	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Price < targets[j].Price })
	if len(targets) > maxTargets {
		targets = targets[:maxTargets]
	}
	return targets
}
