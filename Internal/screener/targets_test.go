package screener

import (
	"sort"
	"testing"

	"github.com/tickerhawk/tickerhawk/Internal/indicators"
)

func TestPriceTargets(t *testing.T) {
	price := 100.0
	fvgs := []indicators.FVG{
		{Bullish: true, Mid: 105, Filled: false},
		{Bullish: true, Mid: 103, Filled: true}, // filled gaps never target
		{Bullish: true, Mid: 95, Filled: false}, // below price, wrong side
	}
	swings := []indicators.SwingPoint{
		{Index: 10, Price: 101},
		{Index: 20, Price: 102},
		{Index: 30, Price: 103},
		{Index: 40, Price: 104},
		{Index: 50, Price: 106},
	}

	targets := priceTargets(fvgs, swings, price)
	if len(targets) != 5 {
		t.Fatalf("got %d targets, want 5", len(targets))
	}

	if !sort.SliceIsSorted(targets, func(i, j int) bool { return targets[i].Price < targets[j].Price }) {
		t.Errorf("targets not ascending: %+v", targets)
	}

	bySource := make(map[string]int)
	for _, tgt := range targets {
		bySource[tgt.Source]++
		switch tgt.Source {
		case "fvg":
			if tgt.Confidence != 80 {
				t.Errorf("fvg confidence = %d, want 80", tgt.Confidence)
			}
		case "swing_high":
			if tgt.Confidence != 70 {
				t.Errorf("swing confidence = %d, want 70", tgt.Confidence)
			}
		case "ceiling":
			if tgt.Confidence != 50 || !scoreEq(tgt.Price, 110) {
				t.Errorf("ceiling = %+v, want price 110 confidence 50", tgt)
			}
		default:
			t.Errorf("unknown target source %q", tgt.Source)
		}
	}
	// One unfilled gap, the three most recent swing highs, the ceiling.
	if bySource["fvg"] != 1 || bySource["swing_high"] != 3 || bySource["ceiling"] != 1 {
		t.Errorf("source mix = %v, want fvg 1, swing_high 3, ceiling 1", bySource)
	}
}

func TestPriceTargetsCap(t *testing.T) {
	price := 100.0
	fvgs := []indicators.FVG{
		{Bullish: true, Mid: 101.5},
		{Bullish: true, Mid: 102.5},
		{Bullish: true, Mid: 103.5},
	}
	swings := []indicators.SwingPoint{
		{Index: 1, Price: 104},
		{Index: 2, Price: 105},
		{Index: 3, Price: 106},
	}

	targets := priceTargets(fvgs, swings, price)
	if len(targets) != 5 {
		t.Fatalf("got %d targets, want the cap of 5", len(targets))
	}
	// Seven candidates; the cheapest five survive, so the 106 swing and the
	// 110 ceiling fall off.
	if last := targets[len(targets)-1].Price; last != 105 {
		t.Errorf("highest surviving target = %v, want 105", last)
	}
}

func TestPriceTargetsCeilingOnly(t *testing.T) {
	targets := priceTargets(nil, nil, 50)
	if len(targets) != 1 || targets[0].Source != "ceiling" || !scoreEq(targets[0].Price, 55) {
		t.Fatalf("bare targets = %+v, want only the +10%% ceiling at 55", targets)
	}
}

func TestPriceTargetsBearishGapBelowPrice(t *testing.T) {
	fvgs := []indicators.FVG{{Bullish: false, Mid: 92}}
	targets := priceTargets(fvgs, nil, 100)
	found := false
	for _, tgt := range targets {
		if tgt.Source == "fvg" && tgt.Price == 92 {
			found = true
		}
	}
	if !found {
		t.Errorf("bearish gap below price missing from %+v", targets)
	}
}
