package screener

import (
	"math"
	"testing"

	"github.com/tickerhawk/tickerhawk/Internal/indicators"
	"github.com/tickerhawk/tickerhawk/Internal/types"
)

func scoreEq(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func bandsAt(pb float64) *indicators.BandsExt {
	return &indicators.BandsExt{
		Bands:    indicators.Bands{Upper: 110, Middle: 100, Lower: 90},
		PercentB: pb,
	}
}

func leoParams() ScreenerParams {
	p := DefaultParams("2024-06-03")
	p.Leo.Enabled = true
	return p
}

func TestClassifyLeoBullish(t *testing.T) {
	t.Run("accumulation on pattern plus buyer shift", func(t *testing.T) {
		p := leoParams()
		s := &Snapshot{
			BB:             bandsAt(0.05),
			StochK:         fptr(10),
			Pattern:        types.PatternHammer,
			VolShift:       &types.VolumeShift{Direction: types.ShiftBuyer, BuyerRatio: 0.8, Strength: 60},
			EntryConfirmed: true,
		}
		reason, score, ok := classify(&p, s)
		if !ok || reason != types.SetupReversalAccumulation {
			t.Fatalf("classify = %q ok=%v, want Reversal_Accumulation", reason, ok)
		}
		// 70 + 7.5 + 5 + 12 + 10 clamps to 100.
		if score != 100 {
			t.Errorf("score = %v, want 100", score)
		}
	})

	t.Run("weak shift downgrades to bounce", func(t *testing.T) {
		p := leoParams()
		s := &Snapshot{
			BB:             bandsAt(0.05),
			StochK:         fptr(10),
			Pattern:        types.PatternHammer,
			VolShift:       &types.VolumeShift{Direction: types.ShiftBuyer, BuyerRatio: 0.62, Strength: 20},
			EntryConfirmed: true,
		}
		reason, score, ok := classify(&p, s)
		if !ok || reason != types.SetupBBLowerBounce {
			t.Fatalf("classify = %q ok=%v, want BB_Lower_Bounce", reason, ok)
		}
		if !scoreEq(score, 96.5) { // 70 + 7.5 + 5 + 4 + 10
			t.Errorf("score = %v, want 96.5", score)
		}
	})

	t.Run("weak shift confirms when the requirement is off", func(t *testing.T) {
		p := leoParams()
		p.Leo.RequireVolumeShift = false
		s := &Snapshot{
			BB:       bandsAt(0.05),
			StochK:   fptr(10),
			Pattern:  types.PatternHammer,
			VolShift: &types.VolumeShift{Direction: types.ShiftBuyer, BuyerRatio: 0.62, Strength: 20},
		}
		reason, _, ok := classify(&p, s)
		if !ok || reason != types.SetupReversalAccumulation {
			t.Errorf("classify = %q ok=%v, want Reversal_Accumulation", reason, ok)
		}
	})

	t.Run("no pattern falls through to hard oversold", func(t *testing.T) {
		p := leoParams()
		s := &Snapshot{BB: bandsAt(0.05), StochK: fptr(15), Pattern: types.PatternNone}
		reason, score, ok := classify(&p, s)
		if !ok || reason != types.SetupStochOversoldReversal {
			t.Fatalf("classify = %q ok=%v, want Stoch_Oversold_Reversal", reason, ok)
		}
		if !scoreEq(score, 80) { // 70 + 7.5 + 2.5
			t.Errorf("score = %v, want 80", score)
		}
	})

	t.Run("disallowed pattern skips the pattern branch", func(t *testing.T) {
		p := leoParams()
		p.Leo.AllowedPatterns = []types.CandlePattern{types.PatternDoji}
		s := &Snapshot{
			BB:       bandsAt(0.05),
			StochK:   fptr(15),
			Pattern:  types.PatternHammer,
			VolShift: &types.VolumeShift{Direction: types.ShiftBuyer, Strength: 60},
		}
		reason, _, ok := classify(&p, s)
		if !ok || reason != types.SetupStochOversoldReversal {
			t.Errorf("classify = %q ok=%v, want Stoch_Oversold_Reversal", reason, ok)
		}
	})
}

func TestClassifyLeoBearish(t *testing.T) {
	t.Run("distribution on pattern plus seller shift", func(t *testing.T) {
		p := leoParams()
		s := &Snapshot{
			BB:       bandsAt(0.9),
			StochK:   fptr(90),
			Pattern:  types.PatternShootingStar,
			VolShift: &types.VolumeShift{Direction: types.ShiftSeller, BuyerRatio: 0.2, Strength: 50},
		}
		reason, _, ok := classify(&p, s)
		if !ok || reason != types.SetupReversalDistribution {
			t.Errorf("classify = %q ok=%v, want Reversal_Distribution", reason, ok)
		}
	})

	t.Run("no pattern falls through to hard overbought", func(t *testing.T) {
		p := leoParams()
		s := &Snapshot{BB: bandsAt(0.9), StochK: fptr(85), Pattern: types.PatternNone}
		reason, _, ok := classify(&p, s)
		if !ok || reason != types.SetupStochOverboughtReversal {
			t.Errorf("classify = %q ok=%v, want Stoch_Overbought_Reversal", reason, ok)
		}
	})
}

func TestClassifyLeoFallsThroughToStandard(t *testing.T) {
	// Oversold per the configured threshold but above the hard floor, with no
	// qualifying pattern: no Leo match, so the standard chain runs.
	p := leoParams()
	p.Leo.OversoldStoch = 30
	s := &Snapshot{
		BB:      bandsAt(0.1),
		StochK:  fptr(25),
		Pattern: types.PatternNone,
		RSI:     fptr(70),
		ADX:     fptr(30),
		Trend:   types.TrendUp,
	}
	reason, _, ok := classify(&p, s)
	if !ok || reason != types.SetupMomentum {
		t.Errorf("classify = %q ok=%v, want Momentum via standard chain", reason, ok)
	}
}

func TestClassifyStandard(t *testing.T) {
	p := DefaultParams("2024-06-03")

	tests := []struct {
		name       string
		snap       *Snapshot
		wantReason types.SetupReason
		wantScore  float64
	}{
		{
			name: "breakout",
			snap: &Snapshot{
				LastClose: 105, LastVolume: 4_000_000,
				High20: fptr(100), AvgVolume20: fptr(2_000_000), RelVolume: fptr(2),
			},
			wantReason: types.SetupBreakout,
			wantScore:  80,
		},
		{
			name:       "momentum",
			snap:       &Snapshot{RSI: fptr(70), ADX: fptr(30), Trend: types.TrendUp},
			wantReason: types.SetupMomentum,
			wantScore:  50,
		},
		{
			name: "fib pullback with entry",
			snap: &Snapshot{
				Fib:            &indicators.FibHit{Zone: types.Fib500, Level: 150, Hit: true, BullishReaction: true},
				EntryConfirmed: true,
			},
			wantReason: types.SetupFibPullback,
			wantScore:  85,
		},
		{
			name: "pullback",
			snap: &Snapshot{
				LastClose: 101, SMA20: fptr(100), RSI: fptr(40), Trend: types.TrendUp,
			},
			wantReason: types.SetupPullback,
			wantScore:  65,
		},
		{
			name: "consolidation",
			snap: &Snapshot{
				BB: &indicators.BandsExt{
					Bands: indicators.Bands{Upper: 102, Middle: 100, Lower: 98},
				},
				ADX: fptr(10),
			},
			wantReason: types.SetupConsolidation,
			wantScore:  60,
		},
		{
			name: "reversal near support",
			snap: &Snapshot{
				LastClose: 100, RSI: fptr(25), Trend: types.TrendDown,
				High20: fptr(120), Low20: fptr(99),
			},
			wantReason: types.SetupReversal,
			wantScore:  75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, score, ok := classify(&p, tt.snap)
			if !ok || reason != tt.wantReason {
				t.Fatalf("classify = %q ok=%v, want %q", reason, ok, tt.wantReason)
			}
			if !scoreEq(score, tt.wantScore) {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Qualifies as both breakout and momentum; breakout comes first in the
	// chain, so it is the single label.
	p := DefaultParams("2024-06-03")
	s := &Snapshot{
		LastClose: 105, LastVolume: 4_000_000,
		High20: fptr(100), AvgVolume20: fptr(2_000_000), RelVolume: fptr(2),
		RSI: fptr(70), ADX: fptr(30), Trend: types.TrendUp,
	}
	reason, _, ok := classify(&p, s)
	if !ok || reason != types.SetupBreakout {
		t.Errorf("classify = %q ok=%v, want Breakout", reason, ok)
	}

	// Repeated evaluation is deterministic.
	for i := 0; i < 3; i++ {
		r, _, _ := classify(&p, s)
		if r != reason {
			t.Fatalf("classification changed across calls: %q then %q", reason, r)
		}
	}
}

func TestClassifyNoMatch(t *testing.T) {
	p := DefaultParams("2024-06-03")
	if reason, _, ok := classify(&p, &Snapshot{}); ok {
		t.Errorf("empty snapshot classified as %q, want no match", reason)
	}
}
