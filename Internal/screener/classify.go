package screener

import "github.com/tickerhawk/tickerhawk/Internal/types"

const (
	leoBaseScore      = 70.0
	leoShiftMinStr    = 30.0
	hardOversoldK     = 20.0
	hardOverboughtK   = 80.0
	breakoutVolFactor = 1.5
)

// setupMatch is one predicate→outcome pair in the classification chain.
type setupMatch struct {
	reason types.SetupReason
	score  float64
}

// classify runs the ordered first-match predicate chain for one surviving
// ticker. Leo predicates go first when Leo mode is on; a ticker matching
// nothing is excluded from results entirely.
func classify(p *ScreenerParams, s *Snapshot) (types.SetupReason, float64, bool) {
	if p.Leo.Enabled {
		if m := classifyLeo(p, s); m != nil {
			return m.reason, m.score, true
		}
	}
	if m := classifyStandard(s); m != nil {
		return m.reason, m.score, true
	}
	return "", 0, false
}

var leoBullishPatterns = map[types.CandlePattern]bool{
	types.PatternDoji:             true,
	types.PatternHammer:           true,
	types.PatternLongLowerShadow:  true,
	types.PatternBullishEngulfing: true,
}

var leoBearishPatterns = map[types.CandlePattern]bool{
	types.PatternGravestoneDoji:   true,
	types.PatternShootingStar:     true,
	types.PatternBearishEngulfing: true,
}

// classifyLeo evaluates the reversal-focused predicates. The bullish branch
// wants price pinned to the lower band with an oversold stochastic; the
// bearish branch is its mirror at the upper band.
func classifyLeo(p *ScreenerParams, s *Snapshot) *setupMatch {
	if s.BB == nil || s.StochK == nil {
		return nil
	}
	pb := s.BB.PercentB
	k := *s.StochK

	if pb < 0.2 && k < p.Leo.OversoldStoch {
		edge := (0.2 - pb) * 50
		kEdge := (p.Leo.OversoldStoch - k) * 0.5

		if leoBullishPatterns[s.Pattern] && p.Leo.patternAllowed(s.Pattern) {
			if shiftConfirms(p, s, types.ShiftBuyer) {
				return &setupMatch{types.SetupReversalAccumulation, leoScore(s, edge, kEdge)}
			}
			if p.Leo.BollingerBounce {
				return &setupMatch{types.SetupBBLowerBounce, leoScore(s, edge, kEdge)}
			}
		}
		if k < hardOversoldK {
			return &setupMatch{types.SetupStochOversoldReversal, leoScore(s, edge, kEdge)}
		}
	}

	if pb > 0.8 && k > p.Leo.OverboughtStoch {
		edge := (pb - 0.8) * 50
		kEdge := (k - p.Leo.OverboughtStoch) * 0.5

		if leoBearishPatterns[s.Pattern] && p.Leo.patternAllowed(s.Pattern) {
			if shiftConfirms(p, s, types.ShiftSeller) {
				return &setupMatch{types.SetupReversalDistribution, leoScore(s, edge, kEdge)}
			}
			if p.Leo.BollingerBounce {
				return &setupMatch{types.SetupBBUpperReject, leoScore(s, edge, kEdge)}
			}
		}
		if k > hardOverboughtK {
			return &setupMatch{types.SetupStochOverboughtReversal, leoScore(s, edge, kEdge)}
		}
	}

	return nil
}

// shiftConfirms checks the volume-shift gate for a Leo reversal. When the
// requirement flag is off, any shift in the right direction confirms; when
// on, it must also clear the strength floor.
func shiftConfirms(p *ScreenerParams, s *Snapshot, want types.VolumeShiftDirection) bool {
	if s.VolShift == nil || s.VolShift.Direction != want {
		return false
	}
	if p.Leo.RequireVolumeShift && s.VolShift.Strength <= leoShiftMinStr {
		return false
	}
	return true
}

// leoScore starts from a base of 70, adds how far %B and %K sit past their
// thresholds, a fifth of the volume-shift strength, and 10 for a confirmed
// entry, capped at 100.
func leoScore(s *Snapshot, pbEdge, kEdge float64) float64 {
	score := leoBaseScore + pbEdge + kEdge
	if s.VolShift != nil {
		score += s.VolShift.Strength * 0.2
	}
	if s.EntryConfirmed {
		score += 10
	}
	return clampScore(score)
}

// classifyStandard evaluates the six standard predicates in priority order.
func classifyStandard(s *Snapshot) *setupMatch {
	if ok, score := breakoutSetup(s); ok {
		return &setupMatch{types.SetupBreakout, score}
	}
	if ok, score := momentumSetup(s); ok {
		return &setupMatch{types.SetupMomentum, score}
	}
	if ok, score := fibPullbackSetup(s); ok {
		return &setupMatch{types.SetupFibPullback, score}
	}
	if ok, score := pullbackSetup(s); ok {
		return &setupMatch{types.SetupPullback, score}
	}
	if ok, score := consolidationSetup(s); ok {
		return &setupMatch{types.SetupConsolidation, score}
	}
	if ok, score := reversalSetup(s); ok {
		return &setupMatch{types.SetupReversal, score}
	}
	return nil
}

// breakoutSetup: close clears the prior 20-bar high on at least 1.5x the
// 20-bar average volume. Score scales with relative volume.
func breakoutSetup(s *Snapshot) (bool, float64) {
	if s.High20 == nil || s.AvgVolume20 == nil || s.RelVolume == nil {
		return false, 0
	}
	if s.LastClose <= *s.High20 {
		return false, 0
	}
	if float64(s.LastVolume) <= breakoutVolFactor**s.AvgVolume20 {
		return false, 0
	}
	return true, clampScore(*s.RelVolume * 40)
}

// momentumSetup: strong RSI with directional strength in an uptrend.
func momentumSetup(s *Snapshot) (bool, float64) {
	if s.RSI == nil || s.ADX == nil {
		return false, 0
	}
	if *s.RSI > 60 && *s.ADX > 25 && s.Trend == types.TrendUp {
		return true, clampScore((*s.RSI - 50) + *s.ADX)
	}
	return false, 0
}

// fibPullbackSetup: the requested fib zone was hit with a bullish reaction.
// Checked before the plain pullback so fib-anchored entries take the more
// specific label.
func fibPullbackSetup(s *Snapshot) (bool, float64) {
	if s.Fib == nil || !s.Fib.Hit || !s.Fib.BullishReaction {
		return false, 0
	}
	score := 75.0
	if s.EntryConfirmed {
		score += 10
	}
	return true, clampScore(score)
}

// pullbackSetup: an uptrend resting at or just above its 20-bar mean with a
// cooled-off RSI. Deeper RSI resets rank higher.
func pullbackSetup(s *Snapshot) (bool, float64) {
	if s.SMA20 == nil || s.RSI == nil {
		return false, 0
	}
	if s.Trend != types.TrendUp {
		return false, 0
	}
	if s.LastClose > *s.SMA20*1.02 {
		return false, 0
	}
	if *s.RSI <= 30 || *s.RSI >= 50 {
		return false, 0
	}
	return true, clampScore(50 + (50-*s.RSI)*1.5)
}

// consolidationSetup: tight Bollinger bands and a weak ADX. The tighter the
// squeeze, the higher the score.
func consolidationSetup(s *Snapshot) (bool, float64) {
	if s.BB == nil || s.ADX == nil {
		return false, 0
	}
	width := s.BB.Width()
	if width >= 0.1 || *s.ADX >= 20 {
		return false, 0
	}
	return true, clampScore((0.1 - width) / 0.1 * 100)
}

// reversalSetup: an RSI extreme against the prevailing trend, close to a
// prior 20-bar support or resistance level.
func reversalSetup(s *Snapshot) (bool, float64) {
	if s.RSI == nil {
		return false, 0
	}
	oversold := *s.RSI < 30 && s.Trend == types.TrendDown
	overbought := *s.RSI > 70 && s.Trend == types.TrendUp
	if !oversold && !overbought {
		return false, 0
	}
	dist := s.srDistancePct()
	if dist == nil || *dist >= 2 {
		return false, 0
	}
	extremity := 30 - *s.RSI
	if overbought {
		extremity = *s.RSI - 70
	}
	return true, clampScore(60 + extremity + (2-*dist)*10)
}

func clampScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
