package screener

import (
	"testing"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

func pick(symbol string, setup types.SetupReason, score float64) types.ClassifiedPick {
	return types.ClassifiedPick{Symbol: symbol, Setup: setup, Score: score}
}

func symbols(picks []types.ClassifiedPick) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Symbol
	}
	return out
}

func equalSymbols(a []types.ClassifiedPick, want []string) bool {
	if len(a) != len(want) {
		return false
	}
	for i := range want {
		if a[i].Symbol != want[i] {
			return false
		}
	}
	return true
}

func TestAssembleStandardPriority(t *testing.T) {
	in := []types.ClassifiedPick{
		pick("PULL", types.SetupPullback, 65),
		pick("BRK1", types.SetupBreakout, 60),
		pick("MOM", types.SetupMomentum, 90),
		pick("BRK2", types.SetupBreakout, 95),
		pick("REV", types.SetupReversal, 99),
	}
	out := assemble(in, false, 50)
	want := []string{"BRK2", "BRK1", "MOM", "PULL", "REV"}
	if !equalSymbols(out, want) {
		t.Errorf("order = %v, want %v", symbols(out), want)
	}
}

func TestAssembleLeoPriority(t *testing.T) {
	in := []types.ClassifiedPick{
		pick("BRK", types.SetupBreakout, 100),
		pick("ACC", types.SetupReversalAccumulation, 40),
		pick("BNC", types.SetupBBLowerBounce, 99),
	}
	out := assemble(in, true, 50)
	// The Leo block leads regardless of score.
	want := []string{"ACC", "BNC", "BRK"}
	if !equalSymbols(out, want) {
		t.Errorf("order = %v, want %v", symbols(out), want)
	}
}

func TestAssembleCapTruncatesAndStops(t *testing.T) {
	in := []types.ClassifiedPick{
		pick("B1", types.SetupBreakout, 90),
		pick("B2", types.SetupBreakout, 80),
		pick("M1", types.SetupMomentum, 70),
		pick("M2", types.SetupMomentum, 60),
		pick("C1", types.SetupConsolidation, 50),
	}
	out := assemble(in, false, 3)
	// Momentum is truncated to its best pick and iteration stops there: the
	// consolidation pick is dropped even though a slot opened for it.
	want := []string{"B1", "B2", "M1"}
	if !equalSymbols(out, want) {
		t.Errorf("capped order = %v, want %v", symbols(out), want)
	}
}

func TestAssembleCapWithinSingleGroup(t *testing.T) {
	in := []types.ClassifiedPick{
		pick("B1", types.SetupBreakout, 50),
		pick("B2", types.SetupBreakout, 90),
		pick("B3", types.SetupBreakout, 70),
	}
	out := assemble(in, false, 2)
	if !equalSymbols(out, []string{"B2", "B3"}) {
		t.Errorf("capped group = %v, want [B2 B3]", symbols(out))
	}
}

func TestAssembleStableTies(t *testing.T) {
	// Equal scores keep their discovery order.
	in := []types.ClassifiedPick{
		pick("AAA", types.SetupMomentum, 75),
		pick("BBB", types.SetupMomentum, 75),
		pick("CCC", types.SetupMomentum, 75),
	}
	out := assemble(in, false, 50)
	if !equalSymbols(out, []string{"AAA", "BBB", "CCC"}) {
		t.Errorf("tie order = %v, want input order", symbols(out))
	}
}

func TestAssembleEmpty(t *testing.T) {
	out := assemble(nil, false, 10)
	if len(out) != 0 {
		t.Errorf("assemble(nil) returned %d picks", len(out))
	}
}

func TestPriorityOrdersCoverEveryReason(t *testing.T) {
	for _, order := range [][]types.SetupReason{standardPriority, leoPriority} {
		seen := make(map[types.SetupReason]bool, len(order))
		for _, r := range order {
			if seen[r] {
				t.Errorf("reason %q repeated in priority order", r)
			}
			seen[r] = true
		}
		if len(seen) != 12 {
			t.Errorf("priority order has %d reasons, want 12", len(seen))
		}
	}
}
