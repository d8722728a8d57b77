package screener

import (
	"sort"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

// standardPriority orders every SetupReason with the standard setups first.
var standardPriority = []types.SetupReason{
	types.SetupBreakout,
	types.SetupMomentum,
	types.SetupFibPullback,
	types.SetupPullback,
	types.SetupConsolidation,
	types.SetupReversal,
	types.SetupReversalAccumulation,
	types.SetupBBLowerBounce,
	types.SetupStochOversoldReversal,
	types.SetupReversalDistribution,
	types.SetupBBUpperReject,
	types.SetupStochOverboughtReversal,
}

// leoPriority lists the same twelve reasons with the Leo block promoted.
var leoPriority = []types.SetupReason{
	types.SetupReversalAccumulation,
	types.SetupBBLowerBounce,
	types.SetupStochOversoldReversal,
	types.SetupReversalDistribution,
	types.SetupBBUpperReject,
	types.SetupStochOverboughtReversal,
	types.SetupBreakout,
	types.SetupMomentum,
	types.SetupFibPullback,
	types.SetupPullback,
	types.SetupConsolidation,
	types.SetupReversal,
}

// assemble groups the classified picks by setup, sorts each group by score
// descending (stable, so ties keep discovery order), then walks the priority
// order appending groups until the cap is reached. The group that would
// overflow the cap is truncated and iteration stops there; later groups are
// dropped even if they would have fit on their own.
func assemble(picks []types.ClassifiedPick, leoEnabled bool, maxResults int) []types.ClassifiedPick {
	groups := make(map[types.SetupReason][]types.ClassifiedPick)
	for _, p := range picks {
		groups[p.Setup] = append(groups[p.Setup], p)
	}
	for reason := range groups {
		g := groups[reason]
		sort.SliceStable(g, func(i, j int) bool { return g[i].Score > g[j].Score })
	}

	priority := standardPriority
	if leoEnabled {
		priority = leoPriority
	}

	out := make([]types.ClassifiedPick, 0, maxResults)
	for _, reason := range priority {
		group := groups[reason]
		if len(group) == 0 {
			continue
		}
		remaining := maxResults - len(out)
		if remaining <= 0 {
			break
		}
		if len(group) > remaining {
			out = append(out, group[:remaining]...)
			break
		}
		out = append(out, group...)
	}
	return out
}
