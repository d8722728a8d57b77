package screener

import "fmt"

// FixedFilters are the non-configurable liquidity/price floors every ticker
// must clear before any user filter runs. All comparisons are strict; a value
// exactly at a floor fails.
type FixedFilters struct {
	MinLastClose   float64
	MinAvgVolume20 float64
	MinRelVolume   float64
	MinBars        int
}

// DefaultFixedFilters returns the canonical fixed-filter set.
func DefaultFixedFilters() FixedFilters {
	return FixedFilters{
		MinLastClose:   30,
		MinAvgVolume20: 1_000_000,
		MinRelVolume:   1.0,
		MinBars:        250,
	}
}

// verifyFixedFilters guards the fixed-filter constants against accidental
// edits: the injected value must match the known-good literals exactly, and a
// mismatch aborts the run before any ticker is processed.
func verifyFixedFilters(f FixedFilters) error {
	if f.MinLastClose != 30 ||
		f.MinAvgVolume20 != 1_000_000 ||
		f.MinRelVolume != 1.0 ||
		f.MinBars != 250 {
		return fmt.Errorf("fixed filters corrupted: got %+v, want %+v", f, DefaultFixedFilters())
	}
	return nil
}
