package indicators

import (
	"math"
	"testing"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func flatCandles(n int, close float64, volume int64) []types.Candle {
	out := make([]types.Candle, n)
	for i := range out {
		out[i] = types.Candle{
			Date: "2024-01-02", Open: close, High: close + 0.5, Low: close - 0.5,
			Close: close, Volume: volume,
		}
	}
	return out
}

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got := SMA(values, 3)
	if got == nil || !almostEqual(*got, 4) {
		t.Fatalf("SMA(...,3) = %v, want 4", got)
	}
	if SMA(values, 6) != nil {
		t.Errorf("SMA with short input should be nil")
	}
	if SMA(values, 0) != nil {
		t.Errorf("SMA with zero period should be nil")
	}
}

func TestRSI(t *testing.T) {
	t.Run("flat series reads 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 50
		}
		got := RSI(closes, 14)
		if got == nil || *got != 100 {
			t.Fatalf("RSI of flat series = %v, want 100", got)
		}
	})

	t.Run("all gains reads 100", func(t *testing.T) {
		closes := []float64{1, 2, 3, 4, 5, 6, 7, 8}
		got := RSI(closes, 7)
		if got == nil || *got != 100 {
			t.Fatalf("RSI of rising series = %v, want 100", got)
		}
	})

	t.Run("equal gains and losses reads 50", func(t *testing.T) {
		closes := []float64{10, 11, 10, 11, 10}
		got := RSI(closes, 4)
		if got == nil || !almostEqual(*got, 50) {
			t.Fatalf("RSI = %v, want 50", got)
		}
	})

	t.Run("insufficient input", func(t *testing.T) {
		if RSI([]float64{1, 2, 3}, 14) != nil {
			t.Errorf("RSI with short input should be nil")
		}
	})
}

func TestStochasticK(t *testing.T) {
	t.Run("zero range reads 50", func(t *testing.T) {
		candles := make([]types.Candle, 14)
		for i := range candles {
			candles[i] = types.Candle{Open: 10, High: 10, Low: 10, Close: 10}
		}
		got := StochasticK(candles, 14)
		if got == nil || *got != 50 {
			t.Fatalf("StochasticK degenerate = %v, want 50", got)
		}
	})

	t.Run("close at window high reads 100", func(t *testing.T) {
		candles := flatCandles(14, 100, 1)
		candles[13].High = 110
		candles[13].Close = 110
		got := StochasticK(candles, 14)
		if got == nil || !almostEqual(*got, 100) {
			t.Fatalf("StochasticK = %v, want 100", got)
		}
	})

	t.Run("insufficient input", func(t *testing.T) {
		if StochasticK(flatCandles(5, 100, 1), 14) != nil {
			t.Errorf("StochasticK with short input should be nil")
		}
	})
}

func TestATR(t *testing.T) {
	candles := flatCandles(15, 100, 1)
	got := ATR(candles, 14)
	if got == nil || !almostEqual(*got, 1.0) {
		t.Fatalf("ATR of uniform 1-point ranges = %v, want 1.0", got)
	}

	// A gap against the prior close widens the true range.
	candles[14].High = 108
	candles[14].Low = 104
	candles[14].Close = 105
	got = ATR(candles, 14)
	want := (13*1.0 + 8.0) / 14 // |high-prevClose| = 8 dominates the final bar
	if got == nil || !almostEqual(*got, want) {
		t.Fatalf("ATR with gap = %v, want %v", got, want)
	}
}

func TestADX(t *testing.T) {
	t.Run("one-sided trend reads 100", func(t *testing.T) {
		candles := make([]types.Candle, 15)
		for i := range candles {
			base := 100 + float64(i)*2
			candles[i] = types.Candle{Open: base, High: base + 1, Low: base - 1, Close: base}
		}
		got := ADX(candles, 14)
		if got == nil || !almostEqual(*got, 100) {
			t.Fatalf("ADX of straight uptrend = %v, want 100", got)
		}
	})

	t.Run("flat series reads 0", func(t *testing.T) {
		got := ADX(flatCandles(15, 100, 1), 14)
		if got == nil || *got != 0 {
			t.Fatalf("ADX of flat series = %v, want 0", got)
		}
	})

	t.Run("insufficient input", func(t *testing.T) {
		if ADX(flatCandles(10, 100, 1), 14) != nil {
			t.Errorf("ADX with short input should be nil")
		}
	})
}

func TestBollinger(t *testing.T) {
	closes := []float64{2, 4, 4, 4, 5, 5, 7, 9} // population stddev = 2, mean = 5
	b := Bollinger(closes, 8, 2)
	if b == nil {
		t.Fatal("Bollinger returned nil")
	}
	if !almostEqual(b.Middle, 5) || !almostEqual(b.Upper, 9) || !almostEqual(b.Lower, 1) {
		t.Fatalf("Bollinger = %+v, want middle 5 upper 9 lower 1", b)
	}
	if !almostEqual(b.Width(), 8.0/5.0) {
		t.Errorf("Width = %v, want 1.6", b.Width())
	}
}

func TestBollingerExt(t *testing.T) {
	t.Run("zero width defaults to 0.5", func(t *testing.T) {
		closes := []float64{5, 5, 5, 5, 5}
		b := BollingerExt(closes, 5, 2)
		if b == nil || b.PercentB != 0.5 {
			t.Fatalf("degenerate %%B = %+v, want 0.5", b)
		}
	})

	t.Run("close on the upper band reads 1", func(t *testing.T) {
		closes := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		b := BollingerExt(closes, 8, 2)
		if b == nil || !almostEqual(b.PercentB, 1.0) {
			t.Fatalf("%%B = %+v, want 1.0", b)
		}
	})
}

func TestAvgVolume(t *testing.T) {
	candles := flatCandles(21, 100, 1000)
	candles[20].Volume = 5000 // latest bar must not count toward the average
	got := AvgVolume(candles, 20)
	if got == nil || !almostEqual(*got, 1000) {
		t.Fatalf("AvgVolume = %v, want 1000", got)
	}
	if AvgVolume(candles[:20], 20) != nil {
		t.Errorf("AvgVolume needs period+1 bars")
	}
}
