package indicators

import (
	"math"
	"testing"
)

func TestRSIWilderSmoothing(t *testing.T) {
	// Deltas: +2, -1, +2, -1, +2 with period 3.
	values := []float64{100, 102, 101, 103, 102, 104}
	got := RSI(values, 3)

	for i := 0; i <= 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("warm-up index %d: expected NaN, got %f", i, got[i])
		}
	}

	// Seed: avgGain = 4/3, avgLoss = 1/3 → RSI = 100 − 100/(1+4) = 80.
	if math.Abs(got[3]-80.0) > 1e-4 {
		t.Errorf("seeded RSI: expected 80, got %f", got[3])
	}

	// Wilder update with the -1 delta: avgGain = 8/9, avgLoss = 5/9 → RSI ≈ 61.538462.
	if math.Abs(got[4]-61.538462) > 1e-4 {
		t.Errorf("RSI[4]: expected 61.538462, got %f", got[4])
	}
	// Next +2 delta: avgGain = 34/27, avgLoss = 10/27 → RSI ≈ 77.272727.
	if math.Abs(got[5]-77.272727) > 1e-4 {
		t.Errorf("RSI[5]: expected 77.272727, got %f", got[5])
	}
}

func TestRSIBounds(t *testing.T) {
	values := []float64{50, 53, 49, 55, 52, 58, 51, 60, 54, 62, 53, 64, 59, 66, 61}
	got := RSI(values, 14)
	for i, v := range got {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Errorf("RSI[%d] = %f out of [0, 100]", i, v)
		}
	}
}

func TestRSIAllGainsSaturates(t *testing.T) {
	values := []float64{100, 102, 104, 106, 108}
	got := RSI(values, 3)
	for i := 3; i < len(got); i++ {
		if got[i] != 100 {
			t.Errorf("RSI[%d]: zero average loss must saturate at 100, got %f", i, got[i])
		}
	}
}

func TestRSIAllLosses(t *testing.T) {
	values := []float64{108, 106, 104, 102, 100}
	got := RSI(values, 3)
	for i := 3; i < len(got); i++ {
		if got[i] != 0 {
			t.Errorf("RSI[%d]: all losses must read 0, got %f", i, got[i])
		}
	}
}

func TestRSIFlatSeriesSaturates(t *testing.T) {
	// Zero loss and zero gain still follows the zero-loss saturation rule
	// rather than producing NaN.
	values := []float64{5, 5, 5, 5, 5}
	got := RSI(values, 3)
	for i := 3; i < len(got); i++ {
		if math.IsNaN(got[i]) {
			t.Fatalf("RSI[%d] must not be NaN on a flat series", i)
		}
		if got[i] != 100 {
			t.Errorf("RSI[%d]: expected saturation at 100, got %f", i, got[i])
		}
	}
}

func TestRSIShortSeries(t *testing.T) {
	got := RSI([]float64{1, 2, 3}, 14)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Errorf("index %d: expected NaN on short series, got %f", i, v)
		}
	}
}
