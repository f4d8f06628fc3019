package indicators

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestSMA(t *testing.T) {
	values := []float64{100, 102, 101, 103, 104}
	got := SMA(values, 3)

	if len(got) != len(values) {
		t.Fatalf("expected %d values, got %d", len(values), len(got))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(got[i]) {
			t.Errorf("warm-up index %d: expected NaN, got %f", i, got[i])
		}
	}
	expected := []float64{101, 102, 102.666667}
	for i, want := range expected {
		idx := i + 2
		if math.Abs(got[idx]-want) > 1e-4 {
			t.Errorf("SMA[%d]: expected %f, got %f", idx, want, got[idx])
		}
	}
}

func TestSMATrailingWindowProperty(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3}
	const period = 4
	got := SMA(values, period)
	for i := period - 1; i < len(values); i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			sum += values[j]
		}
		if !near(got[i], sum/period) {
			t.Errorf("SMA[%d]: expected %f, got %f", i, sum/period, got[i])
		}
	}
}

func TestEMASeedEqualsSMA(t *testing.T) {
	values := []float64{100, 102, 101, 103, 104, 106, 105}
	const period = 3
	sma := SMA(values, period)
	ema := EMA(values, period)
	if !near(ema[period-1], sma[period-1]) {
		t.Errorf("EMA seed %f must equal SMA %f at index %d", ema[period-1], sma[period-1], period-1)
	}
	for i := 0; i < period-1; i++ {
		if !math.IsNaN(ema[i]) {
			t.Errorf("warm-up index %d: expected NaN, got %f", i, ema[i])
		}
	}
}

func TestEMARecurrence(t *testing.T) {
	values := []float64{100, 102, 101, 103, 104}
	const period = 3
	got := EMA(values, period)

	multiplier := 2.0 / float64(period+1)
	ema := (100.0 + 102.0 + 101.0) / 3
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		if !near(got[i], ema) {
			t.Errorf("EMA[%d]: expected %f, got %f", i, ema, got[i])
		}
	}
}

func TestMovingAveragesShortSeries(t *testing.T) {
	values := []float64{1, 2}
	for _, got := range [][]float64{SMA(values, 5), EMA(values, 5)} {
		if len(got) != len(values) {
			t.Fatalf("expected %d values, got %d", len(values), len(got))
		}
		for i, v := range got {
			if !math.IsNaN(v) {
				t.Errorf("index %d: expected NaN on short series, got %f", i, v)
			}
		}
	}
}
