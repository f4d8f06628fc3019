// Package indicators computes full-series technical indicators over a metric
// series or aggregated candle closes. All indicators return slices of the same
// length as the input, with NaN marking warm-up positions where the indicator
// is not yet defined. Series shorter than an indicator's warm-up window yield
// all-NaN results rather than errors.
package indicators

import (
	"math"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Series is the flat numeric input shared by all indicators. Highs and Lows
// are only meaningful for candle-derived series; for raw samples they equal
// the close.
type Series struct {
	Timestamps []time.Time
	Closes     []float64
	Highs      []float64
	Lows       []float64
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Closes) }

// FromSamples builds a series from raw samples. High and low collapse onto the
// value since a single observation has no intra-period range.
func FromSamples(samples []domain.Sample) Series {
	s := Series{
		Timestamps: make([]time.Time, len(samples)),
		Closes:     make([]float64, len(samples)),
		Highs:      make([]float64, len(samples)),
		Lows:       make([]float64, len(samples)),
	}
	for i, sm := range samples {
		s.Timestamps[i] = sm.Timestamp
		s.Closes[i] = sm.Value
		s.Highs[i] = sm.Value
		s.Lows[i] = sm.Value
	}
	return s
}

// FromCandles builds a series from aggregated OHLC candles.
func FromCandles(candles []domain.Candle) Series {
	s := Series{
		Timestamps: make([]time.Time, len(candles)),
		Closes:     make([]float64, len(candles)),
		Highs:      make([]float64, len(candles)),
		Lows:       make([]float64, len(candles)),
	}
	for i, c := range candles {
		s.Timestamps[i] = c.OpenTime
		s.Closes[i] = c.Close
		s.Highs[i] = c.High
		s.Lows[i] = c.Low
	}
	return s
}

// nanSlice returns a slice of n NaNs, the canonical "not yet defined" fill.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
