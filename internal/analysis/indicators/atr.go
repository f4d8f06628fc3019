package indicators

import "math"

// ATR computes the Average True Range with Wilder smoothing. The first defined
// value, at index `period`, is the simple average of the first `period` true
// ranges (the very first candle has no previous close and contributes none).
func ATR(s Series, period int) []float64 {
	n := s.Len()
	out := nanSlice(n)
	if period <= 0 || n <= period {
		return out
	}

	// True Range is the greatest of high−low, |high−prevClose|, |low−prevClose|.
	tr := make([]float64, n)
	for i := 1; i < n; i++ {
		hl := s.Highs[i] - s.Lows[i]
		hc := math.Abs(s.Highs[i] - s.Closes[i-1])
		lc := math.Abs(s.Lows[i] - s.Closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	var atr float64
	for i := 1; i <= period; i++ {
		atr += tr[i]
	}
	atr /= float64(period)
	out[period] = atr

	for i := period + 1; i < n; i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}
