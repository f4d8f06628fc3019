package indicators

// WilliamsR computes the Williams %R oscillator in [−100, 0]. A zero
// high/low range yields the −50 midpoint.
func WilliamsR(s Series, period int) []float64 {
	n := s.Len()
	out := nanSlice(n)
	if period <= 0 || n < period {
		return out
	}
	for i := period - 1; i < n; i++ {
		hi, lo := rangeHighLow(s.Highs, s.Lows, i-period+1, i)
		if hi == lo {
			out[i] = -50
			continue
		}
		out[i] = (hi - s.Closes[i]) / (hi - lo) * -100
	}
	return out
}
