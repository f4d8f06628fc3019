package indicators

import "math"

// Stochastic computes the smoothed %K and %D oscillator lines. Raw %K compares
// the close against the kPeriod high/low range (50 on a zero range), %K is a
// kSmooth-period SMA of raw %K, and %D is a dSmooth-period SMA of %K.
func Stochastic(s Series, kPeriod, kSmooth, dSmooth int) (k, d []float64) {
	n := s.Len()
	rawK := nanSlice(n)
	if kPeriod <= 0 || kSmooth <= 0 || dSmooth <= 0 || n < kPeriod {
		return nanSlice(n), nanSlice(n)
	}

	for i := kPeriod - 1; i < n; i++ {
		hi, lo := rangeHighLow(s.Highs, s.Lows, i-kPeriod+1, i)
		if hi == lo {
			rawK[i] = 50
			continue
		}
		rawK[i] = (s.Closes[i] - lo) / (hi - lo) * 100
	}

	k = smaOverDefined(rawK, kSmooth)
	d = smaOverDefined(k, dSmooth)
	return k, d
}

// rangeHighLow returns the max high and min low over the inclusive index range.
func rangeHighLow(highs, lows []float64, from, to int) (hi, lo float64) {
	hi, lo = highs[from], lows[from]
	for i := from + 1; i <= to; i++ {
		if highs[i] > hi {
			hi = highs[i]
		}
		if lows[i] < lo {
			lo = lows[i]
		}
	}
	return hi, lo
}

// smaOverDefined averages the trailing `period` values, yielding NaN while any
// value in the window is still undefined.
func smaOverDefined(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	for i := period - 1; i < len(values); i++ {
		var sum float64
		defined := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				defined = false
				break
			}
			sum += values[j]
		}
		if defined {
			out[i] = sum / float64(period)
		}
	}
	return out
}
