package indicators

import "math"

// MACD computes the Moving Average Convergence Divergence line, its signal
// line and the histogram. The MACD line is EMA(fast) − EMA(slow); the signal
// line is an EMA(signalPeriod) of the MACD line, seeded once signalPeriod
// valid MACD values have accumulated.
func MACD(values []float64, fast, slow, signalPeriod int) (macd, signal, histogram []float64) {
	n := len(values)
	macd = nanSlice(n)
	signal = nanSlice(n)
	histogram = nanSlice(n)
	if fast <= 0 || slow <= 0 || signalPeriod <= 0 || n < slow {
		return macd, signal, histogram
	}

	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)
	for i := slow - 1; i < n; i++ {
		macd[i] = emaFast[i] - emaSlow[i]
	}

	// Seed the signal line with the SMA of the first signalPeriod MACD values.
	seedEnd := slow - 1 + signalPeriod // one past the seed window
	if n < seedEnd {
		return macd, signal, histogram
	}
	var seed float64
	for i := slow - 1; i < seedEnd; i++ {
		seed += macd[i]
	}
	seed /= float64(signalPeriod)
	signal[seedEnd-1] = seed

	multiplier := 2.0 / float64(signalPeriod+1)
	sig := seed
	for i := seedEnd; i < n; i++ {
		sig = (macd[i]-sig)*multiplier + sig
		signal[i] = sig
	}

	for i := seedEnd - 1; i < n; i++ {
		if !math.IsNaN(macd[i]) && !math.IsNaN(signal[i]) {
			histogram[i] = macd[i] - signal[i]
		}
	}
	return macd, signal, histogram
}
