package indicators

import "math"

// bollingerWidth is the σ multiple applied to the upper and lower envelope.
const bollingerWidth = 2.0

// Bollinger computes the Bollinger Band envelope: a `period` SMA middle band
// with upper/lower bands at ±2 population standard deviations over the same
// trailing window.
func Bollinger(values []float64, period int) (middle, upper, lower []float64) {
	n := len(values)
	middle = SMA(values, period)
	upper = nanSlice(n)
	lower = nanSlice(n)
	if period <= 0 || n < period {
		return middle, upper, lower
	}
	for i := period - 1; i < n; i++ {
		var sum float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - middle[i]
			sum += d * d
		}
		sigma := math.Sqrt(sum / float64(period))
		upper[i] = middle[i] + bollingerWidth*sigma
		lower[i] = middle[i] - bollingerWidth*sigma
	}
	return middle, upper, lower
}
