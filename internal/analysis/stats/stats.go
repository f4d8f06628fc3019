// Package stats computes descriptive statistics, deviation bands, zone-classified
// chart points and σ-threshold anomalies for a validated sample series.
package stats

import (
	"math"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Options configures one analysis pass.
type Options struct {
	Averaging  domain.AveragingMode
	WindowSize int // centered window width, moving mode only
	Bands      domain.BandMode
}

// trendSlopeFactor is the fraction of σ the OLS slope must exceed before the
// trend is classified as anything other than stable.
const trendSlopeFactor = 0.1

// Analyze computes the full statistical summary for a series.
// Returns nil for degenerate input (fewer than two samples).
func Analyze(samples []domain.Sample, opts Options) *domain.StatisticalAnalysis {
	n := len(samples)
	if n < 2 {
		return nil
	}

	values := make([]float64, n)
	for i, s := range samples {
		values[i] = s.Value
	}

	res := &domain.StatisticalAnalysis{}

	switch opts.Averaging {
	case domain.AveragingMoving:
		w := opts.WindowSize
		if w < 1 {
			w = 1
		}
		baselines := centeredMovingAverage(values, w)
		res.MovingAverages = baselines
		res.Mean = mean(baselines)
		// σ of each value around its own index-local baseline.
		var sum float64
		for i, v := range values {
			d := v - baselines[i]
			sum += d * d
		}
		res.StdDev = math.Sqrt(sum / float64(n))
		if opts.Bands == domain.BandDynamic {
			res.RollingStdDevs = rollingStdDev(values, w)
		}
	default:
		res.Mean = mean(values)
		res.StdDev = stdDev(values, res.Mean)
	}

	res.Min, res.Max = minMax(values)
	res.Range = res.Max - res.Min

	res.Band1 = domain.Band{Upper: res.Mean + res.StdDev, Lower: res.Mean - res.StdDev}
	res.Band2 = domain.Band{Upper: res.Mean + 2*res.StdDev, Lower: res.Mean - 2*res.StdDev}
	res.Band3 = domain.Band{Upper: res.Mean + 3*res.StdDev, Lower: res.Mean - 3*res.StdDev}

	res.RateOfChange = olsSlope(samples)
	switch {
	case res.RateOfChange > trendSlopeFactor*res.StdDev:
		res.Trend = domain.TrendIncreasing
	case res.RateOfChange < -trendSlopeFactor*res.StdDev:
		res.Trend = domain.TrendDecreasing
	default:
		res.Trend = domain.TrendStable
	}

	return res
}

// centeredMovingAverage returns, for every index i, the mean over the window
// [i−⌊w/2⌋, i+⌈w/2⌉) clamped to the array bounds.
func centeredMovingAverage(values []float64, w int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo, hi := windowBounds(i, w, len(values))
		out[i] = mean(values[lo:hi])
	}
	return out
}

// rollingStdDev returns the population σ over the same centered window used by
// centeredMovingAverage (Bollinger-Band semantics).
func rollingStdDev(values []float64, w int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo, hi := windowBounds(i, w, len(values))
		win := values[lo:hi]
		out[i] = stdDev(win, mean(win))
	}
	return out
}

func windowBounds(i, w, n int) (lo, hi int) {
	lo = i - w/2
	hi = i + (w+1)/2
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// olsSlope is the ordinary least-squares slope of value against elapsed hours
// since the first sample. A zero time spread yields a zero slope.
func olsSlope(samples []domain.Sample) float64 {
	n := float64(len(samples))
	t0 := samples[0].Timestamp

	var sumX, sumY float64
	xs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Timestamp.Sub(t0).Hours()
		sumX += xs[i]
		sumY += s.Value
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i, s := range samples {
		dx := xs[i] - meanX
		num += dx * (s.Value - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation around the given center.
func stdDev(values []float64, center float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - center
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// localBaseline picks the index-aligned baseline and σ when the analysis
// carries them, falling back to the global scalars.
func localBaseline(a *domain.StatisticalAnalysis, i int) (baseline, sigma float64) {
	baseline, sigma = a.Mean, a.StdDev
	if i < len(a.MovingAverages) {
		baseline = a.MovingAverages[i]
	}
	if i < len(a.RollingStdDevs) {
		sigma = a.RollingStdDevs[i]
	}
	return baseline, sigma
}
