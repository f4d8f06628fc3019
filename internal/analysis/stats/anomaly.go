package stats

import (
	"math"

	"github.com/lromero74/metrics-core/internal/domain"
)

// anomalyThreshold is the σ multiple a deviation must exceed (strictly) before
// a sample is flagged.
const anomalyThreshold = 2.0

// DetectAnomalies flags samples whose deviation from the local baseline
// exceeds two local standard deviations. The input is never mutated; the
// returned list carries no ordering guarantee beyond input order.
func DetectAnomalies(samples []domain.Sample, analysis *domain.StatisticalAnalysis) []domain.Anomaly {
	if analysis == nil {
		return nil
	}
	var out []domain.Anomaly
	for i, s := range samples {
		baseline, sigma := localBaseline(analysis, i)
		if sigma == 0 {
			continue
		}
		dev := math.Abs(s.Value-baseline) / sigma
		if dev <= anomalyThreshold {
			continue
		}
		out = append(out, domain.Anomaly{
			Timestamp:          s.Timestamp,
			Value:              s.Value,
			DeviationsFromMean: dev,
			Severity:           severityFor(dev),
		})
	}
	return out
}

// severityFor tiers a deviation per the (2, 2.5], (2.5, 3], (3, ∞) boundaries.
func severityFor(dev float64) domain.AnomalySeverity {
	switch {
	case dev > 3.0:
		return domain.SeveritySevere
	case dev > 2.5:
		return domain.SeverityModerate
	default:
		return domain.SeverityMinor
	}
}
