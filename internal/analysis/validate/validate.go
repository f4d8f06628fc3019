// Package validate normalizes raw metric samples before analysis.
package validate

import (
	"math"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Samples filters a raw sample list according to the unit's value range.
// Non-finite values are always dropped. Percentage metrics additionally drop
// values outside [0, 100]. Other units pass through unchanged. The input is
// never mutated and an empty input yields an empty output.
func Samples(samples []domain.Sample, unit domain.Unit) []domain.Sample {
	out := make([]domain.Sample, 0, len(samples))
	for _, s := range samples {
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			continue
		}
		if unit == domain.UnitPercent && (s.Value < 0 || s.Value > 100) {
			continue
		}
		out = append(out, s)
	}
	return out
}
