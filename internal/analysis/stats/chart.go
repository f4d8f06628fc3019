package stats

import (
	"math"

	"github.com/lromero74/metrics-core/internal/domain"
)

// BuildChartPoints classifies every sample into its deviation zone and emits
// render-ready points. When the zone changes between two consecutive samples
// an extra transition point is inserted carrying the new value in both the
// outgoing and incoming zone slot, so a renderer drawing per-zone colored
// segments has no visual gap. Transition points are never marked as anomalies.
func BuildChartPoints(samples []domain.Sample, analysis *domain.StatisticalAnalysis) []domain.ChartPoint {
	if analysis == nil || len(samples) == 0 {
		return nil
	}

	out := make([]domain.ChartPoint, 0, len(samples)+8)
	prevZone := domain.ZoneInner

	for i, s := range samples {
		baseline, sigma := localBaseline(analysis, i)
		zone := zoneFor(s.Value, baseline, sigma)

		if i > 0 && zone != prevZone {
			tp := domain.ChartPoint{
				Timestamp:  s.Timestamp,
				Value:      s.Value,
				Zone:       zone,
				Transition: true,
			}
			setZoneValue(&tp, prevZone, s.Value)
			setZoneValue(&tp, zone, s.Value)
			out = append(out, tp)
		}

		p := domain.ChartPoint{
			Timestamp: s.Timestamp,
			Value:     s.Value,
			Zone:      zone,
		}
		setZoneValue(&p, zone, s.Value)
		if sigma > 0 {
			if dev := math.Abs(s.Value-baseline) / sigma; dev > anomalyThreshold {
				p.Anomaly = true
				p.Severity = severityFor(dev)
			}
		}
		out = append(out, p)
		prevZone = zone
	}
	return out
}

func zoneFor(value, baseline, sigma float64) domain.DeviationZone {
	if sigma == 0 {
		return domain.ZoneInner
	}
	dev := math.Abs(value-baseline) / sigma
	switch {
	case dev <= 1:
		return domain.ZoneInner
	case dev <= 2:
		return domain.ZoneMild
	case dev <= 3:
		return domain.ZoneStrong
	default:
		return domain.ZoneSevere
	}
}

func setZoneValue(p *domain.ChartPoint, zone domain.DeviationZone, v float64) {
	val := v
	switch zone {
	case domain.ZoneInner:
		p.InnerValue = &val
	case domain.ZoneMild:
		p.MildValue = &val
	case domain.ZoneStrong:
		p.StrongValue = &val
	case domain.ZoneSevere:
		p.SevereValue = &val
	}
}
