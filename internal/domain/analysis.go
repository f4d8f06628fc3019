package domain

import "time"

// TrendDirection classifies the least-squares slope of a series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Band is a symmetric deviation envelope around the baseline.
type Band struct {
	Upper float64
	Lower float64
}

// StatisticalAnalysis is the full statistics result for one series.
// MovingAverages and RollingStdDevs are index-aligned with the input samples
// and only populated in moving / dynamic modes respectively.
type StatisticalAnalysis struct {
	Mean         float64
	StdDev       float64
	Min          float64
	Max          float64
	Range        float64
	Band1        Band // baseline ± 1σ
	Band2        Band // baseline ± 2σ
	Band3        Band // baseline ± 3σ
	RateOfChange float64 // OLS slope, value units per hour
	Trend        TrendDirection

	MovingAverages []float64
	RollingStdDevs []float64
}

// DeviationZone buckets a point by how many σ it sits from its baseline.
type DeviationZone int

const (
	ZoneInner  DeviationZone = iota // within ±1σ ("green")
	ZoneMild                        // between ±1σ and ±2σ ("yellow")
	ZoneStrong                      // between ±2σ and ±3σ ("orange")
	ZoneSevere                      // beyond ±3σ ("red")
)

// ChartPoint is a sample annotated for per-zone colored rendering. Exactly one
// of the zone slots is non-nil, except for inserted transition points which
// carry the value in both the outgoing and incoming zone so adjacent colored
// segments connect without a gap.
type ChartPoint struct {
	Timestamp time.Time
	Value     float64
	Zone      DeviationZone

	InnerValue  *float64
	MildValue   *float64
	StrongValue *float64
	SevereValue *float64

	Transition bool // inserted duplicate at a zone boundary, never an anomaly
	Anomaly    bool
	Severity   AnomalySeverity // set only when Anomaly is true
}

// AnomalySeverity tiers an anomaly by its σ distance from the local baseline.
type AnomalySeverity string

const (
	SeverityMinor    AnomalySeverity = "minor"    // (2.0, 2.5]
	SeverityModerate AnomalySeverity = "moderate" // (2.5, 3.0]
	SeveritySevere   AnomalySeverity = "severe"   // (3.0, ∞)
)

// Anomaly records a sample whose deviation from the local baseline exceeded
// two local standard deviations.
type Anomaly struct {
	Timestamp          time.Time
	Value              float64
	DeviationsFromMean float64
	Severity           AnomalySeverity
}
