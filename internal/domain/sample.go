package domain

import "time"

// Unit describes the measurement unit of a metric series.
type Unit string

const (
	UnitPercent Unit = "percent"
	UnitBytes   Unit = "bytes"
	UnitCount   Unit = "count"
	UnitMillis  Unit = "milliseconds"
)

// Sample is a single metric observation.
type Sample struct {
	Timestamp time.Time // When the observation was taken
	Value     float64   // Observed value, finite after validation
}

// Candle summarizes all samples falling into one fixed-width time bucket.
type Candle struct {
	OpenTime time.Time // Start of the bucket
	Open     float64   // Value of the chronologically first sample
	High     float64   // Maximum value in the bucket
	Low      float64   // Minimum value in the bucket
	Close    float64   // Value of the chronologically last sample
}

// HeikenAshiCandle is a smoothed candle derived from an OHLC candle via the
// recursive Heiken-Ashi averaging formula.
type HeikenAshiCandle struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
}
