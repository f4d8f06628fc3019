package domain

// AveragingMode selects the baseline used by the statistical analyzer.
type AveragingMode string

const (
	// AveragingSimple uses the arithmetic mean of the whole series.
	AveragingSimple AveragingMode = "simple"
	// AveragingMoving uses a centered moving average per index.
	AveragingMoving AveragingMode = "moving"
)

// BandMode selects how deviation bands are sized.
type BandMode string

const (
	// BandFixed sizes all bands from the single global σ.
	BandFixed BandMode = "fixed"
	// BandDynamic sizes per-point bands from a rolling window σ
	// (Bollinger-Band semantics). Only effective with AveragingMoving.
	BandDynamic BandMode = "dynamic"
)

// ChartKind selects which rendered series the indicator engine consumes.
type ChartKind string

const (
	ChartLine        ChartKind = "line"
	ChartCandlestick ChartKind = "candlestick"
	ChartHeikenAshi  ChartKind = "heikenashi"
)

// AnalysisConfig is the caller-supplied configuration bag for one analysis run.
type AnalysisConfig struct {
	AveragingMode       AveragingMode
	WindowSize          int // centered window width, moving mode only
	BandMode            BandMode
	ChartKind           ChartKind
	CandlePeriodMinutes int             // OHLC bucket width
	ActiveIndicators    map[string]bool // empty or nil means all indicators
	LookbackHours       float64         // one of the preset lookback windows
}

// DefaultAnalysisConfig mirrors the defaults the dashboard starts from.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		AveragingMode:       AveragingSimple,
		WindowSize:          20,
		BandMode:            BandFixed,
		ChartKind:           ChartLine,
		CandlePeriodMinutes: 15,
		LookbackHours:       24,
	}
}
