package indicators

import "time"

// Canonical indicator names used in the active-indicator set.
const (
	NameSMA        = "sma"
	NameEMA        = "ema"
	NameRSI        = "rsi"
	NameMACD       = "macd"
	NameStochastic = "stochastic"
	NameWilliamsR  = "williams"
	NameROC        = "roc"
	NameBollinger  = "bollinger"
	NameATR        = "atr"
)

// Config holds the periods for every indicator in a bundle computation.
type Config struct {
	SMAPeriod        int
	EMAPeriod        int
	RSIPeriod        int
	MACDFast         int
	MACDSlow         int
	MACDSignal       int
	StochKPeriod     int
	StochKSmooth     int
	StochDSmooth     int
	WilliamsPeriod   int
	ROCPeriod        int
	BollingerPeriod  int
	ATRPeriod        int
	ActiveIndicators map[string]bool // nil or empty computes everything
}

// DefaultConfig returns the standard dashboard periods.
func DefaultConfig() Config {
	return Config{
		SMAPeriod:       20,
		EMAPeriod:       20,
		RSIPeriod:       14,
		MACDFast:        12,
		MACDSlow:        26,
		MACDSignal:      9,
		StochKPeriod:    14,
		StochKSmooth:    3,
		StochDSmooth:    3,
		WilliamsPeriod:  14,
		ROCPeriod:       12,
		BollingerPeriod: 20,
		ATRPeriod:       14,
	}
}

func (c Config) active(name string) bool {
	if len(c.ActiveIndicators) == 0 {
		return true
	}
	return c.ActiveIndicators[name]
}

// Bundle carries one value slice per computed indicator, all index-aligned
// with Timestamps. Slices for inactive indicators are nil.
type Bundle struct {
	Timestamps []time.Time

	SMA []float64
	EMA []float64
	RSI []float64

	MACD          []float64
	MACDSignal    []float64
	MACDHistogram []float64

	StochK []float64
	StochD []float64

	WilliamsR []float64
	ROC       []float64

	BollingerMiddle []float64
	BollingerUpper  []float64
	BollingerLower  []float64

	ATR []float64
}

// Len returns the number of points the bundle is aligned to.
func (b *Bundle) Len() int { return len(b.Timestamps) }

// Compute evaluates every active indicator over the series. An empty series
// yields an empty bundle; short series produce all-NaN slices per indicator.
func Compute(s Series, cfg Config) *Bundle {
	b := &Bundle{Timestamps: s.Timestamps}

	if cfg.active(NameSMA) {
		b.SMA = SMA(s.Closes, cfg.SMAPeriod)
	}
	if cfg.active(NameEMA) {
		b.EMA = EMA(s.Closes, cfg.EMAPeriod)
	}
	if cfg.active(NameRSI) {
		b.RSI = RSI(s.Closes, cfg.RSIPeriod)
	}
	if cfg.active(NameMACD) {
		b.MACD, b.MACDSignal, b.MACDHistogram = MACD(s.Closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	}
	if cfg.active(NameStochastic) {
		b.StochK, b.StochD = Stochastic(s, cfg.StochKPeriod, cfg.StochKSmooth, cfg.StochDSmooth)
	}
	if cfg.active(NameWilliamsR) {
		b.WilliamsR = WilliamsR(s, cfg.WilliamsPeriod)
	}
	if cfg.active(NameROC) {
		b.ROC = ROC(s.Closes, cfg.ROCPeriod)
	}
	if cfg.active(NameBollinger) {
		b.BollingerMiddle, b.BollingerUpper, b.BollingerLower = Bollinger(s.Closes, cfg.BollingerPeriod)
	}
	if cfg.active(NameATR) {
		b.ATR = ATR(s, cfg.ATRPeriod)
	}
	return b
}
