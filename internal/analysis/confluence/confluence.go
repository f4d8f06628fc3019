// Package confluence inspects the latest values of a computed indicator
// bundle, detects per-indicator signals and aggregates agreeing signals into
// severity-ranked alerts.
package confluence

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lromero74/metrics-core/internal/analysis/indicators"
)

// SignalType classifies what an individual indicator is saying.
type SignalType string

const (
	Overbought      SignalType = "overbought"
	Oversold        SignalType = "oversold"
	Bullish         SignalType = "bullish"
	Bearish         SignalType = "bearish"
	VolatilitySpike SignalType = "volatility_spike"
)

// Severity ranks an aggregated alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// IndicatorSignal is one indicator's contribution at the latest index.
type IndicatorSignal struct {
	Indicator string
	Type      SignalType
	Extreme   bool
	Value     float64
}

// Alert is a group of agreeing signals. Alerts are recomputed fresh on every
// evaluation and never mutated afterwards.
type Alert struct {
	Severity    Severity
	Type        SignalType
	Count       int
	Signals     []IndicatorSignal
	Title       string
	Description string
}

// Oscillator thresholds. Extreme tiers outrank the ordinary tiers.
const (
	rsiOverbought        = 70.0
	rsiOverboughtExtreme = 80.0
	rsiOversold          = 30.0
	rsiOversoldExtreme   = 20.0

	stochOverbought        = 80.0
	stochOverboughtExtreme = 90.0
	stochOversold          = 20.0
	stochOversoldExtreme   = 10.0

	williamsOverbought        = -20.0
	williamsOverboughtExtreme = -10.0
	williamsOversold          = -80.0
	williamsOversoldExtreme   = -90.0

	rocLookback      = 20
	rocSpikeFactor   = 2.0
	atrLookback      = 20
	atrSpikeFactor   = 1.5
	trailingMinCount = 5
)

// Evaluate detects signals at the latest index of the bundle and groups them
// into alerts sorted by severity descending.
func Evaluate(b *indicators.Bundle) []Alert {
	if b == nil || b.Len() == 0 {
		return nil
	}
	signals := detect(b, b.Len()-1)
	return aggregate(signals)
}

func detect(b *indicators.Bundle, i int) []IndicatorSignal {
	var out []IndicatorSignal

	if v, ok := at(b.RSI, i); ok {
		switch {
		case v >= rsiOverboughtExtreme:
			out = append(out, IndicatorSignal{"RSI", Overbought, true, v})
		case v >= rsiOverbought:
			out = append(out, IndicatorSignal{"RSI", Overbought, false, v})
		case v <= rsiOversoldExtreme:
			out = append(out, IndicatorSignal{"RSI", Oversold, true, v})
		case v <= rsiOversold:
			out = append(out, IndicatorSignal{"RSI", Oversold, false, v})
		}
	}

	if k, ok := at(b.StochK, i); ok {
		switch {
		case k >= stochOverboughtExtreme:
			out = append(out, IndicatorSignal{"Stochastic %K", Overbought, true, k})
		case k >= stochOverbought:
			out = append(out, IndicatorSignal{"Stochastic %K", Overbought, false, k})
		case k <= stochOversoldExtreme:
			out = append(out, IndicatorSignal{"Stochastic %K", Oversold, true, k})
		case k <= stochOversold:
			out = append(out, IndicatorSignal{"Stochastic %K", Oversold, false, k})
		}
		// Crossover of %K through %D, only meaningful inside an extremity zone.
		if dir, ok := crossover(b.StochK, b.StochD, i); ok {
			if dir > 0 && k <= stochOversold {
				out = append(out, IndicatorSignal{"Stochastic", Bullish, false, k})
			} else if dir < 0 && k >= stochOverbought {
				out = append(out, IndicatorSignal{"Stochastic", Bearish, false, k})
			}
		}
	}

	if v, ok := at(b.WilliamsR, i); ok {
		switch {
		case v >= williamsOverboughtExtreme:
			out = append(out, IndicatorSignal{"Williams %R", Overbought, true, v})
		case v >= williamsOverbought:
			out = append(out, IndicatorSignal{"Williams %R", Overbought, false, v})
		case v <= williamsOversoldExtreme:
			out = append(out, IndicatorSignal{"Williams %R", Oversold, true, v})
		case v <= williamsOversold:
			out = append(out, IndicatorSignal{"Williams %R", Oversold, false, v})
		}
	}

	if dir, ok := crossover(b.MACD, b.MACDSignal, i); ok {
		if v, defined := at(b.MACD, i); defined {
			if dir > 0 {
				out = append(out, IndicatorSignal{"MACD", Bullish, false, v})
			} else {
				out = append(out, IndicatorSignal{"MACD", Bearish, false, v})
			}
		}
	}

	if v, ok := at(b.ROC, i); ok {
		if base, n := trailingMeanAbs(b.ROC, i, rocLookback); n >= trailingMinCount && base > 0 &&
			math.Abs(v) > rocSpikeFactor*base {
			if v > 0 {
				out = append(out, IndicatorSignal{"ROC", Bullish, false, v})
			} else {
				out = append(out, IndicatorSignal{"ROC", Bearish, false, v})
			}
		}
	}

	if v, ok := at(b.ATR, i); ok {
		if base, n := trailingMeanAbs(b.ATR, i, atrLookback); n >= trailingMinCount && base > 0 &&
			v >= atrSpikeFactor*base {
			out = append(out, IndicatorSignal{"ATR", VolatilitySpike, false, v})
		}
	}

	return out
}

// aggregate groups signals by type and applies the severity policy: a single
// ordinary signal is discarded, a single extreme signal or two agreeing
// signals rate medium, three rate high, four or more rate critical.
func aggregate(signals []IndicatorSignal) []Alert {
	groups := make(map[SignalType][]IndicatorSignal)
	for _, s := range signals {
		groups[s.Type] = append(groups[s.Type], s)
	}

	var alerts []Alert
	for typ, group := range groups {
		sev, ok := severityFor(group)
		if !ok {
			continue
		}
		alerts = append(alerts, Alert{
			Severity:    sev,
			Type:        typ,
			Count:       len(group),
			Signals:     group,
			Title:       alertTitle(typ, len(group)),
			Description: alertDescription(group),
		})
	}

	sort.Slice(alerts, func(i, j int) bool {
		if severityRank[alerts[i].Severity] != severityRank[alerts[j].Severity] {
			return severityRank[alerts[i].Severity] > severityRank[alerts[j].Severity]
		}
		return alerts[i].Count > alerts[j].Count
	})
	return alerts
}

func severityFor(group []IndicatorSignal) (Severity, bool) {
	switch n := len(group); {
	case n >= 4:
		return SeverityCritical, true
	case n == 3:
		return SeverityHigh, true
	case n == 2:
		return SeverityMedium, true
	default:
		if group[0].Extreme {
			return SeverityMedium, true
		}
		return SeverityLow, false
	}
}

func alertTitle(typ SignalType, count int) string {
	label := strings.ReplaceAll(string(typ), "_", " ")
	if count == 1 {
		return fmt.Sprintf("Extreme %s reading", label)
	}
	return fmt.Sprintf("%s confluence (%d indicators)", capitalize(label), count)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func alertDescription(group []IndicatorSignal) string {
	parts := make([]string, len(group))
	for i, s := range group {
		parts[i] = fmt.Sprintf("%s (%.1f)", s.Indicator, s.Value)
	}
	return strings.Join(parts, ", ")
}

// at returns values[i] when the slice covers i and holds a defined value.
func at(values []float64, i int) (float64, bool) {
	if i < 0 || i >= len(values) || math.IsNaN(values[i]) {
		return 0, false
	}
	return values[i], true
}

// crossover reports the sign change of line−signal between i−1 and i:
// +1 for a bullish cross, −1 for a bearish one.
func crossover(line, signal []float64, i int) (int, bool) {
	cur, okC := at(line, i)
	curS, okCS := at(signal, i)
	prev, okP := at(line, i-1)
	prevS, okPS := at(signal, i-1)
	if !okC || !okCS || !okP || !okPS {
		return 0, false
	}
	prevDiff := prev - prevS
	curDiff := cur - curS
	if prevDiff <= 0 && curDiff > 0 {
		return 1, true
	}
	if prevDiff >= 0 && curDiff < 0 {
		return -1, true
	}
	return 0, false
}

// trailingMeanAbs averages |values| over up to `lookback` defined positions
// ending just before i.
func trailingMeanAbs(values []float64, i, lookback int) (float64, int) {
	var sum float64
	var n int
	for j := i - 1; j >= 0 && n < lookback; j-- {
		if math.IsNaN(values[j]) {
			continue
		}
		sum += math.Abs(values[j])
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}
