// Package pipeline wires the analytics components into one pass: validation,
// statistics, aggregation, indicators and confluence, producing a render-ready
// result bundle.
package pipeline

import (
	"context"
	"fmt"

	"github.com/lromero74/metrics-core/internal/analysis/confluence"
	"github.com/lromero74/metrics-core/internal/analysis/indicators"
	"github.com/lromero74/metrics-core/internal/analysis/ohlc"
	"github.com/lromero74/metrics-core/internal/analysis/stats"
	"github.com/lromero74/metrics-core/internal/analysis/validate"
	"github.com/lromero74/metrics-core/internal/domain"
	"github.com/lromero74/metrics-core/internal/ports"
)

// Service runs the analytics pipeline. It holds no per-series state; every
// call recomputes from scratch.
type Service struct {
	logger ports.Logger
}

// New creates a pipeline service.
func New(logger ports.Logger) (*Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("missing required logger for pipeline service")
	}
	return &Service{logger: logger}, nil
}

// Result is the render-ready output bundle. All fields are freshly allocated
// per call and owned by the caller; the rendering layer must treat them as
// immutable snapshots.
type Result struct {
	Samples     []domain.Sample // validated samples actually analyzed
	Analysis    *domain.StatisticalAnalysis
	ChartPoints []domain.ChartPoint
	Anomalies   []domain.Anomaly
	Candles     []domain.Candle
	HeikenAshi  []domain.HeikenAshiCandle
	Indicators  *indicators.Bundle
	Alerts      []confluence.Alert
}

// Analyze validates the raw samples and computes the full analytics bundle.
// Degenerate input degrades to empty/nil fields rather than an error, per the
// never-crash-a-render contract.
func (s *Service) Analyze(ctx context.Context, raw []domain.Sample, unit domain.Unit, cfg domain.AnalysisConfig) *Result {
	res := &Result{}

	res.Samples = validate.Samples(raw, unit)
	if dropped := len(raw) - len(res.Samples); dropped > 0 {
		s.logger.Debug(ctx, "dropped invalid samples", map[string]interface{}{
			"dropped": dropped, "kept": len(res.Samples), "unit": string(unit),
		})
	}
	if len(res.Samples) == 0 {
		s.logger.Warn(ctx, "no valid samples to analyze")
		return res
	}

	res.Analysis = stats.Analyze(res.Samples, stats.Options{
		Averaging:  cfg.AveragingMode,
		WindowSize: cfg.WindowSize,
		Bands:      cfg.BandMode,
	})
	res.Anomalies = stats.DetectAnomalies(res.Samples, res.Analysis)
	res.ChartPoints = stats.BuildChartPoints(res.Samples, res.Analysis)

	if cfg.CandlePeriodMinutes > 0 {
		res.Candles = ohlc.Aggregate(res.Samples, cfg.CandlePeriodMinutes)
		res.HeikenAshi = ohlc.HeikenAshi(res.Candles)
	}

	icfg := indicators.DefaultConfig()
	icfg.ActiveIndicators = cfg.ActiveIndicators
	series := indicators.FromSamples(res.Samples)
	if cfg.ChartKind == domain.ChartCandlestick || cfg.ChartKind == domain.ChartHeikenAshi {
		if len(res.Candles) > 0 {
			series = indicators.FromCandles(res.Candles)
		}
	}
	res.Indicators = indicators.Compute(series, icfg)
	res.Alerts = confluence.Evaluate(res.Indicators)

	s.logger.Info(ctx, "analysis complete", map[string]interface{}{
		"samples":   len(res.Samples),
		"candles":   len(res.Candles),
		"anomalies": len(res.Anomalies),
		"alerts":    len(res.Alerts),
		"trend":     trendOf(res.Analysis),
	})
	return res
}

func trendOf(a *domain.StatisticalAnalysis) string {
	if a == nil {
		return ""
	}
	return string(a.Trend)
}
