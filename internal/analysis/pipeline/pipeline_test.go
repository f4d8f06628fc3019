package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lromero74/metrics-core/internal/domain"
)

// nopLogger satisfies ports.Logger without output.
type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (nopLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := New(nopLogger{})
	require.NoError(t, err)
	return s
}

func TestNewRequiresLogger(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestAnalyzePercentSeries(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]domain.Sample, 0, 30)
	for i := 0; i < 30; i++ {
		v := 40 + float64(i%7)
		switch {
		case i%5 == 0 && i > 0: // 5, 10, 15, 20, 25
			v = 120 // out of percent range
		case i == 3:
			v = math.NaN()
		case i == 7:
			v = math.Inf(1)
		case i == 11:
			v = -4
		}
		raw = append(raw, domain.Sample{Timestamp: base.Add(time.Duration(i) * time.Minute), Value: v})
	}

	cfg := domain.DefaultAnalysisConfig()
	cfg.CandlePeriodMinutes = 5

	res := newService(t).Analyze(context.Background(), raw, domain.UnitPercent, cfg)

	// 30 raw minus 5 out-of-range, one NaN, one Inf, one negative.
	assert.Len(t, res.Samples, 22)
	require.NotNil(t, res.Analysis)
	for _, s := range res.Samples {
		assert.GreaterOrEqual(t, s.Value, 0.0)
		assert.LessOrEqual(t, s.Value, 100.0)
	}
	assert.GreaterOrEqual(t, res.Analysis.Mean, 40.0)
	assert.LessOrEqual(t, res.Analysis.Mean, 46.0)

	assert.NotEmpty(t, res.ChartPoints)
	assert.NotEmpty(t, res.Candles)
	assert.Len(t, res.HeikenAshi, len(res.Candles))
	require.NotNil(t, res.Indicators)
	assert.Equal(t, len(res.Samples), res.Indicators.Len())
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res := newService(t).Analyze(context.Background(), nil, domain.UnitCount, domain.DefaultAnalysisConfig())

	assert.Empty(t, res.Samples)
	assert.Nil(t, res.Analysis)
	assert.Empty(t, res.ChartPoints)
	assert.Empty(t, res.Anomalies)
	assert.Nil(t, res.Indicators)
	assert.Empty(t, res.Alerts)
}

func TestAnalyzeAllInvalidInput(t *testing.T) {
	base := time.Now()
	raw := []domain.Sample{
		{Timestamp: base, Value: math.NaN()},
		{Timestamp: base.Add(time.Minute), Value: 150},
	}
	res := newService(t).Analyze(context.Background(), raw, domain.UnitPercent, domain.DefaultAnalysisConfig())

	assert.Empty(t, res.Samples)
	assert.Nil(t, res.Analysis)
}

func TestAnalyzeSingleSampleDegrades(t *testing.T) {
	raw := []domain.Sample{{Timestamp: time.Now(), Value: 42}}
	res := newService(t).Analyze(context.Background(), raw, domain.UnitCount, domain.DefaultAnalysisConfig())

	assert.Len(t, res.Samples, 1)
	assert.Nil(t, res.Analysis, "fewer than two samples cannot be analyzed")
	assert.Empty(t, res.Anomalies)
}

func TestAnalyzeCandlestickUsesAggregatedSeries(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]domain.Sample, 120)
	for i := range raw {
		raw[i] = domain.Sample{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Value:     100 + 5*math.Sin(float64(i)/7),
		}
	}

	cfg := domain.DefaultAnalysisConfig()
	cfg.ChartKind = domain.ChartCandlestick
	cfg.CandlePeriodMinutes = 15

	res := newService(t).Analyze(context.Background(), raw, domain.UnitMillis, cfg)

	require.NotEmpty(t, res.Candles)
	require.NotNil(t, res.Indicators)
	assert.Equal(t, len(res.Candles), res.Indicators.Len(),
		"candlestick mode must compute indicators over candles, not raw samples")
}

func TestAnalyzeDetectsSpike(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]domain.Sample, 60)
	for i := range raw {
		v := 50.0
		if i%2 == 1 {
			v = 52
		}
		raw[i] = domain.Sample{Timestamp: base.Add(time.Duration(i) * time.Minute), Value: v}
	}
	raw[55].Value = 90 // strong outlier

	cfg := domain.DefaultAnalysisConfig()
	cfg.AveragingMode = domain.AveragingSimple

	res := newService(t).Analyze(context.Background(), raw, domain.UnitPercent, cfg)

	require.NotEmpty(t, res.Anomalies)
	found := false
	for _, a := range res.Anomalies {
		if a.Timestamp.Equal(raw[55].Timestamp) {
			found = true
			assert.Equal(t, domain.SeveritySevere, a.Severity)
			assert.Greater(t, a.DeviationsFromMean, 3.0)
		}
	}
	assert.True(t, found, "outlier at index 55 must be flagged")
}

func TestAnalyzeActiveIndicatorSubset(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := make([]domain.Sample, 40)
	for i := range raw {
		raw[i] = domain.Sample{Timestamp: base.Add(time.Duration(i) * time.Minute), Value: float64(i)}
	}

	cfg := domain.DefaultAnalysisConfig()
	cfg.ActiveIndicators = map[string]bool{"sma": true}

	res := newService(t).Analyze(context.Background(), raw, domain.UnitCount, cfg)

	require.NotNil(t, res.Indicators)
	assert.NotNil(t, res.Indicators.SMA)
	assert.Nil(t, res.Indicators.RSI)
	assert.Nil(t, res.Indicators.MACD)
}
