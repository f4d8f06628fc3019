// Package report turns a pipeline result into human-readable output: an HTML
// chart page and terminal summary tables. It is a consumer of the analytics
// core's render-ready structures, not part of the core itself.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lromero74/metrics-core/internal/analysis/pipeline"
	"github.com/lromero74/metrics-core/internal/domain"
)

const timeAxisFormat = "01-02 15:04"

// WriteHTML renders the analysis result as a self-contained HTML page with a
// value/band line chart, an anomaly overlay and candle charts when present.
func WriteHTML(w io.Writer, res *pipeline.Result, metric string) error {
	if res == nil || len(res.Samples) == 0 {
		return fmt.Errorf("nothing to render for metric %q", metric)
	}

	page := components.NewPage()
	page.AddCharts(valueChart(res, metric))
	if len(res.Candles) > 0 {
		page.AddCharts(candleChart("Candlesticks", res.Candles, nil))
	}
	if len(res.HeikenAshi) > 0 {
		page.AddCharts(candleChart("Heiken-Ashi", nil, res.HeikenAshi))
	}
	return page.Render(w)
}

func valueChart(res *pipeline.Result, metric string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    metric,
			Subtitle: fmt.Sprintf("trend: %s, %d anomalies", res.Analysis.Trend, len(res.Anomalies)),
		}),
	)

	xs := make([]string, len(res.Samples))
	values := make([]opts.LineData, len(res.Samples))
	upper1 := make([]opts.LineData, len(res.Samples))
	lower1 := make([]opts.LineData, len(res.Samples))
	upper2 := make([]opts.LineData, len(res.Samples))
	lower2 := make([]opts.LineData, len(res.Samples))

	anomalous := make(map[time.Time]bool, len(res.Anomalies))
	for _, a := range res.Anomalies {
		anomalous[a.Timestamp] = true
	}

	for i, s := range res.Samples {
		xs[i] = s.Timestamp.Format(timeAxisFormat)
		values[i] = opts.LineData{Value: s.Value}

		baseline, sigma := res.Analysis.Mean, res.Analysis.StdDev
		if i < len(res.Analysis.MovingAverages) {
			baseline = res.Analysis.MovingAverages[i]
		}
		if i < len(res.Analysis.RollingStdDevs) {
			sigma = res.Analysis.RollingStdDevs[i]
		}
		upper1[i] = opts.LineData{Value: round2(baseline + sigma)}
		lower1[i] = opts.LineData{Value: round2(baseline - sigma)}
		upper2[i] = opts.LineData{Value: round2(baseline + 2*sigma)}
		lower2[i] = opts.LineData{Value: round2(baseline - 2*sigma)}
	}

	line.SetXAxis(xs).
		AddSeries(metric, values).
		AddSeries("+1σ", upper1).
		AddSeries("-1σ", lower1).
		AddSeries("+2σ", upper2).
		AddSeries("-2σ", lower2)

	if len(res.Anomalies) > 0 {
		marks := make([]opts.LineData, len(res.Samples))
		for i, s := range res.Samples {
			if anomalous[s.Timestamp] {
				marks[i] = opts.LineData{Value: s.Value, Symbol: "circle", SymbolSize: 12}
			} else {
				marks[i] = opts.LineData{Value: "-"}
			}
		}
		line.AddSeries("anomalies", marks)
	}
	return line
}

func candleChart(title string, candles []domain.Candle, ha []domain.HeikenAshiCandle) *charts.Kline {
	k := charts.NewKLine()
	k.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	var xs []string
	var data []opts.KlineData
	for _, c := range candles {
		xs = append(xs, c.OpenTime.Format(timeAxisFormat))
		data = append(data, opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}})
	}
	for _, c := range ha {
		xs = append(xs, c.OpenTime.Format(timeAxisFormat))
		data = append(data, opts.KlineData{Value: [4]float64{c.Open, c.Close, c.Low, c.High}})
	}
	k.SetXAxis(xs).AddSeries(title, data)
	return k
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
