package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lromero74/metrics-core/internal/analysis/pipeline"
)

// WriteSummary prints statistics, alerts and anomalies as terminal tables.
func WriteSummary(w io.Writer, res *pipeline.Result, metric string) {
	if res == nil || res.Analysis == nil {
		fmt.Fprintf(w, "no analysis available for %s\n", metric)
		return
	}
	a := res.Analysis

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Statistics: %s", metric))
	t.AppendHeader(table.Row{"Stat", "Value"})
	t.AppendRows([]table.Row{
		{"Samples", len(res.Samples)},
		{"Mean", fmt.Sprintf("%.4f", a.Mean)},
		{"Std Dev", fmt.Sprintf("%.4f", a.StdDev)},
		{"Min", fmt.Sprintf("%.4f", a.Min)},
		{"Max", fmt.Sprintf("%.4f", a.Max)},
		{"Range", fmt.Sprintf("%.4f", a.Range)},
		{"Rate of Change", fmt.Sprintf("%.4f/h", a.RateOfChange)},
		{"Trend", string(a.Trend)},
		{"Candles", len(res.Candles)},
	})
	t.Render()

	if len(res.Alerts) > 0 {
		at := table.NewWriter()
		at.SetOutputMirror(w)
		at.SetStyle(table.StyleLight)
		at.SetTitle("Confluence Alerts")
		at.AppendHeader(table.Row{"Severity", "Type", "Count", "Signals"})
		for _, alert := range res.Alerts {
			at.AppendRow(table.Row{string(alert.Severity), string(alert.Type), alert.Count, alert.Description})
		}
		at.Render()
	}

	if len(res.Anomalies) > 0 {
		an := table.NewWriter()
		an.SetOutputMirror(w)
		an.SetStyle(table.StyleLight)
		an.SetTitle("Anomalies")
		an.AppendHeader(table.Row{"Time", "Value", "σ", "Severity"})
		for _, anom := range res.Anomalies {
			an.AppendRow(table.Row{
				anom.Timestamp.Format(time.RFC3339),
				fmt.Sprintf("%.4f", anom.Value),
				fmt.Sprintf("%.2f", anom.DeviationsFromMean),
				string(anom.Severity),
			})
		}
		an.Render()
	}
}
