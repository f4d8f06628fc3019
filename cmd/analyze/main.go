package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/lromero74/metrics-core/config"
	"github.com/lromero74/metrics-core/internal/adapters/logger"
	"github.com/lromero74/metrics-core/internal/adapters/sqlite"
	"github.com/lromero74/metrics-core/internal/analysis/pipeline"
	"github.com/lromero74/metrics-core/internal/analysis/viewport"
	"github.com/lromero74/metrics-core/internal/domain"
	"github.com/lromero74/metrics-core/internal/report"
	"github.com/lromero74/metrics-core/internal/utils"
)

func main() {
	var (
		metric     = flag.String("metric", "", "metric name to analyze (from the sample store)")
		csvPath    = flag.String("csv", "", "analyze samples from this CSV file instead of the store")
		unit       = flag.String("unit", string(domain.UnitCount), "sample unit (percent, bytes, count, milliseconds)")
		hours      = flag.Float64("hours", 0, "lookback window in hours (default from LOOKBACK_HOURS env)")
		reportPath = flag.String("report", "", "write an HTML chart report to this file")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}
	appLogger := logger.New(cfg.LogLevel)
	ctx := context.Background()

	if *hours <= 0 {
		*hours = cfg.LookbackHours
	}
	if *metric == "" && *csvPath == "" {
		log.Fatal("FATAL: either -metric or -csv is required")
	}

	var samples []domain.Sample
	name := *metric
	if *csvPath != "" {
		samples, err = utils.ReadSamplesFromCSV(*csvPath)
		if err != nil {
			appLogger.Error(ctx, err, "Error reading CSV")
			log.Fatalf("Error reading CSV: %v", err)
		}
		if name == "" {
			name = *csvPath
		}
	} else {
		repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
		if err != nil {
			appLogger.Error(ctx, err, "FATAL: Failed to open sample store")
			log.Fatalf("FATAL: Failed to open sample store: %v", err)
		}
		defer repo.Close()

		to := time.Now()
		from := to.Add(-time.Duration(*hours * float64(time.Hour)))
		samples, err = repo.FindByMetric(ctx, *metric, from, to)
		if err != nil {
			appLogger.Error(ctx, err, "Error loading samples")
			log.Fatalf("Error loading samples: %v", err)
		}
	}
	if len(samples) == 0 {
		appLogger.Warn(ctx, "No samples found", map[string]interface{}{"metric": name, "hours": *hours})
		return
	}

	svc, err := pipeline.New(appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to build pipeline: %v", err)
	}
	res := svc.Analyze(ctx, samples, domain.Unit(*unit), cfg.AnalysisConfig())

	if d := viewport.LookbackDomain(res.Samples, *hours); d != nil {
		appLogger.Debug(ctx, "Initial viewport domain", map[string]interface{}{
			"start": d.Start, "end": d.End,
		})
	}

	report.WriteSummary(os.Stdout, res, name)

	if *reportPath != "" {
		f, err := os.Create(*reportPath)
		if err != nil {
			appLogger.Error(ctx, err, "Error creating report file")
			log.Fatalf("Error creating report file: %v", err)
		}
		defer f.Close()
		if err := report.WriteHTML(f, res, name); err != nil {
			appLogger.Error(ctx, err, "Error rendering report")
			log.Fatalf("Error rendering report: %v", err)
		}
		appLogger.Info(ctx, "Report written", map[string]interface{}{"file": *reportPath})
	}
}
