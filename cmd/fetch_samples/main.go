package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/lromero74/metrics-core/config"
	"github.com/lromero74/metrics-core/internal/adapters/binanceclient"
	"github.com/lromero74/metrics-core/internal/adapters/logger"
	"github.com/lromero74/metrics-core/internal/adapters/sqlite"
	"github.com/lromero74/metrics-core/internal/domain"
	"github.com/lromero74/metrics-core/internal/utils"
)

func main() {
	var (
		symbol   = flag.String("symbol", "", "symbol to fetch (default from SYMBOL env)")
		interval = flag.String("interval", "", "kline interval (default from INTERVAL env)")
		days     = flag.Int("days", 7, "how many days back to fetch")
		metric   = flag.String("metric", "", "metric name to store samples under (default <symbol>_close)")
		csvPath  = flag.String("csv", "", "optionally dump fetched samples to this CSV file")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}
	appLogger := logger.New(cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel})

	if *symbol == "" {
		*symbol = cfg.Symbol
	}
	if *interval == "" {
		*interval = cfg.Interval
	}
	if *metric == "" {
		*metric = *symbol + "_close"
	}

	source, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -*days)
	appLogger.Info(ctx, "Fetching candles", map[string]interface{}{
		"symbol": *symbol, "interval": *interval, "from": start, "to": end,
	})
	candles, err := source.GetCandlesRange(ctx, *symbol, *interval, start, end)
	if err != nil {
		appLogger.Error(ctx, err, "Error fetching candles")
		log.Fatalf("Error fetching candles: %v", err)
	}

	samples := make([]domain.Sample, len(candles))
	for i, c := range candles {
		samples[i] = domain.Sample{Timestamp: c.OpenTime, Value: c.Close}
	}

	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		appLogger.Error(ctx, err, "FATAL: Failed to open sample store")
		log.Fatalf("FATAL: Failed to open sample store: %v", err)
	}
	defer repo.Close()

	inserted, err := repo.SaveSamples(ctx, *metric, domain.UnitCount, samples)
	if err != nil {
		appLogger.Error(ctx, err, "Error saving samples")
		log.Fatalf("Error saving samples: %v", err)
	}
	appLogger.Info(ctx, "Samples stored", map[string]interface{}{
		"metric": *metric, "fetched": len(samples), "inserted": inserted,
	})

	if *csvPath != "" {
		if err := utils.WriteSamplesToCSV(samples, *csvPath); err != nil {
			appLogger.Error(ctx, err, "Error writing CSV")
			log.Fatalf("Error writing CSV: %v", err)
		}
		appLogger.Info(ctx, "CSV written", map[string]interface{}{"file": *csvPath})
	}
}
