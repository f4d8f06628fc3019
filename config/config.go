package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (sample source)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Fetch defaults
	Symbol   string
	Interval string

	// Analytics defaults
	AveragingMode       domain.AveragingMode
	WindowSize          int
	BandMode            domain.BandMode
	ChartKind           domain.ChartKind
	CandlePeriodMinutes int
	ActiveIndicators    []string // empty means all
	LookbackHours       float64

	// Database
	DBPath string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety

	cfg.Symbol = getEnv("SYMBOL", "ETHUSDT")
	cfg.Interval = getEnv("INTERVAL", "1m")

	cfg.AveragingMode = domain.AveragingMode(getEnv("AVERAGING_MODE", string(domain.AveragingSimple)))
	if cfg.AveragingMode != domain.AveragingSimple && cfg.AveragingMode != domain.AveragingMoving {
		errs = append(errs, fmt.Sprintf("invalid AVERAGING_MODE: %q", cfg.AveragingMode))
	}

	cfg.WindowSize, err = getEnvAsIntRequired("WINDOW_SIZE", 20)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid WINDOW_SIZE: %v", err))
	} else if cfg.WindowSize <= 0 {
		errs = append(errs, "WINDOW_SIZE must be positive")
	}

	cfg.BandMode = domain.BandMode(getEnv("BAND_MODE", string(domain.BandFixed)))
	if cfg.BandMode != domain.BandFixed && cfg.BandMode != domain.BandDynamic {
		errs = append(errs, fmt.Sprintf("invalid BAND_MODE: %q", cfg.BandMode))
	}

	cfg.ChartKind = domain.ChartKind(getEnv("CHART_KIND", string(domain.ChartLine)))
	switch cfg.ChartKind {
	case domain.ChartLine, domain.ChartCandlestick, domain.ChartHeikenAshi:
	default:
		errs = append(errs, fmt.Sprintf("invalid CHART_KIND: %q", cfg.ChartKind))
	}

	cfg.CandlePeriodMinutes, err = getEnvAsIntRequired("CANDLE_PERIOD_MINUTES", 15)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CANDLE_PERIOD_MINUTES: %v", err))
	} else if cfg.CandlePeriodMinutes <= 0 {
		errs = append(errs, "CANDLE_PERIOD_MINUTES must be positive")
	}

	if list := getEnv("ACTIVE_INDICATORS", ""); list != "" {
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(strings.ToLower(name))
			if name != "" {
				cfg.ActiveIndicators = append(cfg.ActiveIndicators, name)
			}
		}
	}

	cfg.LookbackHours, err = getEnvAsFloatRequired("LOOKBACK_HOURS", 24)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid LOOKBACK_HOURS: %v", err))
	} else if cfg.LookbackHours <= 0 {
		errs = append(errs, "LOOKBACK_HOURS must be positive")
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/metrics.db")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// AnalysisConfig assembles the per-run configuration bag from the loaded
// defaults.
func (c *Config) AnalysisConfig() domain.AnalysisConfig {
	cfg := domain.AnalysisConfig{
		AveragingMode:       c.AveragingMode,
		WindowSize:          c.WindowSize,
		BandMode:            c.BandMode,
		ChartKind:           c.ChartKind,
		CandlePeriodMinutes: c.CandlePeriodMinutes,
		LookbackHours:       c.LookbackHours,
	}
	if len(c.ActiveIndicators) > 0 {
		cfg.ActiveIndicators = make(map[string]bool, len(c.ActiveIndicators))
		for _, name := range c.ActiveIndicators {
			cfg.ActiveIndicators[name] = true
		}
	}
	return cfg
}

// --- Helper Functions for Environment Variables ---

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
