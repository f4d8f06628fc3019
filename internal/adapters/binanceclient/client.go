// Package binanceclient adapts the Binance futures REST API into a candle
// source. Kline closes double as metric samples for offline analysis runs.
package binanceclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"

	"github.com/lromero74/metrics-core/internal/domain"
	"github.com/lromero74/metrics-core/internal/ports"
)

const (
	baseURLProduction = "https://fapi.binance.com"
	baseURLTestnet    = "https://testnet.binancefuture.com"
)

// Client implements the ports.CandleSource interface for Binance futures.
type Client struct {
	futuresClient *futures.Client
	logger        ports.Logger
}

// Config holds configuration for the Binance client.
type Config struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
	Logger     ports.Logger
}

// New creates a new Binance client adapter.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for Binance client")
	}

	client := futures.NewClient(cfg.APIKey, cfg.SecretKey)
	if cfg.UseTestnet {
		client.BaseURL = baseURLTestnet
	} else {
		client.BaseURL = baseURLProduction
	}

	return &Client{futuresClient: client, logger: cfg.Logger}, nil
}

// GetCandlesRange fetches all candles for a symbol/interval between start and
// end time, paging through the API limit.
func (c *Client) GetCandlesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]domain.Candle, error) {
	const op = "GetCandlesRange"
	const maxLimit = 1500

	var all []domain.Candle
	from := start
	for {
		klines, err := c.futuresClient.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(from.UnixMilli()).
			EndTime(end.UnixMilli()).
			Limit(maxLimit).
			Do(ctx)
		if err != nil {
			return nil, c.handleError(ctx, err, op)
		}
		if len(klines) == 0 {
			break
		}
		for _, k := range klines {
			candle, err := translateKline(k)
			if err != nil {
				return nil, c.handleError(ctx, fmt.Errorf("failed to translate kline: %w", err), op)
			}
			all = append(all, candle)
		}
		last := klines[len(klines)-1]
		from = time.UnixMilli(last.CloseTime)
		if from.After(end) || len(klines) < maxLimit {
			break
		}
	}
	c.logger.Debug(ctx, op+": fetched candles", map[string]interface{}{
		"symbol": symbol, "interval": interval, "count": len(all),
	})
	return all, nil
}

func translateKline(k *futures.Kline) (domain.Candle, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("invalid open %q: %w", k.Open, err)
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("invalid high %q: %w", k.High, err)
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("invalid low %q: %w", k.Low, err)
	}
	closeV, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return domain.Candle{}, fmt.Errorf("invalid close %q: %w", k.Close, err)
	}
	return domain.Candle{
		OpenTime: time.UnixMilli(k.OpenTime).UTC(),
		Open:     open,
		High:     high,
		Low:      low,
		Close:    closeV,
	}, nil
}

func (c *Client) handleError(ctx context.Context, err error, op string) error {
	c.logger.Error(ctx, err, op+" failed")
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ports.ErrContextCanceled, err)
	}
	return fmt.Errorf("%w: %v", ports.ErrSourceUnavailable, err)
}
