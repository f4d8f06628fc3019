package ports

import (
	"context"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// CandleSource defines the interface for fetching historical candle data from
// an external market-data provider. Candle closes are the sample feed used for
// offline analysis runs.
type CandleSource interface {
	// GetCandlesRange fetches all candles for a symbol/interval between start
	// and end time, paging through the provider's result limit as needed.
	GetCandlesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]domain.Candle, error)
}
