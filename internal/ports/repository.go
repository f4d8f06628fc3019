package ports

import (
	"context"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// SampleRepository defines the interface for storing and retrieving metric samples.
type SampleRepository interface {
	// SaveSamples persists a batch of samples for a metric and returns the
	// number of newly inserted rows (duplicates on metric+timestamp are skipped).
	SaveSamples(ctx context.Context, metric string, unit domain.Unit, samples []domain.Sample) (int, error)
	// FindByMetric retrieves samples for a metric within [from, to], ordered by
	// timestamp ascending. Returns an empty slice when nothing matches.
	FindByMetric(ctx context.Context, metric string, from, to time.Time) ([]domain.Sample, error)
	// Metrics lists the distinct metric names present in the store.
	Metrics(ctx context.Context) ([]string, error)
}
