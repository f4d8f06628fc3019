// Package ohlc buckets a sample stream into fixed-width OHLC candles and
// derives Heiken-Ashi smoothed candles from them.
package ohlc

import (
	"sort"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// Aggregate buckets samples into candles of periodMinutes width. Bucket starts
// are floored to the period. Open/close come from the chronologically first
// and last sample in each bucket; high/low are the bucket extremes. Empty
// buckets are never emitted, and candles come out in ascending bucket order.
// The input is sorted defensively without being mutated.
func Aggregate(samples []domain.Sample, periodMinutes int) []domain.Candle {
	if len(samples) == 0 || periodMinutes <= 0 {
		return nil
	}

	sorted := make([]domain.Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	periodMs := int64(periodMinutes) * 60_000
	var out []domain.Candle
	var cur *domain.Candle
	var curBucket int64

	for _, s := range sorted {
		bucket := s.Timestamp.UnixMilli() / periodMs * periodMs
		if cur == nil || bucket != curBucket {
			if cur != nil {
				out = append(out, *cur)
			}
			curBucket = bucket
			cur = &domain.Candle{
				OpenTime: time.UnixMilli(bucket).UTC(),
				Open:     s.Value,
				High:     s.Value,
				Low:      s.Value,
				Close:    s.Value,
			}
			continue
		}
		if s.Value > cur.High {
			cur.High = s.Value
		}
		if s.Value < cur.Low {
			cur.Low = s.Value
		}
		cur.Close = s.Value
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// HeikenAshi derives smoothed candles using the standard recursive formula.
// Each candle's open depends on the previous Heiken-Ashi candle, so the scan
// must run in chronological order.
func HeikenAshi(candles []domain.Candle) []domain.HeikenAshiCandle {
	if len(candles) == 0 {
		return nil
	}
	out := make([]domain.HeikenAshiCandle, len(candles))
	for i, c := range candles {
		haClose := (c.Open + c.High + c.Low + c.Close) / 4
		haOpen := c.Open
		if i > 0 {
			haOpen = (out[i-1].Open + out[i-1].Close) / 2
		}
		out[i] = domain.HeikenAshiCandle{
			OpenTime: c.OpenTime,
			Open:     haOpen,
			High:     max3(c.High, haOpen, haClose),
			Low:      min3(c.Low, haOpen, haClose),
			Close:    haClose,
		}
	}
	return out
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
