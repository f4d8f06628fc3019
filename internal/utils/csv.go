package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/lromero74/metrics-core/internal/domain"
)

// WriteSamplesToCSV dumps samples as timestamp,value rows with a header.
func WriteSamplesToCSV(samples []domain.Sample, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "value"})
	for _, s := range samples {
		writer.Write([]string{
			s.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(s.Value, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadSamplesFromCSV loads timestamp,value rows. Timestamps may be RFC3339 or
// epoch milliseconds. A header row is skipped when present.
func ReadSamplesFromCSV(filename string) ([]domain.Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]domain.Sample, 0, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d: expected at least 2 columns, got %d", i+1, len(rec))
		}
		ts, err := parseTimestamp(rec[0])
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		value, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q: %w", i+1, rec[1], err)
		}
		samples = append(samples, domain.Sample{Timestamp: ts, Value: value})
	}
	return samples, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}
