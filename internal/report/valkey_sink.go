package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/review-analyzer/internal/models"
)

const (
	valkeyReportPrefix = "reviews:report:"
	ValkeyLatestKey    = valkeyReportPrefix + "latest"
)

type keyValueStore interface {
	StoreWithTTL(ctx context.Context, entries map[string][]byte, ttl time.Duration) error
	Close() error
}

// ValkeySink caches the encoded report under its id and points the latest
// key at that id. Both keys expire after ttl.
type ValkeySink struct {
	store keyValueStore
	ttl   time.Duration
}

func NewValkeySink(store keyValueStore, ttl time.Duration) *ValkeySink {
	return &ValkeySink{store: store, ttl: ttl}
}

func ValkeyReportKey(reportID string) string {
	return valkeyReportPrefix + reportID
}

func (s *ValkeySink) Write(ctx context.Context, reportID string, result *models.AggregateResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}

	err = s.store.StoreWithTTL(ctx, map[string][]byte{
		ValkeyReportKey(reportID): data,
		ValkeyLatestKey:           []byte(reportID),
	}, s.ttl)
	if err != nil {
		return fmt.Errorf("[ValkeySink] Failed to cache report %s: %w", reportID, err)
	}

	slog.Info("[ValkeySink] Report cached",
		slog.String("key", ValkeyReportKey(reportID)),
		slog.Duration("ttl", s.ttl))
	return nil
}

func (s *ValkeySink) Close() error {
	return s.store.Close()
}
