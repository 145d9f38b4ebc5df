// Package report encodes the analysis result and hands it to the configured
// destination. Every sink receives the finished report exactly once.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spacesedan/review-analyzer/internal/models"
)

type Sink interface {
	Write(ctx context.Context, reportID string, result *models.AggregateResult) error
	Close() error
}

// Encode renders the report as two-space indented JSON. Non-ASCII text and
// HTML characters are written as-is.
func Encode(result *models.AggregateResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("[Report] Failed to encode report: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
