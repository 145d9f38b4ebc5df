package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spacesedan/review-analyzer/internal/models"
)

// FileSink writes the report to a single JSON file. The file is written to a
// temporary name first and renamed into place, so a failed run never leaves a
// partial report behind.
type FileSink struct {
	path string
}

func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Write(_ context.Context, reportID string, result *models.AggregateResult) error {
	data, err := Encode(result)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("[FileSink] Failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("[FileSink] Failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("[FileSink] Failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[FileSink] Failed to close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("[FileSink] Failed to set report permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("[FileSink] Failed to move report into place: %w", err)
	}

	slog.Info("[FileSink] Report written",
		slog.String("report_id", reportID),
		slog.String("path", s.path))
	return nil
}

func (s *FileSink) Close() error { return nil }
