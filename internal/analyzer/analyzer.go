package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/review-analyzer/internal/ingest"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/processing"
	"github.com/spacesedan/review-analyzer/internal/report"
	"github.com/spacesedan/review-analyzer/internal/sentiment"
)

var (
	ErrInputMissing = errors.New("input source missing")
	ErrProcessing   = errors.New("processing failed")
)

type Options struct {
	InputPath string
	// CrossCheck scores every review with VADER as well and logs how often
	// the two labels agree. The report is not affected.
	CrossCheck bool
}

// SinkOpener is called only after the report has been built, so a failed run
// never touches the destination.
type SinkOpener func(ctx context.Context) (report.Sink, error)

// Analyze reads the input file and builds the full report in memory.
func Analyze(opts Options) (*models.AggregateResult, error) {
	reviews, err := ingest.ReadReviewsFile(opts.InputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, opts.InputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	slog.Info("[Analyzer] Processing reviews", slog.Int("count", len(reviews)))

	var observers []processing.ReviewObserver
	var check sentiment.CrossCheck
	if opts.CrossCheck {
		observers = append(observers, func(review models.Review, score sentiment.Score) {
			check.Observe(review.ReviewText, score.Label)
		})
	}

	result := processing.AggregateReviews(reviews, observers...)

	if opts.CrossCheck {
		slog.Info("[Analyzer] VADER cross-check",
			slog.Int("compared", check.Compared),
			slog.Int("agreed", check.Agreed),
			slog.Float64("agreement_rate", check.AgreementRate()))
	}

	return result, nil
}

// Run analyzes the input and hands the finished report to the sink returned by
// open. Either a complete report is written or nothing is.
func Run(ctx context.Context, opts Options, open SinkOpener) (*models.AggregateResult, error) {
	start := time.Now()
	slog.Info("[Analyzer] Starting product review sentiment analysis",
		slog.String("input", opts.InputPath))

	result, err := Analyze(opts)
	if err != nil {
		return nil, err
	}

	sink, err := open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			slog.Warn("[Analyzer] Failed to close report sink", slog.String("error", cerr.Error()))
		}
	}()

	reportID := uuid.NewString()
	if err := sink.Write(ctx, reportID, result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	dist := result.SentimentDistribution
	slog.Info("[Analyzer] Analysis completed successfully",
		slog.String("report_id", reportID),
		slog.Int("positive", dist.Positive),
		slog.Int("negative", dist.Negative),
		slog.Int("neutral", dist.Neutral),
		slog.Float64("satisfaction_score", result.SatisfactionScore),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}
