package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/ingest"
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Review_ID,Review_Text,Rating,Product_Category,Verified_Purchase
R001,This product is amazing and the quality is great,5,Electronics,Yes
R002,"Terrible. Broken on arrival, asked for a refund.",1,Electronics,No
R003,,3,Home,Yes
R004,Arrived on Tuesday in a plain brown box,3,Home,Yes
R005,"Love it! Fast shipping, easy setup.",4.5,Kitchen,No
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type recordingSink struct {
	reportID string
	result   *models.AggregateResult
	writeErr error
	closed   bool
}

func (s *recordingSink) Write(_ context.Context, reportID string, result *models.AggregateResult) error {
	s.reportID, s.result = reportID, result
	return s.writeErr
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func openerFor(sink report.Sink, calls *int) SinkOpener {
	return func(context.Context) (report.Sink, error) {
		*calls++
		return sink, nil
	}
}

func TestRun(t *testing.T) {
	sink := &recordingSink{}
	var opened int

	result, err := Run(context.Background(), Options{InputPath: writeInput(t, sampleCSV)}, openerFor(sink, &opened))
	require.NoError(t, err)

	assert.Equal(t, 1, opened)
	assert.True(t, sink.closed)
	assert.NotEmpty(t, sink.reportID)
	assert.Same(t, result, sink.result)

	assert.Equal(t, 4, result.TotalReviews)
	assert.Equal(t, models.SentimentDistribution{Positive: 2, Negative: 1, Neutral: 1}, result.SentimentDistribution)
	assert.Equal(t, 62.5, result.SatisfactionScore)
	assert.Equal(t, models.TrendModeratelyPositive, result.Insights.OverallTrend)
	assert.Equal(t, 4.5, result.Reviews[3].Rating)
	assert.Equal(t, "Kitchen", result.Reviews[3].Category)

	require.NotNil(t, result.Insights.MostPositiveReview)
	assert.Equal(t, "Love it! Fast shipping, easy setup....", result.Insights.MostPositiveReview.Text)
	require.NotNil(t, result.Insights.MostNegativeReview)
	assert.Equal(t, -0.375, result.Insights.MostNegativeReview.Polarity)
}

func TestRun_WritesFileReport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "analysis_results.json")
	cfg := &config.Config{ReportSink: config.SinkFile, OutputPath: out}

	_, err := Run(context.Background(), Options{InputPath: writeInput(t, sampleCSV), CrossCheck: true}, SinkFromConfig(cfg))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded struct {
		TotalReviews int                   `json:"total_reviews"`
		Reviews      []models.ScoredReview `json:"reviews"`
		Insights     models.Insights       `json:"insights"`
		WordAnalysis models.WordAnalysis   `json:"word_analysis"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 4, decoded.TotalReviews)
	assert.Len(t, decoded.Reviews, 4)
	assert.True(t, decoded.Insights.Populated)
	assert.LessOrEqual(t, len(decoded.WordAnalysis.MostCommon), 10)
}

func TestRun_InputMissing(t *testing.T) {
	sink := &recordingSink{}
	var opened int

	_, err := Run(context.Background(), Options{InputPath: filepath.Join(t.TempDir(), "nope.csv")}, openerFor(sink, &opened))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputMissing)
	assert.NotErrorIs(t, err, ErrProcessing)
	assert.Zero(t, opened, "no sink is opened for a failed run")
}

func TestRun_InvalidRating(t *testing.T) {
	input := "Review_ID,Review_Text,Rating\nR1,Great,5\nR2,Bad,n/a\n"
	var opened int

	_, err := Run(context.Background(), Options{InputPath: writeInput(t, input)}, openerFor(&recordingSink{}, &opened))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessing)
	assert.ErrorIs(t, err, ingest.ErrInvalidRating)
	assert.Zero(t, opened)
}

func TestRun_SinkErrors(t *testing.T) {
	input := writeInput(t, sampleCSV)

	_, err := Run(context.Background(), Options{InputPath: input}, func(context.Context) (report.Sink, error) {
		return nil, errors.New("broker unavailable")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessing)

	sink := &recordingSink{writeErr: errors.New("disk full")}
	var opened int
	_, err = Run(context.Background(), Options{InputPath: input}, openerFor(sink, &opened))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessing)
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, sink.closed)
}

func TestAnalyze_EmptyFile(t *testing.T) {
	result, err := Analyze(Options{InputPath: writeInput(t, "Review_ID,Review_Text\n")})
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalReviews)
	assert.False(t, result.Insights.Populated)
}

func TestSinkFromConfig_File(t *testing.T) {
	sink, err := SinkFromConfig(&config.Config{ReportSink: config.SinkFile, OutputPath: "out.json"})(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &report.FileSink{}, sink)

	_, err = SinkFromConfig(&config.Config{ReportSink: "ftp"})(context.Background())
	require.Error(t, err)
}
