package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.AggregateResult {
	return &models.AggregateResult{
		TotalReviews:          1,
		SentimentDistribution: models.SentimentDistribution{Positive: 1},
		AveragePolarity:       0.333,
		AverageSubjectivity:   0.333,
		SatisfactionScore:     100,
		Reviews: []models.ScoredReview{{
			ReviewID:     "R1",
			ReviewText:   "Great <value> & café",
			Rating:       4.5,
			Sentiment:    models.SentimentPositive,
			Polarity:     0.333,
			Subjectivity: 0.333,
			Category:     "Home",
			Verified:     true,
		}},
		Insights: models.Insights{
			Populated:          true,
			PositivePercentage: 100,
			OverallTrend:       models.TrendHighlyPositive,
			MostPositiveReview: &models.ReviewSnapshot{Text: "Great <value> & café...", Polarity: 0.333},
			MostNegativeReview: &models.ReviewSnapshot{Text: "Great <value> & café...", Polarity: 0.333},
		},
		WordAnalysis: models.WordAnalysis{
			MostCommon:       []models.WordCount{{Word: "great", Count: 1}, {Word: "value", Count: 1}},
			TotalUniqueWords: 2,
		},
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(sampleResult())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"total_reviews": 1,
		"sentiment_distribution": {"positive": 1, "negative": 0, "neutral": 0},
		"average_polarity": 0.333,
		"average_subjectivity": 0.333,
		"satisfaction_score": 100,
		"reviews": [{
			"review_id": "R1",
			"review_text": "Great <value> & café",
			"rating": 4.5,
			"sentiment": "positive",
			"polarity": 0.333,
			"subjectivity": 0.333,
			"category": "Home",
			"verified": true
		}],
		"insights": {
			"positive_percentage": 100,
			"negative_percentage": 0,
			"neutral_percentage": 0,
			"overall_trend": "Highly Positive",
			"most_positive_review": {"text": "Great <value> & café...", "polarity": 0.333},
			"most_negative_review": {"text": "Great <value> & café...", "polarity": 0.333}
		},
		"word_analysis": {
			"most_common": [["great", 1], ["value", 1]],
			"total_unique_words": 2
		}
	}`, string(data))

	assert.Contains(t, string(data), "Great <value> & café", "html and non-ascii are not escaped")
	assert.Contains(t, string(data), "\n  \"total_reviews\": 1,")
	assert.NotEqual(t, byte('\n'), data[len(data)-1])
}

func TestEncode_EmptyRun(t *testing.T) {
	data, err := Encode(&models.AggregateResult{Reviews: []models.ScoredReview{}})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"total_reviews": 0,
		"sentiment_distribution": {"positive": 0, "negative": 0, "neutral": 0},
		"average_polarity": 0,
		"average_subjectivity": 0,
		"satisfaction_score": 0,
		"reviews": [],
		"insights": {},
		"word_analysis": {"most_common": null, "total_unique_words": 0}
	}`, string(data))
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "analysis_results.json")
	sink := NewFileSink(path)

	require.NoError(t, sink.Write(context.Background(), "report-1", sampleResult()))
	require.NoError(t, sink.Close())

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Encode(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, want, written)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

type fakeStore struct {
	reportID string
	result   *models.AggregateResult
	err      error
}

func (f *fakeStore) StoreReport(_ context.Context, reportID string, result *models.AggregateResult) error {
	f.reportID, f.result = reportID, result
	return f.err
}

func TestDynamoDBSink(t *testing.T) {
	store := &fakeStore{}
	sink := NewDynamoDBSink(store)
	result := sampleResult()

	require.NoError(t, sink.Write(context.Background(), "report-1", result))
	assert.Equal(t, "report-1", store.reportID)
	assert.Same(t, result, store.result)

	store.err = errors.New("boom")
	assert.EqualError(t, sink.Write(context.Background(), "report-2", result), "boom")
}

type fakePublisher struct {
	topic, key string
	value      []byte
	closed     bool
}

func (f *fakePublisher) Publish(_ context.Context, topic, key string, value []byte) error {
	f.topic, f.key, f.value = topic, key, value
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestKafkaSink(t *testing.T) {
	producer := &fakePublisher{}
	sink := NewKafkaSink(producer, "review-reports")

	require.NoError(t, sink.Write(context.Background(), "report-1", sampleResult()))
	assert.Equal(t, "review-reports", producer.topic)
	assert.Equal(t, "report-1", producer.key)

	want, err := Encode(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, want, producer.value)

	require.NoError(t, sink.Close())
	assert.True(t, producer.closed)
}

type fakeKeyValueStore struct {
	entries map[string][]byte
	ttl     time.Duration
	err     error
}

func (f *fakeKeyValueStore) StoreWithTTL(_ context.Context, entries map[string][]byte, ttl time.Duration) error {
	f.entries, f.ttl = entries, ttl
	return f.err
}

func (f *fakeKeyValueStore) Close() error { return nil }

func TestValkeySink(t *testing.T) {
	store := &fakeKeyValueStore{}
	sink := NewValkeySink(store, time.Hour)

	require.NoError(t, sink.Write(context.Background(), "report-1", sampleResult()))
	assert.Equal(t, time.Hour, store.ttl)
	assert.Equal(t, []byte("report-1"), store.entries[ValkeyLatestKey])
	assert.Contains(t, string(store.entries["reviews:report:report-1"]), `"total_reviews": 1`)

	store.err = errors.New("connection refused")
	err := sink.Write(context.Background(), "report-2", sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[ValkeySink] Failed to cache report report-2")
}
