package models

import (
	"encoding/json"
	"fmt"
)

// SentimentDistribution counts reviews per label. The three counts always
// sum to AggregateResult.TotalReviews.
type SentimentDistribution struct {
	Positive int `json:"positive" dynamodbav:"positive"`
	Negative int `json:"negative" dynamodbav:"negative"`
	Neutral  int `json:"neutral" dynamodbav:"neutral"`
}

func (d *SentimentDistribution) Add(label SentimentLabel) {
	switch label {
	case SentimentPositive:
		d.Positive++
	case SentimentNegative:
		d.Negative++
	default:
		d.Neutral++
	}
}

func (d SentimentDistribution) Count(label SentimentLabel) int {
	switch label {
	case SentimentPositive:
		return d.Positive
	case SentimentNegative:
		return d.Negative
	default:
		return d.Neutral
	}
}

func (d SentimentDistribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

// WordCount is encoded as a two element array, [word, count].
type WordCount struct {
	Word  string
	Count int
}

func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.Count})
}

func (w *WordCount) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("word count: want [word, count], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &w.Word); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &w.Count)
}

type WordAnalysis struct {
	MostCommon       []WordCount `json:"most_common" dynamodbav:"-"`
	TotalUniqueWords int         `json:"total_unique_words" dynamodbav:"total_unique_words"`
}

// AggregateResult is the full report written at the end of a run.
type AggregateResult struct {
	TotalReviews          int                   `json:"total_reviews" dynamodbav:"total_reviews"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution" dynamodbav:"sentiment_distribution"`
	AveragePolarity       float64               `json:"average_polarity" dynamodbav:"average_polarity"`
	AverageSubjectivity   float64               `json:"average_subjectivity" dynamodbav:"average_subjectivity"`
	SatisfactionScore     float64               `json:"satisfaction_score" dynamodbav:"satisfaction_score"`
	Reviews               []ScoredReview        `json:"reviews" dynamodbav:"-"`
	Insights              Insights              `json:"insights" dynamodbav:"-"`
	WordAnalysis          WordAnalysis          `json:"word_analysis" dynamodbav:"word_analysis"`
}
