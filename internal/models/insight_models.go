package models

import (
	"bytes"
	"encoding/json"
)

type OverallTrend string

const (
	TrendHighlyPositive     OverallTrend = "Highly Positive"
	TrendModeratelyPositive OverallTrend = "Moderately Positive"
	TrendMixed              OverallTrend = "Mixed"
	TrendNegative           OverallTrend = "Negative"
)

// ReviewSnapshot is the truncated text and reported polarity of a single review.
type ReviewSnapshot struct {
	Text     string  `json:"text"`
	Polarity float64 `json:"polarity"`
}

// Insights is empty (and encodes as {}) when a run scored no reviews.
type Insights struct {
	Populated          bool            `json:"-"`
	PositivePercentage float64         `json:"positive_percentage"`
	NegativePercentage float64         `json:"negative_percentage"`
	NeutralPercentage  float64         `json:"neutral_percentage"`
	OverallTrend       OverallTrend    `json:"overall_trend"`
	MostPositiveReview *ReviewSnapshot `json:"most_positive_review,omitempty"`
	MostNegativeReview *ReviewSnapshot `json:"most_negative_review,omitempty"`
}

func (i Insights) MarshalJSON() ([]byte, error) {
	if !i.Populated {
		return []byte("{}"), nil
	}

	// Snapshot text is written unescaped, like the rest of the report.
	type insights Insights
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(insights(i)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (i *Insights) UnmarshalJSON(data []byte) error {
	type insights Insights
	var out insights
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	out.Populated = out.OverallTrend != ""
	*i = Insights(out)
	return nil
}
