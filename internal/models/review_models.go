package models

// Review is a single row read from the input file.
type Review struct {
	ReviewID   string  `json:"review_id"`
	ReviewText string  `json:"review_text"`
	Rating     float64 `json:"rating"`
	Category   string  `json:"category"`
	Verified   bool    `json:"verified"`
}

// ScoredReview keeps the identifying fields of a Review along with its
// sentiment. Polarity and Subjectivity are rounded to 3 decimals.
type ScoredReview struct {
	ReviewID     string         `json:"review_id" dynamodbav:"review_id"`
	ReviewText   string         `json:"review_text" dynamodbav:"review_text"`
	Rating       float64        `json:"rating" dynamodbav:"rating"`
	Sentiment    SentimentLabel `json:"sentiment" dynamodbav:"sentiment"`
	Polarity     float64        `json:"polarity" dynamodbav:"polarity"`
	Subjectivity float64        `json:"subjectivity" dynamodbav:"subjectivity"`
	Category     string         `json:"category" dynamodbav:"category"`
	Verified     bool           `json:"verified" dynamodbav:"verified"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)
