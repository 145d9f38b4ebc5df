package processing

import (
	"log/slog"
	"strings"

	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/sentiment"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

const (
	scorePrecision        = 3
	satisfactionPrecision = 1
)

// ReviewObserver is called once for every review that gets scored.
type ReviewObserver func(review models.Review, score sentiment.Score)

// AggregateReviews scores every review with non-blank text, in input order,
// and builds the report. Blank reviews are skipped and never counted.
// The returned report already carries its insights.
func AggregateReviews(reviews []models.Review, observers ...ReviewObserver) *models.AggregateResult {
	result := &models.AggregateResult{
		Reviews: make([]models.ScoredReview, 0, len(reviews)),
	}

	words := newWordFrequency()
	polarities := make([]float64, 0, len(reviews))
	subjectivities := make([]float64, 0, len(reviews))

	for _, review := range reviews {
		if strings.TrimSpace(review.ReviewText) == "" {
			slog.Debug("[Aggregator] Skipping review with empty text",
				slog.String("review_id", review.ReviewID))
			continue
		}

		score := sentiment.CalculateSentiment(review.ReviewText)
		for _, observe := range observers {
			observe(review, score)
		}

		result.Reviews = append(result.Reviews, models.ScoredReview{
			ReviewID:     review.ReviewID,
			ReviewText:   review.ReviewText,
			Rating:       review.Rating,
			Sentiment:    score.Label,
			Polarity:     utils.Round(score.Polarity, scorePrecision),
			Subjectivity: utils.Round(score.Subjectivity, scorePrecision),
			Category:     review.Category,
			Verified:     review.Verified,
		})
		result.SentimentDistribution.Add(score.Label)
		polarities = append(polarities, score.Polarity)
		subjectivities = append(subjectivities, score.Subjectivity)

		words.addWords(sentiment.Words(sentiment.CleanText(review.ReviewText)))
	}

	result.TotalReviews = len(result.Reviews)
	if result.TotalReviews > 0 {
		result.AveragePolarity = utils.Round(utils.Mean(polarities), scorePrecision)
		result.AverageSubjectivity = utils.Round(utils.Mean(subjectivities), scorePrecision)
		result.SatisfactionScore = SatisfactionScore(result.SentimentDistribution)
	}

	result.WordAnalysis = words.analysis()
	result.Insights = GenerateInsights(result)

	slog.Debug("[Aggregator] Aggregated reviews",
		slog.Int("input", len(reviews)),
		slog.Int("scored", result.TotalReviews))

	return result
}

// SatisfactionScore maps the positive and negative ratios onto 0..100.
// All positive gives 100, all negative gives 0.
func SatisfactionScore(dist models.SentimentDistribution) float64 {
	total := dist.Total()
	if total == 0 {
		return 0
	}
	positiveRatio := float64(dist.Positive) / float64(total)
	negativeRatio := float64(dist.Negative) / float64(total)

	return utils.Round((positiveRatio-negativeRatio+1)*50, satisfactionPrecision)
}
