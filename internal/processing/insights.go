package processing

import (
	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/spacesedan/review-analyzer/internal/utils"
)

const (
	snapshotLength = 100
	snapshotSuffix = "..."
)

// GenerateInsights derives percentages, the overall trend and the extreme
// reviews from an aggregated result. A result without reviews yields empty
// insights.
func GenerateInsights(result *models.AggregateResult) models.Insights {
	total := result.TotalReviews
	if total == 0 {
		return models.Insights{}
	}

	dist := result.SentimentDistribution
	insights := models.Insights{
		Populated:          true,
		PositivePercentage: percentage(dist.Positive, total),
		NegativePercentage: percentage(dist.Negative, total),
		NeutralPercentage:  percentage(dist.Neutral, total),
		OverallTrend:       TrendFor(result.SatisfactionScore),
	}

	if len(result.Reviews) > 0 {
		mostPositive, mostNegative := extremes(result.Reviews)
		insights.MostPositiveReview = snapshot(mostPositive)
		insights.MostNegativeReview = snapshot(mostNegative)
	}

	return insights
}

// TrendFor bands a satisfaction score. Each band includes its lower bound.
func TrendFor(satisfaction float64) models.OverallTrend {
	switch {
	case satisfaction >= 70:
		return models.TrendHighlyPositive
	case satisfaction >= 50:
		return models.TrendModeratelyPositive
	case satisfaction >= 30:
		return models.TrendMixed
	default:
		return models.TrendNegative
	}
}

func percentage(count, total int) float64 {
	return utils.Round(float64(count)/float64(total)*100, 1)
}

// extremes picks the highest and lowest reported polarity. Only a strictly
// greater (or smaller) value replaces the current pick, so the first review
// wins a tie.
func extremes(reviews []models.ScoredReview) (mostPositive, mostNegative models.ScoredReview) {
	mostPositive, mostNegative = reviews[0], reviews[0]
	for _, r := range reviews[1:] {
		if r.Polarity > mostPositive.Polarity {
			mostPositive = r
		}
		if r.Polarity < mostNegative.Polarity {
			mostNegative = r
		}
	}
	return mostPositive, mostNegative
}

// snapshot keeps the first 100 characters of the text and always appends the
// ellipsis, even when nothing was cut.
func snapshot(r models.ScoredReview) *models.ReviewSnapshot {
	text := []rune(r.ReviewText)
	if len(text) > snapshotLength {
		text = text[:snapshotLength]
	}
	return &models.ReviewSnapshot{
		Text:     string(text) + snapshotSuffix,
		Polarity: r.Polarity,
	}
}
