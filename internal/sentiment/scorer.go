package sentiment

import "github.com/spacesedan/review-analyzer/internal/models"

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Score is the raw, unrounded output of CalculateSentiment.
type Score struct {
	Polarity     float64
	Subjectivity float64
	Label        models.SentimentLabel
}

// CalculateSentiment counts lexicon hits over the cleaned tokens of text.
//
// Polarity is (positive - negative) / total tokens, so long texts padded with
// neutral words are pulled towards zero. Subjectivity is the share of tokens
// that are lexicon hits. The label only leaves neutral once polarity is
// strictly beyond ±0.1.
func CalculateSentiment(text string) Score {
	words := Words(CleanText(text))
	if len(words) == 0 {
		return Score{Label: models.SentimentNeutral}
	}

	var positiveCount, negativeCount int
	for _, word := range words {
		if IsPositiveWord(word) {
			positiveCount++
		}
		if IsNegativeWord(word) {
			negativeCount++
		}
	}

	total := float64(len(words))
	hits := positiveCount + negativeCount

	var polarity float64
	if hits != 0 {
		polarity = float64(positiveCount-negativeCount) / total
	}

	return Score{
		Polarity:     polarity,
		Subjectivity: float64(hits) / total,
		Label:        labelFor(polarity),
	}
}

func labelFor(polarity float64) models.SentimentLabel {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}
