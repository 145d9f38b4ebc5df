package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/review-analyzer/internal/models"
)

var (
	analyzer    = govader.NewSentimentIntensityAnalyzer()
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the resulting tags.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")

	return strings.Join(strings.Fields(plain), " ")
}

// AnalyzeWithVADER returns the VADER compound score for text and the label it
// maps to. It is only used to cross-check the lexicon scorer and never feeds
// the report.
func AnalyzeWithVADER(text string) (float64, models.SentimentLabel) {
	score := analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound

	var label models.SentimentLabel
	if score >= 0.20 {
		label = models.SentimentPositive
	} else if score <= -0.20 {
		label = models.SentimentNegative
	} else {
		label = models.SentimentNeutral
	}

	return score, label
}

// CrossCheck summarises how often the lexicon and VADER labels agree.
type CrossCheck struct {
	Compared int
	Agreed   int
}

func (c *CrossCheck) Observe(text string, label models.SentimentLabel) {
	_, vaderLabel := AnalyzeWithVADER(text)
	c.Compared++
	if vaderLabel == label {
		c.Agreed++
	}
}

func (c CrossCheck) AgreementRate() float64 {
	if c.Compared == 0 {
		return 0
	}
	return float64(c.Agreed) / float64(c.Compared)
}
