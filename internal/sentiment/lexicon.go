package sentiment

// Word lists used for membership tests. Entries are lowercase and never
// mutated after init, so lookups are safe from any goroutine.
var (
	positiveWords = newWordSet(
		"amazing", "excellent", "fantastic", "great", "wonderful", "awesome",
		"perfect", "love", "best", "good", "nice", "beautiful", "outstanding",
		"brilliant", "superb", "magnificent", "incredible", "marvelous",
		"exceptional", "impressive", "delightful", "pleased", "satisfied",
		"happy", "recommend", "quality", "fast", "quick", "easy", "comfortable",
	)

	negativeWords = newWordSet(
		"terrible", "awful", "horrible", "bad", "worst", "hate", "disappointing",
		"useless", "waste", "poor", "cheap", "broken", "defective", "slow",
		"difficult", "hard", "uncomfortable", "annoying", "frustrating",
		"expensive", "overpriced", "fake", "fraud", "scam", "regret",
		"return", "refund", "complaint", "problem", "issue", "fail",
	)
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

// IsPositiveWord reports whether word is in the positive lexicon.
func IsPositiveWord(word string) bool { return positiveWords.has(word) }

// IsNegativeWord reports whether word is in the negative lexicon.
func IsNegativeWord(word string) bool { return negativeWords.has(word) }
