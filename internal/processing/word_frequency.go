package processing

import (
	"sort"

	"github.com/spacesedan/review-analyzer/internal/models"
)

const (
	minWordLength = 4
	mostCommonN   = 10
)

// wordFrequency counts words and remembers the order they were first seen in,
// so ties in the ranking resolve to the earliest word.
type wordFrequency struct {
	counts    map[string]int
	firstSeen map[string]int
	order     []string
}

func newWordFrequency() *wordFrequency {
	return &wordFrequency{
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

// addWords records every word of length >= minWordLength.
func (wf *wordFrequency) addWords(words []string) {
	for _, word := range words {
		if len(word) < minWordLength {
			continue
		}
		if _, seen := wf.firstSeen[word]; !seen {
			wf.firstSeen[word] = len(wf.order)
			wf.order = append(wf.order, word)
		}
		wf.counts[word]++
	}
}

func (wf *wordFrequency) unique() int {
	return len(wf.order)
}

// mostCommon returns up to n words by descending count.
func (wf *wordFrequency) mostCommon(n int) []models.WordCount {
	ranked := make([]models.WordCount, 0, len(wf.order))
	for _, word := range wf.order {
		ranked = append(ranked, models.WordCount{Word: word, Count: wf.counts[word]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return wf.firstSeen[ranked[i].Word] < wf.firstSeen[ranked[j].Word]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func (wf *wordFrequency) analysis() models.WordAnalysis {
	return models.WordAnalysis{
		MostCommon:       wf.mostCommon(mostCommonN),
		TotalUniqueWords: wf.unique(),
	}
}
