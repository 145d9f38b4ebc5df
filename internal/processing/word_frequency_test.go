package processing

import (
	"fmt"
	"testing"

	"github.com/spacesedan/review-analyzer/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestWordFrequency_MostCommon(t *testing.T) {
	wf := newWordFrequency()
	wf.addWords([]string{"this", "is", "fine", "fine", "work", "this", "the"})
	wf.addWords([]string{"work", "work", "done"})

	assert.Equal(t, []models.WordCount{
		{Word: "work", Count: 3},
		{Word: "this", Count: 2},
		{Word: "fine", Count: 2},
		{Word: "done", Count: 1},
	}, wf.mostCommon(10))
	assert.Equal(t, 4, wf.unique())
}

func TestWordFrequency_LimitsToTen(t *testing.T) {
	wf := newWordFrequency()
	for i := 0; i < 15; i++ {
		wf.addWords([]string{fmt.Sprintf("word%c", 'a'+i)})
	}

	got := wf.analysis()
	assert.Len(t, got.MostCommon, 10)
	assert.Equal(t, 15, got.TotalUniqueWords)
	assert.Equal(t, "worda", got.MostCommon[0].Word)
	assert.Equal(t, "wordj", got.MostCommon[9].Word)
	for _, wc := range got.MostCommon {
		assert.Greater(t, len(wc.Word), 3)
	}
}

func TestWordFrequency_SkipsShortWords(t *testing.T) {
	wf := newWordFrequency()
	wf.addWords([]string{"a", "an", "the", "good"})

	assert.Equal(t, []models.WordCount{{Word: "good", Count: 1}}, wf.mostCommon(10))
}
