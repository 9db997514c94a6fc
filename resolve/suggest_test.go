package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestWords(t *testing.T) {
	candidates := []string{"カウンタ", "カウント", "表示", "カウンタ", "", "カウンター"}

	words := closestWords("カウンター", candidates)
	assert.Equal(t, []string{"カウンタ", "カウント"}, words)
}

func TestClosestWordsLimit(t *testing.T) {
	words := closestWords("abcd", []string{"abce", "abcf", "abcg", "abch"})
	assert.Len(t, words, maxSuggestions)
	assert.Equal(t, "abce", words[0])
}

func TestFormatHint(t *testing.T) {
	assert.Empty(t, formatHint(nil))
	assert.Equal(t, "（候補: A、B）", formatHint([]string{"A", "B"}))
}
