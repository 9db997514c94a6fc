package resolve

import (
	"nakofront/common"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Suggestion tuning.
const (
	minSimilarity  = 0.5
	maxSuggestions = 3
)

// suggest returns a hint naming the known words that are spelled like name or
// the empty string if there are none.
func (t *Tagger) suggest(name string, scope int) string {
	candidates := t.mod.Names(scope)
	candidates = append(candidates, t.env.PluginNamesFor(nil)...)
	for _, imp := range t.mod.Imports {
		if mod, ok := t.env.Imports[common.ModuleNameFromPath(imp)]; ok {
			candidates = append(candidates, mod.Names(0)...)
		}
	}

	return formatHint(closestWords(name, candidates))
}

// closestWords returns up to three candidates with a Levenshtein similarity of
// at least one half to name, best first.
func closestWords(name string, candidates []string) []string {
	type scored struct {
		word  string
		score float64
	}

	metric := metrics.NewLevenshtein()
	seen := make(map[string]struct{})

	var matches []scored
	for _, c := range candidates {
		if c == "" || c == name {
			continue
		}

		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}

		if score := strutil.Similarity(name, c, metric); score >= minSimilarity {
			matches = append(matches, scored{word: c, score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}

		return matches[i].word < matches[j].word
	})

	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}

	words := make([]string, len(matches))
	for i, m := range matches {
		words[i] = m.word
	}

	return words
}

// formatHint renders suggested words as a message suffix.
func formatHint(words []string) string {
	if len(words) == 0 {
		return ""
	}

	return "（候補: " + strings.Join(words, "、") + "）"
}
