package common

import (
	"path/filepath"
	"strings"
	"unicode"
)

// IsHiragana returns whether r is a hiragana character.
func IsHiragana(r rune) bool {
	return r >= 'ぁ' && r <= 'ゟ'
}

// IsKatakana returns whether r is a katakana character or the long vowel mark.
func IsKatakana(r rune) bool {
	return (r >= 'ァ' && r <= 'ヿ') || r == 'ー'
}

// IsKanji returns whether r is a CJK ideograph or one of the ideographic
// iteration marks.
func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r) || r == '々' || r == '〆' || r == 'ヶ'
}

// TrimOkurigana converts a word into its lookup key by removing okurigana. A
// word that does not start with hiragana loses all of its hiragana, a word made
// only of hiragana is unchanged, and any other word loses its trailing
// hiragana.
func TrimOkurigana(word string) string {
	rs := []rune(word)
	if len(rs) == 0 {
		return word
	}

	if !IsHiragana(rs[0]) {
		var sb strings.Builder
		for _, r := range rs {
			if !IsHiragana(r) {
				sb.WriteRune(r)
			}
		}

		return sb.String()
	}

	end := len(rs)
	for end > 0 && IsHiragana(rs[end-1]) {
		end--
	}

	if end == 0 {
		return word
	}

	return string(rs[:end])
}

// ModuleNameFromPath converts an import path into a module name: the file name
// without its source extension.
func ModuleNameFromPath(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, NakoFileExt)
}
