package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimOkurigana(t *testing.T) {
	cases := map[string]string{
		"足す":    "足",
		"書き出す":  "書出",
		"もし":    "もし",
		"おはよう":  "おはよう",
		"お酒を":   "お酒",
		"カウンター": "カウンター",
		"表示":    "表示",
		"":      "",
		"ABCする": "ABC",
	}

	for word, want := range cases {
		assert.Equal(t, want, TrimOkurigana(word), word)
	}
}

func TestKana(t *testing.T) {
	assert.True(t, IsHiragana('あ'))
	assert.False(t, IsHiragana('ア'))
	assert.True(t, IsKatakana('ー'))
	assert.True(t, IsKanji('々'))
	assert.False(t, IsKanji('a'))
}

func TestModuleNameFromPath(t *testing.T) {
	assert.Equal(t, "util", ModuleNameFromPath("lib/util.nako3"))
	assert.Equal(t, "util", ModuleNameFromPath("util"))
	assert.Equal(t, "a.js", ModuleNameFromPath("/x/a.js"))
}
