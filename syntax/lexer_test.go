package syntax

import (
	"nakofront/report"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) ([]Token, *report.Collector) {
	t.Helper()

	diags := report.NewCollector("lex", 0)
	tokens, _ := Tokenize(src, diags)
	return tokens, diags
}

// nonSpace filters out whitespace and line ends.
func nonSpace(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Kind != TOK_SPACE && tok.Kind != TOK_EOL {
			out = append(out, tok)
		}
	}

	return out
}

func TestTokenizeIsLossless(t *testing.T) {
	sources := []string{
		"Aは1\nAを表示",
		"●(AとBを)足算とは\n  AとBを足して戻る\nここまで",
		"「こんにちは{名前}さん」を表示。 # コメント",
		"/* 範囲 */ 10px 5個 0x1F\r\n３。",
		"「閉じていない",
		"A=[1, 2, {キー: 3}]@キー\n_\n続き",
		"　　全角\t\tタブ\n",
	}

	for _, src := range sources {
		tokens, _ := tokenize(t, src)

		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Text)
		}

		assert.Equal(t, src, sb.String(), "source %q", src)
	}
}

func TestTokenizeLineLengths(t *testing.T) {
	_, lengths := Tokenize("あいう\n\nA\r\nBC", report.NewCollector("lex", 0))
	assert.Equal(t, []int{3, 0, 1, 2}, lengths)
}

func TestIndentLevels(t *testing.T) {
	cases := []struct {
		src   string
		level int
	}{
		{"A", 0},
		{"  A", 2},
		{"\tA", 8},
		{" \tA", 8},
		{"\t A", 9},
		{"　A", 2},
		{"・A", 1},
		{"　 A", 3},
	}

	for _, c := range cases {
		tokens, _ := tokenize(t, c.src)
		words := nonSpace(tokens)
		require.Len(t, words, 1, "source %q", c.src)
		assert.Equal(t, c.level, words[0].Indent.Level, "source %q", c.src)
	}
}

func TestIndentSharedByLine(t *testing.T) {
	tokens, _ := tokenize(t, "  AをBに\nC")
	words := nonSpace(tokens)
	require.Len(t, words, 3)

	assert.Equal(t, 2, words[0].Indent.Level)
	assert.Equal(t, 2, words[1].Indent.Level)
	assert.Equal(t, 0, words[2].Indent.Level)
	assert.Equal(t, "  ", words[0].Indent.Text)
}

func TestJosi(t *testing.T) {
	tokens, _ := tokenize(t, "AとBを足す")
	words := nonSpace(tokens)
	require.Len(t, words, 3)

	assert.Equal(t, "A", words[0].Value)
	assert.Equal(t, "と", words[0].Josi)
	assert.Equal(t, 1, words[0].JosiStartCol)
	assert.Equal(t, 1, words[0].ResEndCol)
	assert.Equal(t, "Aと", words[0].Text)

	assert.Equal(t, "を", words[1].Josi)
	assert.Equal(t, "足す", words[2].Value)
	assert.Equal(t, "足", words[2].Key)
	assert.Equal(t, "", words[2].Josi)
	assert.Equal(t, -1, words[2].JosiStartCol)
}

func TestRemovedJosi(t *testing.T) {
	tokens, _ := tokenize(t, "Aを表示すること")
	words := nonSpace(tokens)
	require.Len(t, words, 2)

	assert.Equal(t, "表示する", words[1].Value)
	assert.Equal(t, "表示すること", words[1].Text)
	assert.Equal(t, "", words[1].Josi)
	assert.Equal(t, "表示", words[1].Key)
}

func TestJosiSeparator(t *testing.T) {
	tokens, _ := tokenize(t, "Aと、B")
	words := nonSpace(tokens)
	require.Len(t, words, 2)

	assert.Equal(t, "Aと、", words[0].Text)
	assert.Equal(t, "と", words[0].Josi)
}

func TestReservedWords(t *testing.T) {
	cases := map[string]Kind{
		"回":     TOK_KAI,
		"間":     TOK_AIDA,
		"繰り返す":  TOK_KURIKAESU,
		"反復":    TOK_HANPUKU,
		"抜ける":   TOK_NUKERU,
		"続ける":   TOK_TSUZUKERU,
		"戻る":    TOK_MODORU,
		"代入":    TOK_DAINYU,
		"条件分岐":  TOK_JOUKEN_BUNKI,
		"エラー監視": TOK_ERROR_KANSHI,
		"ここから":  TOK_KOKOKARA,
		"ここまで":  TOK_KOKOMADE,
		"もし":    TOK_MOSHI,
		"違えば":   TOK_CHIGAEBA,
	}

	for src, kind := range cases {
		tokens, _ := tokenize(t, src)
		require.NotEmpty(t, tokens, "source %q", src)
		assert.Equal(t, kind, tokens[0].Kind, "source %q", src)
	}
}

func TestWordEndingInAida(t *testing.T) {
	tokens, _ := tokenize(t, "続くの間")
	words := nonSpace(tokens)
	require.Len(t, words, 2)

	assert.Equal(t, "続く", words[0].Value)
	assert.Equal(t, "の", words[0].Josi)
	assert.Equal(t, TOK_AIDA, words[1].Kind)

	tokens, _ = tokenize(t, "あいだ間")
	words = nonSpace(tokens)
	require.Len(t, words, 2)
	assert.Equal(t, "あいだ", words[0].Value)
	assert.Equal(t, TOK_AIDA, words[1].Kind)
}

func TestDeclPrefix(t *testing.T) {
	tokens, _ := tokenize(t, "変数A")
	words := nonSpace(tokens)
	require.Len(t, words, 2)
	assert.Equal(t, TOK_HENSUU, words[0].Kind)
	assert.Equal(t, "A", words[1].Value)

	tokens, _ = tokenize(t, "変数名")
	words = nonSpace(tokens)
	require.Len(t, words, 1)
	assert.Equal(t, TOK_WORD, words[0].Kind)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src   string
		kind  Kind
		value string
		num   float64
		unit  string
	}{
		{"123", TOK_NUMBER, "123", 123, ""},
		{"１２３", TOK_NUMBER, "123", 123, ""},
		{"1_000", TOK_NUMBER, "1000", 1000, ""},
		{"0x1F", TOK_NUMBER, "31", 31, ""},
		{"0o17", TOK_NUMBER, "15", 15, ""},
		{"0b101", TOK_NUMBER, "5", 5, ""},
		{"3.5", TOK_NUMBER, "3.5", 3.5, ""},
		{"3.5e2", TOK_NUMBER, "3.5e2", 350, ""},
		{"10px", TOK_STRING, "10px", 10, ""},
		{"2em", TOK_STRING, "2em", 2, ""},
		{"5個", TOK_NUMBER, "5", 5, "個"},
		{"100円", TOK_NUMBER, "100", 100, "円"},
		{"50%", TOK_NUMBER, "50", 50, "%"},
	}

	for _, c := range cases {
		tokens, diags := tokenize(t, c.src)
		require.Len(t, tokens, 1, "source %q", c.src)
		assert.Empty(t, diags.Diags, "source %q", c.src)

		tok := tokens[0]
		assert.Equal(t, c.kind, tok.Kind, "source %q", c.src)
		assert.Equal(t, c.value, tok.Value, "source %q", c.src)
		assert.Equal(t, c.num, tok.Num, "source %q", c.src)
		assert.Equal(t, c.unit, tok.Unit, "source %q", c.src)
	}
}

func TestPercentIsModuloBetweenOperands(t *testing.T) {
	tokens, _ := tokenize(t, "5%3")
	require.Len(t, tokens, 3)

	assert.Equal(t, TOK_NUMBER, tokens[0].Kind)
	assert.Equal(t, "", tokens[0].Unit)
	assert.Equal(t, TOK_MOD, tokens[1].Kind)
	assert.Equal(t, TOK_NUMBER, tokens[2].Kind)
}

func TestOperatorsLongestFirst(t *testing.T) {
	tokens, _ := tokenize(t, "A>>>B>=C≠D==E")
	kinds := []Kind{}
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []Kind{TOK_WORD, TOK_USHR, TOK_WORD, TOK_GTEQ, TOK_WORD, TOK_NOTEQ, TOK_WORD, TOK_EQEQ, TOK_WORD}, kinds)
}

func TestStatementTerminators(t *testing.T) {
	tokens, _ := tokenize(t, "A。B;C；D\nE")

	eols := 0
	for _, tok := range tokens {
		if tok.Kind == TOK_EOL {
			eols++
		}
	}

	assert.Equal(t, 4, eols)
}

func TestTemplateString(t *testing.T) {
	tokens, diags := tokenize(t, "「こんにちは{名前}さん」を")
	assert.Empty(t, diags.Diags)
	require.Len(t, tokens, 5)

	assert.Equal(t, TOK_STRING_EX, tokens[0].Kind)
	assert.Equal(t, "こんにちは", tokens[0].Value)
	assert.Equal(t, TOK_STRING_INJECT_START, tokens[1].Kind)
	assert.Equal(t, TOK_WORD, tokens[2].Kind)
	assert.Equal(t, "名前", tokens[2].Value)
	assert.Equal(t, TOK_STRING_INJECT_END, tokens[3].Kind)
	assert.Equal(t, TOK_STRING_EX, tokens[4].Kind)
	assert.Equal(t, "さん", tokens[4].Value)
	assert.Equal(t, "を", tokens[4].Josi)
}

func TestRawStringsDoNotInterpolate(t *testing.T) {
	tokens, _ := tokenize(t, "『{名前}』")
	require.Len(t, tokens, 1)

	assert.Equal(t, TOK_STRING, tokens[0].Kind)
	assert.Equal(t, "{名前}", tokens[0].Value)
}

func TestUnclosedInterpolation(t *testing.T) {
	tokens, diags := tokenize(t, "「a{b」")
	require.Len(t, tokens, 1)

	assert.Equal(t, "a{b", tokens[0].Value)
	require.Len(t, diags.WithID("unclosedInterpolation"), 1)
}

func TestUnclosedString(t *testing.T) {
	tokens, diags := tokenize(t, "「abc\ndef")
	require.Len(t, tokens, 1)

	assert.Equal(t, "abc\ndef", tokens[0].Value)
	assert.Equal(t, 1, tokens[0].EndLine)
	require.Len(t, diags.WithID("unclosedString"), 1)
}

func TestUnclosedBlockComment(t *testing.T) {
	tokens, diags := tokenize(t, "/* abc")
	require.Len(t, diags.WithID("unclosedBlockComment"), 1)
	require.NotEmpty(t, tokens)

	comment := tokens[0]
	assert.Equal(t, TOK_RANGE_COMMENT, comment.Kind)
	assert.Equal(t, "/*", comment.Text)
	assert.Equal(t, 0, comment.StartCol)
	assert.Equal(t, 2, comment.EndCol)

	words := nonSpace(tokens[1:])
	require.Len(t, words, 1)
	assert.Equal(t, "abc", words[0].Value)
}

func TestComments(t *testing.T) {
	tokens, _ := tokenize(t, "A # 後ろ\n※ 全行\n/* 複数\n行 */B")

	var kinds []Kind
	for _, tok := range tokens {
		switch tok.Kind {
		case TOK_SPACE, TOK_EOL:
		default:
			kinds = append(kinds, tok.Kind)
		}
	}

	assert.Equal(t, []Kind{TOK_WORD, TOK_LINE_COMMENT, TOK_LINE_COMMENT, TOK_RANGE_COMMENT, TOK_WORD}, kinds)
}

func TestLineContinue(t *testing.T) {
	// `_` is a word character directly after a word
	tokens, _ := tokenize(t, "A_\nB")
	require.Len(t, tokens, 3)
	assert.Equal(t, "A_", tokens[0].Value)

	tokens, _ = tokenize(t, "A _\nB")
	assert.Equal(t, TOK_LINE_CONTINUE, tokens[2].Kind)
}

func TestBracketWord(t *testing.T) {
	tokens, _ := tokenize(t, "【名前 付き】を")
	require.Len(t, tokens, 1)

	assert.Equal(t, TOK_WORD, tokens[0].Kind)
	assert.Equal(t, "名前 付き", tokens[0].Value)
	assert.Equal(t, "を", tokens[0].Josi)
}

func TestInvalidCharacter(t *testing.T) {
	tokens, diags := tokenize(t, "A☃")
	require.Len(t, tokens, 2)

	assert.Equal(t, TOK_CHARACTER, tokens[1].Kind)
	require.Len(t, diags.WithID("invalidChar"), 1)
	assert.Equal(t, "☃", diags.Diags[0].Args["char"])
}

func TestFunctionAnchors(t *testing.T) {
	tokens, _ := tokenize(t, "●テスト:足す\n*関数")

	assert.Equal(t, TOK_DEF_TEST, tokens[0].Kind)

	words := nonSpace(tokens)
	assert.Equal(t, TOK_DEF_FUNC, words[2].Kind)
}
