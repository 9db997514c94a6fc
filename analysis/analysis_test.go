package analysis

import (
	"nakofront/depm"
	"nakofront/report"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() *depm.Env {
	return depm.NewEnv(depm.NewUniverse(), "cnako")
}

func messageIDs(ds []*report.Diagnostic) []string {
	var ids []string
	for _, d := range ds {
		ids = append(ids, d.MessageID)
	}

	return ids
}

func TestAnalyzeRunsEveryStage(t *testing.T) {
	r := Analyze("main", "A=1\nAを表示", newEnv(), Options{})

	assert.False(t, r.HasErrors())
	assert.NotEmpty(t, r.RawTokens)
	assert.Equal(t, []int{3, 4}, r.LineLengths)
	require.NotNil(t, r.AST)
	assert.Len(t, r.AST.Stmts, 2)
	assert.Contains(t, r.Module.Globals, "A")
	assert.Equal(t, report.DefaultMaxDiagnostics, r.Parse.Max)
}

func TestRetagIsIdempotent(t *testing.T) {
	src := "●(Aを)倍とは\n  A*2で戻る\nここまで\nBを表示\n3を倍して表示"
	r := Analyze("main", src, newEnv(), Options{})

	kinds := make([]int, len(r.Tokens))
	for i, tok := range r.Tokens {
		kinds[i] = int(tok.ParseKind)
	}
	diags := messageIDs(r.All())

	for n := 0; n < 3; n++ {
		r.Retag()

		require.Len(t, r.Tokens, len(kinds))
		for i, tok := range r.Tokens {
			assert.Equal(t, kinds[i], int(tok.ParseKind), i)
		}
		assert.Equal(t, diags, messageIDs(r.All()))
	}
}

func TestTokenAt(t *testing.T) {
	r := Analyze("main", "A=1\nAを表示", newEnv(), Options{})

	cases := []struct {
		line, col, want int
	}{
		{1, 0, 4},
		{1, 1, 4},
		{1, 2, 5},
		{1, 10, 5},
		{5, 0, -1},
		{-1, 0, -1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, r.TokenAt(c.line, c.col), "%d:%d", c.line, c.col)
	}
}

func TestAllOrdersByPosition(t *testing.T) {
	r := Analyze("main", "Xを表示\n/* abc", newEnv(), Options{})

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "unknownWord", all[0].MessageID)
	assert.Equal(t, "unclosedBlockComment", all[1].MessageID)
	assert.True(t, r.HasErrors())
}

func TestIndentSemanticsOption(t *testing.T) {
	src := "もし1が1ならば\n  「a」を表示\n違えば\n  「b」を表示"

	r := Analyze("main", src, newEnv(), Options{})
	assert.False(t, r.Options.IndentSemantics)
	assert.Contains(t, messageIDs(r.Parse.Diags), "missingKokomade")

	r = Analyze("main", src, newEnv(), Options{IndentSemantics: true})
	assert.True(t, r.Options.IndentSemantics)
	assert.False(t, r.HasErrors())
}

func TestMaxErrors(t *testing.T) {
	r := Analyze("main", "X\nY\nZ", newEnv(), Options{MaxErrors: 2})

	assert.Len(t, r.Tag.Diags, 2)
	assert.Equal(t, 1, r.Tag.Dropped)
}

func TestAnalyzeImport(t *testing.T) {
	env := newEnv()
	lib := AnalyzeImport("lib", "●挨拶とは\nここまで", env, Options{})
	require.False(t, lib.HasErrors())

	_, ok := env.LookupImport([]string{"lib.nako3"}, "挨拶", true)
	assert.True(t, ok)
}
