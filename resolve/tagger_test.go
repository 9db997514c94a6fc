package resolve_test

import (
	"nakofront/analysis"
	"nakofront/depm"
	"nakofront/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzeIn(env *depm.Env, src string) *analysis.Result {
	return analysis.Analyze("main", src, env, analysis.Options{})
}

func newEnv() *depm.Env {
	return depm.NewEnv(depm.NewUniverse(), "cnako")
}

// find returns the index of the first token with the given value.
func find(t *testing.T, r *analysis.Result, value string) int {
	t.Helper()

	for i, tok := range r.Tokens {
		if tok.Value == value {
			return i
		}
	}

	require.Failf(t, "token not found", "no token `%s`", value)
	return -1
}

func TestFunctionTags(t *testing.T) {
	r := analyzeIn(newEnv(), "●挨拶とは\nここまで\n挨拶\n「a」を表示")
	assert.False(t, r.Tag.HasErrors())

	call := &r.Tokens[find(t, r, "表示")]
	assert.Equal(t, syntax.TOK_SYS_FUNC, call.FuncKind)
	assert.Equal(t, syntax.TOK_SYS_FUNC, call.ParseKind)
	assert.Equal(t, depm.OriginSystem, call.Decl.Origin)

	for i, tok := range r.Tokens {
		if tok.Value == "挨拶" {
			assert.Equal(t, syntax.TOK_USER_FUNC, tok.FuncKind, i)
			assert.Same(t, r.Module.Funcs["挨拶"], tok.Decl, i)
		}
	}
}

func TestValueTags(t *testing.T) {
	r := analyzeIn(newEnv(), "定数 上限は10\nA=1\n上限と改行とAを表示")
	assert.False(t, r.Tag.HasErrors())

	var got []syntax.Kind
	for _, tok := range r.Tokens[len(r.Tokens)-6:] {
		got = append(got, tok.ParseKind)
	}

	assert.Equal(t, []syntax.Kind{
		syntax.TOK_USER_CONST, syntax.TOK_SYS_CONST, syntax.TOK_USER_VAR, syntax.TOK_SYS_FUNC,
		syntax.TOK_EOL, syntax.TOK_EOF,
	}, got)
}

func TestSoreAlias(t *testing.T) {
	r := analyzeIn(newEnv(), "そうを表示")
	assert.False(t, r.Tag.HasErrors())

	tok := r.Tokens[0]
	assert.Equal(t, "そう", tok.Value)
	assert.Equal(t, syntax.TOK_SYS_VAR, tok.ParseKind)
	require.NotNil(t, tok.Decl)
	assert.Equal(t, "それ", tok.Decl.Name)
	assert.Equal(t, depm.OriginSystem, tok.Decl.Origin)
}

func TestLocalsResolveInScope(t *testing.T) {
	r := analyzeIn(newEnv(), "●(Aを)倍とは\n  B=A*2\n  Bで戻る\nここまで\nBを表示")

	require.Len(t, r.Tag.Diags, 1)
	d := r.Tag.Diags[0]
	assert.Equal(t, "unknownWord", d.MessageID)
	assert.Equal(t, "B", d.Args["name"])
	assert.Equal(t, 4, d.Span.StartLine)

	// B inside the function is the local
	inner := r.Tokens[find(t, r, "B")]
	assert.Equal(t, depm.OriginLocal, inner.Decl.Origin)
	assert.Equal(t, syntax.TOK_USER_VAR, inner.ParseKind)
}

func TestPropertyNamesAreNotTagged(t *testing.T) {
	r := analyzeIn(newEnv(), "A={名前: 1}\nA@名前を表示")
	assert.False(t, r.Tag.HasErrors())
}

func TestUnknownWordSuggestion(t *testing.T) {
	r := analyzeIn(newEnv(), "カウンタ=1\nカウンターを表示")

	require.Len(t, r.Tag.Diags, 1)
	d := r.Tag.Diags[0]
	assert.Equal(t, "unknownWord", d.MessageID)
	assert.Equal(t, "カウンター", d.Args["name"])
	assert.Contains(t, d.Args["hint"], "カウンタ")

	tok := r.Tokens[find(t, r, "カウンター")]
	assert.Nil(t, tok.Decl)
	assert.Equal(t, syntax.TOK_WORD, tok.ParseKind)
}

func TestImportedSymbols(t *testing.T) {
	env := newEnv()
	lib := analysis.AnalyzeImport("lib", "●挨拶とは\n「こんにちは」を表示\nここまで\n版=1", env, analysis.Options{})
	require.False(t, lib.HasErrors())

	r := analyzeIn(env, "!「lib.nako3」を取り込む\n挨拶\n版を表示")
	assert.False(t, r.HasErrors())

	call := r.Tokens[find(t, r, "挨拶")]
	assert.Equal(t, syntax.TOK_USER_FUNC, call.ParseKind)
	assert.Equal(t, "lib", call.Decl.Module)

	v := r.Tokens[find(t, r, "版")]
	assert.Equal(t, syntax.TOK_USER_VAR, v.ParseKind)
}

func TestImportRequiresDirective(t *testing.T) {
	env := newEnv()
	analysis.AnalyzeImport("lib", "●挨拶とは\nここまで", env, analysis.Options{})

	r := analyzeIn(env, "挨拶")
	require.Len(t, r.Tag.Diags, 1)
	assert.Equal(t, "unknownWord", r.Tag.Diags[0].MessageID)
}

func TestPrivateSymbolsAreNotImported(t *testing.T) {
	env := newEnv()
	analysis.AnalyzeImport("lib", "●{非公開}秘密とは\nここまで", env, analysis.Options{})

	r := analyzeIn(env, "!「lib.nako3」を取り込む\n秘密")
	require.Len(t, r.Tag.Diags, 1)
	assert.Equal(t, "unknownWord", r.Tag.Diags[0].MessageID)
}

func TestPluginLookupFollowsEnv(t *testing.T) {
	u := depm.NewUniverse()
	things, err := depm.ParseCommandTable("plugin_extra", "挨拶する: {type: func, josi: [], desc: 挨拶}")
	require.NoError(t, err)
	u.AddPlugin("plugin_extra", things)

	r := analyzeIn(depm.NewEnv(u, "cnako"), "挨拶する")
	assert.True(t, r.Tag.HasErrors())

	env := depm.NewEnv(u, "cnako")
	require.NoError(t, env.EnablePlugin("plugin_extra"))

	r = analyzeIn(env, "挨拶する")
	assert.False(t, r.HasErrors())
	assert.Equal(t, syntax.TOK_SYS_FUNC, r.Tokens[0].ParseKind)
}
