package fixer

import (
	"nakofront/depm"
	"nakofront/report"
	"nakofront/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fix(t *testing.T, src string) (*Result, *depm.Module, *report.Collector) {
	t.Helper()

	lexDiags := report.NewCollector("lex", 0)
	raw, _ := syntax.Tokenize(src, lexDiags)
	require.False(t, lexDiags.HasErrors())

	mod := depm.NewModule("main")
	diags := report.NewCollector("fix", 0)
	return Fix(raw, mod, diags), mod, diags
}

func kinds(tokens []syntax.Token) []syntax.Kind {
	out := make([]syntax.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.FixKind
	}

	return out
}

func diagIDs(c *report.Collector) []string {
	var out []string
	for _, d := range c.Diags {
		out = append(out, d.MessageID)
	}

	return out
}

func TestSentinels(t *testing.T) {
	for _, src := range []string{"", "A", "A\n"} {
		r, _, _ := fix(t, src)
		n := len(r.Tokens)

		require.GreaterOrEqual(t, n, 2, src)
		assert.Equal(t, syntax.TOK_EOL, r.Tokens[n-2].FixKind, src)
		assert.Equal(t, syntax.TOK_EOF, r.Tokens[n-1].FixKind, src)
		assert.True(t, r.Tokens[n-1].Synthetic, src)
	}
}

func TestSpacesAndComments(t *testing.T) {
	r, _, _ := fix(t, "A = 1 # 注釈\n/* 範囲 */B = 2")

	for _, tok := range r.Tokens {
		assert.NotEqual(t, syntax.TOK_SPACE, tok.FixKind)
	}

	require.Len(t, r.Comments, 2)
	assert.Equal(t, syntax.TOK_LINE_COMMENT, r.Comments[0].Kind)
	assert.Equal(t, syntax.TOK_RANGE_COMMENT, r.Comments[1].Kind)
}

func TestSplitHa(t *testing.T) {
	r, _, _ := fix(t, "Aは1")
	require.Len(t, r.Tokens, 5)

	assert.Equal(t, []syntax.Kind{syntax.TOK_WORD, syntax.TOK_EQ, syntax.TOK_NUMBER, syntax.TOK_EOL, syntax.TOK_EOF}, kinds(r.Tokens))

	a, eq := r.Tokens[0], r.Tokens[1]
	assert.Equal(t, "A", a.Text)
	assert.Empty(t, a.Josi)
	assert.Equal(t, 1, a.EndCol)

	assert.True(t, eq.Synthetic)
	assert.Equal(t, "は", eq.Text)
	assert.Equal(t, 1, eq.StartCol)
	assert.Equal(t, 2, eq.EndCol)
}

func TestSplitNiwa(t *testing.T) {
	r, _, _ := fix(t, "1秒後には\nここまで")

	assert.Equal(t, syntax.TOK_WORD, r.Tokens[1].FixKind)
	assert.Equal(t, "秒後", r.Tokens[1].Text)
	assert.Equal(t, syntax.TOK_NIWA, r.Tokens[2].FixKind)

	// the anonymous function is declared on the `には` token
	require.NotNil(t, r.Tokens[2].Decl)
	assert.Equal(t, depm.OriginLocal, r.Tokens[2].Decl.Origin)
}

func TestSplitCondition(t *testing.T) {
	r, _, _ := fix(t, "もしAが1ならば\nもしAが1でなければ")

	assert.Equal(t, []syntax.Kind{
		syntax.TOK_MOSHI, syntax.TOK_WORD, syntax.TOK_NUMBER, syntax.TOK_NARABA, syntax.TOK_EOL,
		syntax.TOK_MOSHI, syntax.TOK_WORD, syntax.TOK_NUMBER, syntax.TOK_DENAKEREBA, syntax.TOK_EOL,
		syntax.TOK_EOF,
	}, kinds(r.Tokens))

	assert.Equal(t, "ならば", r.Tokens[3].Value)
	assert.Equal(t, "でなければ", r.Tokens[8].Value)
}

func TestSplitKai(t *testing.T) {
	r, _, _ := fix(t, "三回")
	require.GreaterOrEqual(t, len(r.Tokens), 2)

	assert.Equal(t, syntax.TOK_WORD, r.Tokens[0].FixKind)
	assert.Equal(t, "三", r.Tokens[0].Value)
	assert.Equal(t, syntax.TOK_KAI, r.Tokens[1].FixKind)
	assert.Equal(t, 1, r.Tokens[1].StartCol)
}

func TestMergeErrorNaraba(t *testing.T) {
	r, _, _ := fix(t, "エラーならば")

	assert.Equal(t, []syntax.Kind{syntax.TOK_ERROR_NARABA, syntax.TOK_EOL, syntax.TOK_EOF}, kinds(r.Tokens))
	assert.Equal(t, "エラーならば", r.Tokens[0].Text)
	assert.Equal(t, 6, r.Tokens[0].EndCol)
}

func TestForeverLoop(t *testing.T) {
	r, _, _ := fix(t, "永遠に繰り返す")

	assert.Equal(t, "永遠", r.Tokens[0].Value)
	assert.Equal(t, "の", r.Tokens[0].Josi)
	assert.Equal(t, syntax.TOK_AIDA, r.Tokens[1].FixKind)
}

// -----------------------------------------------------------------------------

func TestDirectives(t *testing.T) {
	r, _, diags := fix(t, "!厳チェック\n!インデント構文\nA=1")
	assert.Empty(t, diagIDs(diags))

	assert.True(t, r.Options.Strict)
	assert.True(t, r.Options.IndentSemantics)
	assert.True(t, r.Options.DefaultExport)

	for _, tok := range r.Tokens[:4] {
		if tok.FixKind != syntax.TOK_EOL {
			assert.Equal(t, syntax.TOK_PREPROCESS, tok.FixKind)
		}
	}
}

func TestDirectiveWarnings(t *testing.T) {
	r, _, diags := fix(t, "!非同期モード\n!DNCLモード")

	assert.True(t, r.Options.AsyncMode)
	assert.True(t, r.Options.DNCL)
	assert.Equal(t, []string{"deprecatedAsync", "unsupportedDncl"}, diagIDs(diags))
	assert.False(t, diags.HasErrors())
}

func TestDirectiveErrors(t *testing.T) {
	cases := []struct {
		src string
		id  string
	}{
		{"!何か", "unknownDirective"},
		{"!厳チェック 1", "directiveNotTerminated"},
		{"!モジュール公開既定値は「なし」", "invalidExportDefault"},
		{"!「{A}.nako3」を取り込む", "importNotString"},
	}

	for _, c := range cases {
		_, _, diags := fix(t, c.src)
		assert.Equal(t, []string{c.id}, diagIDs(diags), c.src)
	}
}

func TestDefaultExport(t *testing.T) {
	r, _, diags := fix(t, "!モジュール公開既定値は「非公開」\n●挨拶とは\nここまで")
	assert.Empty(t, diagIDs(diags))
	assert.False(t, r.Options.DefaultExport)
}

func TestImports(t *testing.T) {
	r, mod, diags := fix(t, "!「lib.nako3」を取り込む\n!『util.nako3』を取り込む")
	assert.Empty(t, diagIDs(diags))

	require.Len(t, r.Imports, 2)
	assert.Equal(t, "lib.nako3", r.Imports[0].Name)
	assert.Equal(t, 1, r.Imports[0].TokenIndex)
	assert.Equal(t, []string{"lib.nako3", "util.nako3"}, mod.Imports)
}

func TestFixDoesNotModifyRawTokens(t *testing.T) {
	diags := report.NewCollector("lex", 0)
	raw, _ := syntax.Tokenize("Aは1", diags)
	before := append([]syntax.Token(nil), raw...)

	Fix(raw, depm.NewModule("main"), report.NewCollector("fix", 0))
	assert.Equal(t, before, raw)
}

// -----------------------------------------------------------------------------

func TestFunctionParams(t *testing.T) {
	cases := []struct {
		name, src, key string
		args           []depm.FuncArg
		diags          []string
	}{
		{
			"merged particles",
			"●(AとBを|Aに)足すとは\nここまで", "足",
			[]depm.FuncArg{
				{Name: "A", Josi: []string{"と", "に"}},
				{Name: "B", Josi: []string{"を"}},
			},
			nil,
		},
		{
			"blocks on both sides",
			"●(Aを)足す(Bを)とは\nここまで", "足",
			[]depm.FuncArg{
				{Name: "A", Josi: []string{"を"}},
				{Name: "B", Josi: []string{"を"}},
			},
			[]string{"duplicateParams"},
		},
		{
			"params after name",
			"●足す(Aと,Bを)\nここまで", "足",
			[]depm.FuncArg{
				{Name: "A", Josi: []string{"と"}},
				{Name: "B", Josi: []string{"を"}},
			},
			nil,
		},
		{
			"no particle",
			"●(A)甲とは\nここまで", "甲",
			[]depm.FuncArg{{Name: "A", Josi: []string{""}}},
			nil,
		},
		{
			"by reference",
			"●({参照渡し}Aを)消去とは\nここまで", "消去",
			[]depm.FuncArg{{Name: "A", Josi: []string{"を"}, Attrs: []string{"参照渡し"}, ByRef: true}},
			nil,
		},
		{
			"function parameter",
			"●({関数}Fで)呼出とは\nここまで", "呼出",
			[]depm.FuncArg{{Name: "F", Josi: []string{"で"}, Attrs: []string{"関数"}}},
			nil,
		},
		{
			"unclosed params",
			"●足す(Aを\nここまで", "足",
			[]depm.FuncArg{{Name: "A", Josi: []string{"を"}}},
			[]string{"unclosedParams"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, mod, diags := fix(t, c.src)
			assert.Equal(t, c.diags, diagIDs(diags))

			dt, ok := mod.Funcs[c.key]
			require.True(t, ok)
			assert.Equal(t, c.args, dt.Args)

			// the anchor and the name share the declaration
			assert.Same(t, dt, r.Tokens[0].Decl)
			assert.Same(t, dt, r.Tokens[dt.TokenIndex].Decl)

			for _, tok := range r.Tokens {
				if tok.Value == "A" || tok.Value == "B" || tok.Value == "F" {
					assert.Equal(t, syntax.TOK_FUNC_ARG, tok.FixKind)
				}
			}
		})
	}
}

func TestFunctionAttributes(t *testing.T) {
	_, mod, diags := fix(t, "●{公開}甲とは\nここまで\n●{非公開}乙とは\nここまで\n●{非同期}丙とは\nここまで\n●{公開,非同期}丁とは\nここまで")
	assert.Empty(t, diagIDs(diags))

	cases := []struct {
		key                          string
		isExport, isPrivate, isAsync bool
	}{
		{"甲", true, false, false},
		{"乙", false, true, false},
		{"丙", true, false, true},
		{"丁", true, false, true},
	}

	for _, c := range cases {
		dt := mod.Funcs[c.key]
		require.NotNil(t, dt, c.key)
		assert.Equal(t, c.isExport, dt.IsExport, c.key)
		assert.Equal(t, c.isPrivate, dt.IsPrivate, c.key)
		assert.Equal(t, c.isAsync, dt.IsAsync, c.key)
	}
}

func TestFunctionHeaderErrors(t *testing.T) {
	cases := []struct {
		src  string
		diag string
		sev  report.Severity
	}{
		{"●\nここまで", "missingFuncName", report.SeverityError},
		{"●{秘密}足すとは\nここまで", "invalidAttribute", report.SeverityError},
		{"●足すとは\nここまで\n●足すとは\nここまで", "redefinedFunc", report.SeverityWarn},
	}

	for _, c := range cases {
		_, _, diags := fix(t, c.src)
		require.Equal(t, []string{c.diag}, diagIDs(diags), c.src)
		assert.Equal(t, c.sev, diags.Diags[0].Severity, c.src)
	}
}

func TestRedefinitionKeepsLatest(t *testing.T) {
	r, mod, _ := fix(t, "●足すとは\nここまで\n●(Aを)足すとは\nここまで")

	dt := mod.Funcs["足"]
	require.NotNil(t, dt)
	assert.Len(t, dt.Args, 1)
	assert.Equal(t, "足す", r.Tokens[dt.TokenIndex].Value)
}

func TestTestDefinitionsAreNotRegistered(t *testing.T) {
	r, mod, diags := fix(t, "●テスト:足算とは\nここまで")
	assert.Empty(t, diagIDs(diags))
	assert.Empty(t, mod.Funcs)
	require.NotNil(t, r.Tokens[0].Decl)
	assert.Equal(t, "足算", r.Tokens[0].Decl.Name)
}

func TestAnonymousFunctionParams(t *testing.T) {
	r, mod, _ := fix(t, "Aには(B,C)\nここまで")

	assert.Empty(t, mod.Funcs)
	for _, tok := range r.Tokens {
		if tok.FixKind == syntax.TOK_NIWA {
			require.NotNil(t, tok.Decl)
			assert.Equal(t, depm.OriginLocal, tok.Decl.Origin)
			assert.Equal(t, []depm.FuncArg{
				{Name: "B", Josi: []string{""}},
				{Name: "C", Josi: []string{""}},
			}, tok.Decl.Args)
			return
		}
	}

	require.Fail(t, "no には token")
}
