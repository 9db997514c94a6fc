package fixer

import (
	"nakofront/common"
	"nakofront/depm"
	"nakofront/report"
	"nakofront/syntax"
)

// ImportStatement is a single `!「name」を取り込む` directive.
type ImportStatement struct {
	// The imported file as written.
	Name string

	// The span of the string naming the file.
	Span *report.TextSpan

	// The index of that string's token.
	TokenIndex int
}

// ModuleOptions are the module-wide settings made by preprocessor directives.
type ModuleOptions struct {
	Strict          bool
	AsyncMode       bool
	DNCL, DNCL2     bool
	IndentSemantics bool

	// Whether functions are exported unless marked `{非公開}`.
	DefaultExport bool
}

// Result is the output of the normalizer.
type Result struct {
	// The normalized statement stream.  It always ends with an EOL token
	// followed by an EOF token.
	Tokens []syntax.Token

	// The comments and line continuations removed from the statement stream.
	Comments []syntax.Token

	// The import directives in source order.
	Imports []ImportStatement

	Options ModuleOptions
}

// normalizer is the state of one normalization run.
type normalizer struct {
	out      []syntax.Token
	comments []syntax.Token
	imports  []ImportStatement
	opts     ModuleOptions

	mod   *depm.Module
	diags *report.Collector
}

// Fix normalizes raw tokens.  It rewrites tokens whose trailing characters are
// keywords, recognizes preprocessor directives, and registers every function
// declared by the tokens into the module.  The raw tokens are not modified.
func Fix(raw []syntax.Token, mod *depm.Module, diags *report.Collector) *Result {
	n := &normalizer{
		out:   make([]syntax.Token, 0, len(raw)+2),
		opts:  ModuleOptions{DefaultExport: true},
		mod:   mod,
		diags: diags,
	}

	for _, tok := range raw {
		switch tok.Kind {
		case syntax.TOK_SPACE:
			continue
		case syntax.TOK_LINE_COMMENT, syntax.TOK_RANGE_COMMENT, syntax.TOK_LINE_CONTINUE:
			n.comments = append(n.comments, tok)
			continue
		}

		n.push(tok)
	}

	n.appendSentinels(raw)
	n.preprocess()
	n.enumerateFuncs()

	mod.Imports = mod.Imports[:0]
	for _, imp := range n.imports {
		mod.Imports = append(mod.Imports, imp.Name)
	}

	return &Result{
		Tokens:   n.out,
		Comments: n.comments,
		Imports:  n.imports,
		Options:  n.opts,
	}
}

// push applies the splitting rewrites to a token and emits the result.
func (n *normalizer) push(tok syntax.Token) {
	if tok.FixKind == syntax.TOK_WORD && !tok.HasJosi() {
		if word, kai, ok := splitKai(tok); ok {
			n.emit(word)
			n.emit(kai)
			return
		}

		if syntax.IsTararebaJosi(tok.Value) && tok.Text == tok.Value {
			tok.FixKind = conditionKind(tok.Value)
			n.emit(tok)
			return
		}
	}

	switch {
	case tok.Josi == "には":
		bare, aux := splitJosi(tok, syntax.TOK_NIWA)
		n.emit(bare)
		n.emit(aux)
	case tok.Josi == "は" || tok.Josi == "は~" || tok.Josi == "は～":
		bare, aux := splitJosi(tok, syntax.TOK_EQ)
		n.emit(bare)
		n.emit(aux)
	case syntax.IsTararebaJosi(tok.Josi):
		bare, aux := splitJosi(tok, conditionKind(tok.Josi))
		n.emit(bare)
		n.emit(aux)
	default:
		n.emit(tok)
	}
}

// emit appends a token to the output applying the merging rewrites that look
// at the previously emitted token.
func (n *normalizer) emit(tok syntax.Token) {
	if len(n.out) > 0 {
		last := &n.out[len(n.out)-1]

		// `エラー` directly followed by `ならば`
		if tok.FixKind == syntax.TOK_NARABA && last.FixKind == syntax.TOK_ERROR && !last.HasJosi() &&
			last.EndLine == tok.StartLine && last.EndCol == tok.StartCol {
			last.FixKind = syntax.TOK_ERROR_NARABA
			last.Group = syntax.GroupOf(last.FixKind)
			last.Text += tok.Text
			last.EndCol = tok.EndCol
			last.ResEndCol = tok.EndCol
			return
		}

		// `永遠に繰り返す` loops like `永遠の間`
		if tok.FixKind == syntax.TOK_KURIKAESU && last.FixKind == syntax.TOK_WORD && last.Key == "永遠" && last.Josi == "に" {
			last.Josi = "の"
			tok.FixKind = syntax.TOK_AIDA
		}
	}

	tok.Group = syntax.GroupOf(tok.FixKind)
	n.out = append(n.out, tok)
}

// appendSentinels appends the EOL and EOF tokens the parser relies on.
func (n *normalizer) appendSentinels(raw []syntax.Token) {
	line, col := 0, 0
	var indent syntax.Indent
	if len(raw) > 0 {
		last := raw[len(raw)-1]
		line, col = last.EndLine, last.EndCol
		indent = last.Indent
		if last.Kind == syntax.TOK_EOL {
			line, col = line+1, 0
			indent = syntax.Indent{}
		}
	}

	n.out = append(n.out,
		synthetic(syntax.TOK_EOL, line, col, col, "", indent),
		synthetic(syntax.TOK_EOF, line, col, col, "", indent),
	)
}

// -----------------------------------------------------------------------------

// conditionKind returns the keyword kind of a conditional particle.
func conditionKind(josi string) syntax.Kind {
	if josi == "でなければ" || josi == "なければ" {
		return syntax.TOK_DENAKEREBA
	}

	return syntax.TOK_NARABA
}

// splitKai splits a word ending in `回` into the shortened word and a `回`
// keyword token.
func splitKai(tok syntax.Token) (syntax.Token, syntax.Token, bool) {
	rs := []rune(tok.Value)
	if len(rs) < 2 || rs[len(rs)-1] != '回' || tok.Text != tok.Value || tok.StartLine != tok.EndLine {
		return tok, tok, false
	}

	cut := tok.StartCol + len(rs) - 1
	word := tok
	word.Text = string(rs[:len(rs)-1])
	word.Value = word.Text
	word.Key = common.TrimOkurigana(word.Value)
	word.EndCol = cut
	word.ResEndCol = cut

	kai := synthetic(syntax.TOK_KAI, tok.StartLine, cut, tok.EndCol, "回", tok.Indent)
	kai.Key = "回"
	return word, kai, true
}

// splitJosi splits a token at its particle into the token without the particle
// and a new token of the given kind covering the particle.
func splitJosi(tok syntax.Token, kind syntax.Kind) (syntax.Token, syntax.Token) {
	rs := []rune(tok.Text)
	cut := len(rs) - (tok.EndCol - tok.JosiStartCol)
	if cut < 0 {
		cut = 0
	}

	aux := synthetic(kind, tok.EndLine, tok.JosiStartCol, tok.EndCol, string(rs[cut:]), tok.Indent)
	aux.Value = tok.Josi

	bare := tok
	bare.Text = string(rs[:cut])
	bare.EndCol = tok.JosiStartCol
	if bare.ResEndCol > bare.EndCol {
		bare.ResEndCol = bare.EndCol
	}
	bare.Josi = ""
	bare.JosiStartCol = -1

	return bare, aux
}

// synthetic creates a token invented by the normalizer.
func synthetic(kind syntax.Kind, line, startCol, endCol int, text string, indent syntax.Indent) syntax.Token {
	return syntax.Token{
		Kind:         kind,
		FixKind:      kind,
		FuncKind:     kind,
		ParseKind:    kind,
		Group:        syntax.GroupOf(kind),
		StartLine:    line,
		StartCol:     startCol,
		EndLine:      line,
		EndCol:       endCol,
		ResEndCol:    endCol,
		Text:         text,
		Value:        text,
		JosiStartCol: -1,
		Indent:       indent,
		LinkPrimary:  -1,
		Synthetic:    true,
	}
}
