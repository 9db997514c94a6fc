package analysis

import (
	"nakofront/ast"
	"nakofront/depm"
	"nakofront/fixer"
	"nakofront/report"
	"nakofront/resolve"
	"nakofront/syntax"
	"sort"
)

// Options configures a single analysis run.
type Options struct {
	// The maximum number of diagnostics kept per stage.  Zero or less means
	// the default cap.
	MaxErrors int

	// Forces indentation delimited blocks even without `!インデント構文`.
	IndentSemantics bool
}

// Result holds the output of every analysis stage for one module.  All of it
// is rebuilt on each analysis; nothing is shared with earlier runs except the
// environment.
type Result struct {
	// The module name and source text.
	Name, Text string

	// The tokenizer's lossless output and the rune length of every line.
	RawTokens   []syntax.Token
	LineLengths []int

	// The normalized and tagged statement stream.
	Tokens []syntax.Token

	// The comments removed from the statement stream.
	Comments []syntax.Token

	Imports []fixer.ImportStatement
	Options fixer.ModuleOptions

	// The module's symbol table.
	Module *depm.Module

	// The module's top level block and the function scope ranges.
	AST         *ast.Block
	ScopeRanges []depm.ScopeIdRange

	// The diagnostics of each stage.
	Lex, Fix, Tag, Parse *report.Collector

	env  *depm.Env
	opts Options
}

// Analyze runs the whole front end over the text of the named module.  Analysis
// never fails: every problem becomes a diagnostic of the stage that found it.
func Analyze(name, text string, env *depm.Env, opts Options) *Result {
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = report.DefaultMaxDiagnostics
	}

	r := &Result{Name: name, Text: text, env: env, opts: opts}
	r.Lex = report.NewCollector("lex", opts.MaxErrors)
	r.RawTokens, r.LineLengths = syntax.Tokenize(text, r.Lex)

	r.run()
	return r
}

// Retag reruns every stage after the tokenizer over the stored raw tokens.
// Running it any number of times yields the same tokens and diagnostics.
func (r *Result) Retag() {
	r.run()
}

// run runs the stages after the tokenizer.
func (r *Result) run() {
	r.Fix = report.NewCollector("fix", r.opts.MaxErrors)
	r.Tag = report.NewCollector("tag", r.opts.MaxErrors)
	r.Parse = report.NewCollector("parse", r.opts.MaxErrors)

	r.Module = depm.NewModule(r.Name)

	fixed := fixer.Fix(r.RawTokens, r.Module, r.Fix)
	if r.opts.IndentSemantics {
		fixed.Options.IndentSemantics = true
	}

	r.Tokens = fixed.Tokens
	r.Comments = fixed.Comments
	r.Imports = fixed.Imports
	r.Options = fixed.Options

	tagger := resolve.NewTagger(r.Module, r.env, r.Tag)
	tagger.ApplyFunctionTags(r.Tokens)

	parser := syntax.NewParser(r.Tokens, r.Module, syntax.ParseOptions{
		IndentSemantics: r.Options.IndentSemantics,
		DefaultExport:   r.Options.DefaultExport,
	}, r.Parse)
	r.AST = parser.Parse()
	r.ScopeRanges = parser.ScopeRanges()

	tagger.ApplyVarConstTags(r.Tokens, r.ScopeRanges)
}

// -----------------------------------------------------------------------------

// All returns the diagnostics of every stage ordered by position.
func (r *Result) All() []*report.Diagnostic {
	var all []*report.Diagnostic
	for _, c := range []*report.Collector{r.Lex, r.Fix, r.Tag, r.Parse} {
		all = append(all, c.Diags...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i].Span, all[j].Span
		switch {
		case a == nil:
			return b != nil
		case b == nil:
			return false
		case a.StartLine != b.StartLine:
			return a.StartLine < b.StartLine
		default:
			return a.StartCol < b.StartCol
		}
	})

	return all
}

// HasErrors returns whether any stage reported an error.
func (r *Result) HasErrors() bool {
	return r.Lex.HasErrors() || r.Fix.HasErrors() || r.Tag.HasErrors() || r.Parse.HasErrors()
}

// TokenAt returns the index of the statement token covering the given editor
// position or -1.  Positions past the end of a line map to the line's last
// token.
func (r *Result) TokenAt(line, col int) int {
	if line < 0 || line >= len(r.LineLengths) {
		return -1
	}

	last := -1
	for i := range r.Tokens {
		tok := &r.Tokens[i]
		// zero width tokens cover nothing
		if tok.FuncKind == syntax.TOK_EOF || (tok.StartLine == tok.EndLine && tok.StartCol == tok.EndCol) {
			continue
		}

		if tok.Span().Contains(line, col) {
			return i
		}

		if tok.StartLine == line {
			last = i
		}
	}

	if col >= r.LineLengths[line] {
		return last
	}

	return -1
}

// AnalyzeImport analyzes a module that other modules import and makes its
// exported symbols available in env under the module's name.
func AnalyzeImport(name, text string, env *depm.Env, opts Options) *Result {
	r := Analyze(name, text, env, opts)
	env.AddImport(r.Module)
	return r
}
