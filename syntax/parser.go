package syntax

import (
	"nakofront/ast"
	"nakofront/common"
	"nakofront/depm"
	"nakofront/report"
	"sort"
	"strings"
)

// NOTE: Parsing functions are commented with the sentence shape they parse.
// Sentences are assembled on an operand stack: values are pushed as they are
// read and functions and postfix keywords pop their operands by particle.

// ParseOptions are the module options that change how a module is parsed.
type ParseOptions struct {
	// Whether blocks opened by a header at the end of a line are delimited by
	// indentation instead of `ここまで`.
	IndentSemantics bool

	// Whether global variables are exported.
	DefaultExport bool
}

// Parser is the parser for one module's normalized and function-tagged
// tokens.  It produces the module's AST, declares the variables the module
// assigns, and computes the scope ranges the variable tagger needs.  The
// parser only writes the link fields of the tokens.  All parsing functions
// assume that they begin with the parser positioned on the first token of
// their production and leave it on the token after the production.  The
// parser never aborts: structural errors are reported and replaced by Nop
// nodes.
type Parser struct {
	// The tokens being parsed.  The last token is always EOF.
	tokens []Token

	// The index of the current token and the token itself.
	pos int
	tok *Token

	mod   *depm.Module
	opts  ParseOptions
	diags *report.Collector

	// The operand stack of the block being parsed.
	stack []ast.ASTNode

	// The open scopes, innermost last, and the ranges of the closed ones.
	scopes      []int
	ranges      []depm.ScopeIdRange
	nextScopeID int

	// The depth of enclosing loops.
	loopDepth int

	// The header indentation levels of the enclosing `ここまで` delimited
	// blocks, innermost last.
	keywordLevels []int

	// Set when the next keyword delimited block must not report a missing
	// `ここまで`.  The block clears it on entry.
	quietKokomade bool

	// The most recently called functions used to build argument hints.
	recentCalls []*depm.DeclaredThing
}

// NewParser creates a new parser for the given tokens.  The tokens must end in
// an EOL and an EOF token as the normalizer leaves them.
func NewParser(tokens []Token, mod *depm.Module, opts ParseOptions, diags *report.Collector) *Parser {
	return &Parser{
		tokens: tokens,
		mod:    mod,
		opts:   opts,
		diags:  diags,
	}
}

// Parse parses the tokens into the module's top level block.
func (p *Parser) Parse() *ast.Block {
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].FuncKind != TOK_EOF {
		p.tokens = append(p.tokens, Token{Kind: TOK_EOF, FixKind: TOK_EOF, FuncKind: TOK_EOF, ParseKind: TOK_EOF, LinkPrimary: -1, JosiStartCol: -1})
	}

	p.pos = 0
	p.tok = &p.tokens[0]
	p.scopes = []int{depm.GlobalScopeID}
	p.ranges = []depm.ScopeIdRange{{Start: 0, End: len(p.tokens), ScopeID: depm.GlobalScopeID}}

	block := p.parseTopLevel()
	markAsync(block)
	return block
}

// ScopeRanges returns the scope ranges computed during parsing sorted by their
// starting token index.
func (p *Parser) ScopeRanges() []depm.ScopeIdRange {
	ranges := append([]depm.ScopeIdRange(nil), p.ranges...)
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return ranges
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past EOF.
func (p *Parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	p.tok = &p.tokens[p.pos]
}

// seek moves the parser to the given token index.
func (p *Parser) seek(pos int) {
	if pos < 0 || pos >= len(p.tokens) {
		panic(report.Raise(p.tok.Span(), "token index %d out of range", pos))
	}

	p.pos = pos
	p.tok = &p.tokens[pos]
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind Kind) bool {
	return p.tok.FuncKind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...Kind) bool {
	for _, kind := range kinds {
		if p.tok.FuncKind == kind {
			return true
		}
	}

	return false
}

// gotEnd returns whether the parser is at the end of a line.
func (p *Parser) gotEnd() bool {
	return p.tok.FuncKind == TOK_EOL || p.tok.FuncKind == TOK_EOF
}

// peekKind returns the kind of the token offset tokens ahead.
func (p *Parser) peekKind(offset int) Kind {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i].FuncKind
	}

	return TOK_EOF
}

// isLineStart returns whether the current token begins a line.
func (p *Parser) isLineStart() bool {
	return p.pos == 0 || p.tokens[p.pos-1].FuncKind == TOK_EOL
}

// skipToEOL moves the parser onto the end of the current line.
func (p *Parser) skipToEOL() {
	for !p.gotEnd() {
		p.next()
	}
}

// skipEOLs moves the parser past any line ends.
func (p *Parser) skipEOLs() {
	for p.got(TOK_EOL) {
		p.next()
	}
}

// skipCommas moves the parser past any commas.
func (p *Parser) skipCommas() {
	for p.got(TOK_COMMA) {
		p.next()
	}
}

// -----------------------------------------------------------------------------

// errorOn reports an error on a given token.
func (p *Parser) errorOn(tok *Token, id string, args report.Args) {
	p.diags.Error(tok.Span(), id, args)
}

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.gotEnd() {
		p.errorOn(p.tok, "unexpectedEOL", nil)
	} else {
		p.errorOn(p.tok, "unexpectedToken", report.Args{"name": p.tok.Text})
	}
}

// link records the auxiliary tokens of a construct on its primary token.
// Negative indices are ignored.
func (p *Parser) link(primary int, aux ...int) {
	for _, a := range aux {
		if a < 0 || a == primary || a >= len(p.tokens) {
			continue
		}

		p.tokens[primary].LinkAux = append(p.tokens[primary].LinkAux, a)
		p.tokens[a].LinkPrimary = primary
	}
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start *report.TextSpan) *report.TextSpan {
	if p.pos == 0 {
		return start
	}

	return report.NewSpanOver(start, p.tokens[p.pos-1].Span())
}

// baseFrom returns an AST base spanning from start to the last consumed token.
func (p *Parser) baseFrom(start *report.TextSpan) ast.ASTBase {
	return ast.NewASTBaseOn(p.spanFrom(start))
}

// nop creates a placeholder node on the given token.
func (p *Parser) nop(tok *Token) *ast.Nop {
	return &ast.Nop{ASTBase: ast.NewASTBaseOn(tok.Span())}
}

// -----------------------------------------------------------------------------

// push pushes a value onto the operand stack.
func (p *Parser) push(node ast.ASTNode) {
	p.stack = append(p.stack, node)
}

// popAny pops the top of the operand stack or returns nil.
func (p *Parser) popAny() ast.ASTNode {
	if len(p.stack) == 0 {
		return nil
	}

	top := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return top
}

// popJosi removes the topmost operand whose particle is one of the given
// particles.  It returns nil if there is none.
func (p *Parser) popJosi(josi ...string) ast.ASTNode {
	for i := len(p.stack) - 1; i >= 0; i-- {
		for _, j := range josi {
			if p.stack[i].Josi() == j {
				node := p.stack[i]
				p.stack = append(p.stack[:i], p.stack[i+1:]...)
				return node
			}
		}
	}

	return nil
}

// popAll empties the operand stack and returns its contents.
func (p *Parser) popAll() []ast.ASTNode {
	items := p.stack
	p.stack = nil
	return items
}

// sore creates a reference to the implicit variable `それ` standing in for an
// operand that was not written.
func (p *Parser) sore(tok *Token) *ast.Word {
	return &ast.Word{
		ASTBase:    ast.NewASTBaseOn(tok.Span()),
		Name:       depm.Sore.Name,
		TokenIndex: -1,
	}
}

// flushStack reports and discards any operands left unused at the end of a
// line.
func (p *Parser) flushStack() {
	if len(p.stack) == 0 {
		return
	}

	var sb strings.Builder
	var span *report.TextSpan
	for _, node := range p.stack {
		sb.WriteString("「" + nodeText(node) + node.Josi() + "」")
		span = report.NewSpanOver(span, node.Span())
	}

	if span == nil {
		span = p.tok.Span()
	}

	p.diags.Error(span, "unusedStack", report.Args{
		"words": sb.String(),
		"hint":  p.callHint(),
	})
	p.stack = nil
}

// nodeText reconstructs the source text of an unused operand.
func nodeText(node ast.ASTNode) string {
	switch v := node.(type) {
	case *ast.Word:
		return v.Name
	case *ast.Number:
		return v.Text + v.Unit
	case *ast.String:
		return v.Value
	case *ast.FuncCall:
		return v.Name
	default:
		return ast.Describe(node)
	}
}

// recordCall remembers a called function for argument hints.
func (p *Parser) recordCall(dt *depm.DeclaredThing) {
	p.recentCalls = append(p.recentCalls, dt)
	if len(p.recentCalls) > 3 {
		p.recentCalls = p.recentCalls[1:]
	}
}

// callHint describes the arguments of the recently called functions.
func (p *Parser) callHint() string {
	if len(p.recentCalls) == 0 {
		return ""
	}

	sigs := make([]string, len(p.recentCalls))
	for i, dt := range p.recentCalls {
		sigs[i] = dt.Signature()
	}

	return "（直前の関数: " + strings.Join(sigs, "、") + "）"
}

// -----------------------------------------------------------------------------

// currentScope returns the innermost open scope.
func (p *Parser) currentScope() int {
	return p.scopes[len(p.scopes)-1]
}

// openScope opens a new function scope.
func (p *Parser) openScope() int {
	p.nextScopeID++
	p.scopes = append(p.scopes, p.nextScopeID)
	return p.nextScopeID
}

// closeScope closes the innermost scope which began at the given token index.
// The scope extends to the current token.
func (p *Parser) closeScope(id, start int) {
	p.scopes = p.scopes[:len(p.scopes)-1]
	p.ranges = append(p.ranges, depm.ScopeIdRange{Start: start, End: p.pos, ScopeID: id})
}

// declareValue declares the variable or constant named by the token at index.
// At the top level it becomes a global; inside a function it becomes a local
// unless a global of the same name exists.
func (p *Parser) declareValue(index, kind int) {
	if index < 0 {
		return
	}

	tok := &p.tokens[index]
	key := tok.Key
	if key == "" {
		key = common.TrimOkurigana(tok.Value)
	}

	// the implicit result variable is never redeclared
	if key == depm.Sore.Key {
		return
	}

	dt := depm.NewDeclaredThing(kind, tok.Value, key, p.mod.Name, depm.OriginGlobal)
	dt.Span = tok.Span()
	dt.TokenIndex = index

	scope := p.currentScope()
	if scope == depm.GlobalScopeID {
		dt.IsExport = p.opts.DefaultExport
		p.mod.DeclareGlobal(dt)
		return
	}

	if _, ok := p.mod.LookupGlobal(key); ok {
		return
	}

	dt.Origin = depm.OriginLocal
	p.mod.DeclareLocal(scope, dt)
}
