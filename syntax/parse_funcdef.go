package syntax

import (
	"nakofront/ast"
	"nakofront/common"
	"nakofront/depm"
)

// parseDefFunc parses a function or test definition.  The header was already
// read by the normalizer, which left the function's declaration on the
// anchor token.
//
// def_func = ('●' | '●テスト:') ['{' attrs '}'] [params] 'WORD' [params]
//     ['とは'] block
func (p *Parser) parseDefFunc() ast.ASTNode {
	anchorIdx := p.pos
	anchor := p.tok
	dt := anchor.Decl
	if dt == nil || dt.TokenIndex <= anchorIdx {
		// the missing name was reported by the normalizer
		p.skipToEOL()
		return p.nop(anchor)
	}

	p.seek(dt.TokenIndex)
	nameIdx := p.pos
	nameTok := p.tok
	p.next()
	if p.got(TOK_LPAREN) {
		p.skipParens()
	}

	id := p.openScope()
	dt.ScopeID = id
	p.declareParams(dt, anchorIdx)

	loopDepth := p.loopDepth
	p.loopDepth = 0
	body, end := p.parseBody(p.blockMode(false), anchor)
	p.loopDepth = loopDepth

	p.closeScope(id, anchorIdx)
	p.link(anchorIdx, nameIdx, end)

	def := &ast.DefFunc{
		ASTBase:    p.baseFrom(anchor.Span()),
		Name:       nameTok.Value,
		TokenIndex: nameIdx,
		Args:       dt.Args,
		Body:       body,
		ScopeID:    id,
		IsTest:     anchor.FuncKind == TOK_DEF_TEST,
		IsAsync:    dt.IsAsync,
	}

	if !def.IsTest {
		def.Decl = dt
	}

	return def
}

// parseAnonFunc parses an anonymous function introduced by `には`.
//
// anon_func = 'には' [params] block
func (p *Parser) parseAnonFunc() *ast.AnonFunc {
	niwaIdx := p.pos
	niwa := p.tok
	dt := niwa.Decl
	p.next()

	if p.got(TOK_LPAREN) {
		p.skipParens()
	}

	id := p.openScope()
	var args []depm.FuncArg
	if dt != nil {
		dt.ScopeID = id
		args = dt.Args
		p.declareParams(dt, niwaIdx)
	}

	loopDepth := p.loopDepth
	p.loopDepth = 0
	body, end := p.parseBody(p.blockMode(false), niwa)
	p.loopDepth = loopDepth

	p.closeScope(id, niwaIdx)
	p.link(niwaIdx, end)

	return &ast.AnonFunc{
		ASTBase: p.baseFrom(niwa.Span()),
		Args:    args,
		Body:    body,
		ScopeID: id,
		IsAsync: dt != nil && dt.IsAsync,
	}
}

// declareParams declares the parameters of a function as locals of its scope.
// The parameter tokens are searched for in the header starting at anchor.
func (p *Parser) declareParams(dt *depm.DeclaredThing, anchor int) {
	for _, arg := range dt.Args {
		param := depm.NewDeclaredThing(depm.ThingVar, arg.Name, common.TrimOkurigana(arg.Name), p.mod.Name, depm.OriginLocal)
		param.ScopeID = dt.ScopeID

		for j := anchor; j < p.pos; j++ {
			if p.tokens[j].FuncKind == TOK_FUNC_ARG && p.tokens[j].Value == arg.Name {
				param.TokenIndex = j
				param.Span = p.tokens[j].Span()
				break
			}
		}

		p.mod.DeclareLocal(dt.ScopeID, param)
	}
}

// skipParens moves the parser past a parenthesized parameter list.  The list
// never spans lines.
func (p *Parser) skipParens() {
	for !p.gotEnd() {
		if p.got(TOK_RPAREN) {
			p.next()
			return
		}

		p.next()
	}
}
