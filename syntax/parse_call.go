package syntax

import (
	"nakofront/ast"
	"nakofront/depm"
	"nakofront/report"
	"strconv"
)

// parseCallStmt parses a function call in statement position.  A call without
// a particle ends the sentence, a call with a chaining particle continues it
// into the next statement, and any other call is pushed as an operand.
//
// call_stmt = call [te_form stmt]
func (p *Parser) parseCallStmt() ast.ASTNode {
	call := p.parseCall()

	switch {
	case IsRenbunJosi(call.Josi()):
		return p.parseRenbun(call)
	case call.Josi() != "":
		p.push(call)
		return nil
	case p.gotOperator():
		p.push(p.parseExprFrom(call))
		return nil
	default:
		return call
	}
}

// gotOperator returns whether the current token is a binary operator.
func (p *Parser) gotOperator() bool {
	_, ok := opPriorities[p.tok.FuncKind]
	return ok
}

// parseRenbun parses the statement chained after a te-form call.
func (p *Parser) parseRenbun(first *ast.FuncCall) ast.ASTNode {
	for !p.gotEnd() && !p.gotOneOf(TOK_KOKOMADE, TOK_CHIGAEBA, TOK_ERROR_NARABA) {
		start := p.pos
		if rest := p.parseStmt(); rest != nil {
			return &ast.Renbun{
				ASTBase: ast.NewASTBaseOver(first.Span(), rest.Span()),
				First:   first,
				Rest:    rest,
			}
		}

		if p.pos == start {
			break
		}
	}

	return first
}

// parseCall parses a call of the function at the current token.  Arguments are
// either written in parentheses directly after the function or taken from the
// operand stack by particle.  A `には` after the function defines an anonymous
// function passed as the first parameter no written operand fills.
//
// call = 'FUNC' ['(' [sentence {',' sentence}] ')'] | 'FUNC' 'には' anon_func
func (p *Parser) parseCall() *ast.FuncCall {
	idx := p.pos
	tok := p.tok
	dt := tok.Decl
	if dt == nil || !dt.IsFunc() {
		panic(report.Raise(tok.Span(), "function token `%s` has no function declaration", tok.Text))
	}
	p.next()

	call := &ast.FuncCall{Name: tok.Value, TokenIndex: idx, Decl: dt}
	p.recordCall(dt)

	if !tok.HasJosi() && p.got(TOK_LPAREN) {
		call.Args = p.parseParenArgs()
		call.ASTBase = p.baseFrom(tok.Span())
		call.SetJosi(p.tokens[p.pos-1].Josi)
		return call
	}

	if p.got(TOK_NIWA) {
		anon := p.parseAnonFunc()
		if arg, ok := p.unfilledArg(dt); ok && len(arg.Josi) > 0 {
			anon.SetJosi(arg.Josi[0])
		}

		p.push(anon)
	}

	call.Args = p.popArgs(tok)

	var start *report.TextSpan
	for _, arg := range call.Args {
		if arg.Span() != nil && (start == nil || spanBefore(arg.Span(), start)) {
			start = arg.Span()
		}
	}

	if start != nil && spanBefore(start, tok.Span()) {
		call.ASTBase = ast.NewASTBaseOver(start, p.tokens[p.pos-1].Span())
	} else {
		call.ASTBase = p.baseFrom(tok.Span())
	}

	call.SetJosi(tok.Josi)
	return call
}

// spanBefore returns whether span a starts before span b.
func spanBefore(a, b *report.TextSpan) bool {
	return a.StartLine < b.StartLine || (a.StartLine == b.StartLine && a.StartCol < b.StartCol)
}

// parseParenArgs parses a parenthesized argument list.
func (p *Parser) parseParenArgs() []ast.ASTNode {
	open := p.tok
	p.next()

	var args []ast.ASTNode
	for !p.gotOneOf(TOK_RPAREN, TOK_EOL, TOK_EOF) {
		args = append(args, p.collectLast(p.tok, TOK_COMMA, TOK_RPAREN))
		if p.got(TOK_COMMA) {
			p.next()
		}
	}

	if !p.got(TOK_RPAREN) {
		p.errorOn(open, "missingCloseParen", report.Args{"open": "(", "close": ")"})
		return args
	}

	p.next()
	return args
}

// popArgs takes the arguments of the function at tok from the operand stack.
// Each parameter, last first, takes the topmost operand whose particle it
// accepts.  Missing arguments become `それ`; more than one missing argument is
// an error.  Functions with variable particles take the stack positionally.
func (p *Parser) popArgs(tok *Token) []ast.ASTNode {
	dt := tok.Decl

	if dt.IsVariableJosi {
		args := p.popAll()
		if len(args) == 0 && len(dt.Args) > 0 {
			args = append(args, p.sore(tok))
		}

		return args
	}

	args := make([]ast.ASTNode, len(dt.Args))
	missing := 0
	for i := len(dt.Args) - 1; i >= 0; i-- {
		if arg := p.popAccepted(dt.Args[i].Josi); arg != nil {
			args[i] = arg
		} else {
			args[i] = p.sore(tok)
			missing++
		}
	}

	if missing > 1 {
		p.errorOn(tok, "tooFewArgs", report.Args{"name": tok.Value, "count": strconv.Itoa(missing)})
	}

	return args
}

// unfilledArg returns the first parameter of dt that no operand on the stack
// can fill, or the last parameter if every one can.  An anonymous function
// written with `には` is passed as this parameter.
func (p *Parser) unfilledArg(dt *depm.DeclaredThing) (depm.FuncArg, bool) {
	if len(dt.Args) == 0 {
		return depm.FuncArg{}, false
	}

	used := make([]bool, len(p.stack))
	for _, arg := range dt.Args {
		found := false
		for i := len(p.stack) - 1; i >= 0; i-- {
			if !used[i] && acceptsOperand(arg, p.stack[i]) {
				used[i] = true
				found = true
				break
			}
		}

		if !found {
			return arg, true
		}
	}

	return dt.Args[len(dt.Args)-1], true
}

// acceptsOperand returns whether a parameter accepts an operand's particle.
func acceptsOperand(arg depm.FuncArg, node ast.ASTNode) bool {
	if len(arg.Josi) == 0 {
		return node.Josi() == ""
	}

	return arg.AcceptsJosi(node.Josi())
}

// popAccepted removes the topmost operand whose particle is accepted.
func (p *Parser) popAccepted(josi []string) ast.ASTNode {
	if len(josi) == 0 {
		return p.popJosi("")
	}

	return p.popJosi(josi...)
}
