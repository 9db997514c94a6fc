package syntax

import (
	"nakofront/ast"
	"nakofront/report"
)

// opPriorities are the binding strengths of the binary operators.  Higher
// priorities bind tighter.
var opPriorities = map[Kind]int{
	TOK_OR:      1,
	TOK_AND:     2,
	TOK_EQ:      3,
	TOK_EQEQ:    3,
	TOK_EQEQEQ:  3,
	TOK_NOTEQ:   3,
	TOK_NOTEQEQ: 3,
	TOK_GT:      3,
	TOK_GTEQ:    3,
	TOK_LT:      3,
	TOK_LTEQ:    3,
	TOK_AMP:     4,
	TOK_PLUS:    5,
	TOK_MINUS:   5,
	TOK_SHL:     6,
	TOK_SHR:     6,
	TOK_USHR:    6,
	TOK_MUL:     7,
	TOK_DIV:     7,
	TOK_INTDIV:  7,
	TOK_MOD:     7,
	TOK_CARET:   8,
	TOK_POW:     8,
}

// collect parses operands on a fresh operand stack until the end of the line
// or one of the stop kinds and returns them.  Function calls inside the
// operands consume the operands before them as usual.
func (p *Parser) collect(stops ...Kind) []ast.ASTNode {
	outer := p.stack
	p.stack = nil

	for !p.gotEnd() && !p.gotOneOf(stops...) {
		start := p.pos
		p.parseOperand()

		if p.pos == start {
			p.reject()
			p.next()
		}
	}

	items := p.stack
	p.stack = outer
	return items
}

// collectLast is collect for positions that take a single value.  Any operands
// before the last one are reported as unused.  If there are no operands, a
// placeholder on at is returned.
func (p *Parser) collectLast(at *Token, stops ...Kind) ast.ASTNode {
	items := p.collect(stops...)
	if len(items) == 0 {
		return p.nop(at)
	}

	if len(items) > 1 {
		outer := p.stack
		p.stack = items[:len(items)-1]
		p.flushStack()
		p.stack = outer
	}

	return items[len(items)-1]
}

// parseOperand pushes the next operand onto the operand stack.  Calls are
// always pushed regardless of their particle.
func (p *Parser) parseOperand() {
	switch p.tok.FuncKind {
	case TOK_COMMA:
		p.next()
	case TOK_USER_FUNC, TOK_SYS_FUNC:
		p.push(p.parseExprFrom(p.parseCall()))
	default:
		if v := p.parseExpr(); v != nil {
			p.push(v)
		}
	}
}

// -----------------------------------------------------------------------------

// parseExpr parses an operator expression.  An expression ends after the first
// operand carrying a particle.
//
// expr = value {'OP' value}
func (p *Parser) parseExpr() ast.ASTNode {
	return p.parseExprFrom(p.parseValue())
}

// parseExprFrom parses an operator expression whose first operand has already
// been parsed.
func (p *Parser) parseExprFrom(first ast.ASTNode) ast.ASTNode {
	if first == nil || first.Josi() != "" {
		return first
	}

	values := []ast.ASTNode{first}
	var ops []*Token
	for {
		if _, ok := opPriorities[p.tok.FuncKind]; !ok {
			break
		}

		op := p.tok
		p.next()

		v := p.parseValue()
		if v == nil {
			v = p.nop(op)
		}

		ops = append(ops, op)
		values = append(values, v)

		if v.Josi() != "" {
			break
		}
	}

	if len(ops) == 0 {
		return first
	}

	// the particle of the last operand belongs to the whole expression
	last := values[len(values)-1]
	josi := last.Josi()
	last.SetJosi("")

	expr := foldOperators(values, ops)
	expr.SetJosi(josi)
	return expr
}

// foldOperators converts an alternating sequence of operands and operators to
// postfix order and folds it into a left-associative operator tree.
func foldOperators(values []ast.ASTNode, ops []*Token) ast.ASTNode {
	// postfix items are either operands or operator tokens
	type item struct {
		node ast.ASTNode
		op   *Token
	}

	var postfix []item
	var opStack []*Token

	postfix = append(postfix, item{node: values[0]})
	for i, op := range ops {
		prio := opPriorities[op.FuncKind]
		for len(opStack) > 0 && opPriorities[opStack[len(opStack)-1].FuncKind] >= prio {
			postfix = append(postfix, item{op: opStack[len(opStack)-1]})
			opStack = opStack[:len(opStack)-1]
		}

		opStack = append(opStack, op)
		postfix = append(postfix, item{node: values[i+1]})
	}

	for i := len(opStack) - 1; i >= 0; i-- {
		postfix = append(postfix, item{op: opStack[i]})
	}

	var nodes []ast.ASTNode
	for _, it := range postfix {
		if it.op == nil {
			nodes = append(nodes, it.node)
			continue
		}

		lhs, rhs := nodes[len(nodes)-2], nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-2]
		nodes = append(nodes, &ast.BinaryOp{
			ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
			Op:      it.op.FuncKind.String(),
			Lhs:     lhs,
			Rhs:     rhs,
		})
	}

	return nodes[0]
}

// -----------------------------------------------------------------------------

// parseValue parses a single operand.  It returns nil if there is no operand
// at the current token.
//
// value = 'NUMBER' | 'STRING' | template | word {postfix} | call | '{関数}' func
//     | '(' sentence ')' | array | dict | ('-' | '!') value
func (p *Parser) parseValue() ast.ASTNode {
	tok := p.tok
	idx := p.pos

	switch tok.FuncKind {
	case TOK_NUMBER:
		p.next()
		n := &ast.Number{ASTBase: ast.NewASTBaseOn(tok.Span()), Value: tok.Num, Text: tok.Value, Unit: tok.Unit}
		n.SetJosi(tok.Josi)
		return n
	case TOK_STRING:
		p.next()
		s := &ast.String{ASTBase: ast.NewASTBaseOn(tok.Span()), Value: tok.Value}
		s.SetJosi(tok.Josi)
		return s
	case TOK_STRING_EX:
		return p.parseTemplate()
	case TOK_WORD, TOK_ERROR:
		p.next()
		w := &ast.Word{ASTBase: ast.NewASTBaseOn(tok.Span()), Name: tok.Value, TokenIndex: idx}
		w.SetJosi(tok.Josi)
		return p.parsePostfix(w, tok)
	case TOK_USER_FUNC, TOK_SYS_FUNC:
		return p.parseCall()
	case TOK_FUNC_POINTER:
		p.next()
		if !p.gotOneOf(TOK_USER_FUNC, TOK_SYS_FUNC, TOK_WORD) {
			p.reject()
			return nil
		}

		fn := p.tok
		p.link(idx, p.pos)
		p.next()
		w := &ast.Word{ASTBase: ast.NewASTBaseOver(tok.Span(), fn.Span()), Name: fn.Value, TokenIndex: idx + 1}
		w.SetJosi(fn.Josi)
		return w
	case TOK_LPAREN:
		return p.parseGroup()
	case TOK_LBRACKET:
		return p.parseArray()
	case TOK_LBRACE:
		return p.parseDict()
	case TOK_MINUS, TOK_NOT:
		p.next()
		operand := p.parseValue()
		if operand == nil {
			return nil
		}

		op := "-"
		if tok.FuncKind == TOK_NOT {
			op = "!"
		}

		u := &ast.UnaryOp{ASTBase: ast.NewASTBaseOver(tok.Span(), operand.Span()), Op: op, Operand: operand}
		u.SetJosi(operand.Josi())
		operand.SetJosi("")
		return u
	case TOK_EOL, TOK_EOF:
		p.errorOn(tok, "unexpectedEOL", nil)
		return nil
	default:
		p.reject()
		p.next()
		return nil
	}
}

// parsePostfix applies the index and property accesses following a word.
// Postfixes only apply while the last token has no particle.
//
// postfix = '[' sentence ']' | '@' prop
func (p *Parser) parsePostfix(node ast.ASTNode, last *Token) ast.ASTNode {
	for !last.HasJosi() {
		switch {
		case p.got(TOK_LBRACKET):
			open := p.tok
			p.next()
			index := p.collectLast(open, TOK_RBRACKET)
			if !p.got(TOK_RBRACKET) {
				p.errorOn(open, "missingCloseParen", report.Args{"open": "[", "close": "]"})
				return node
			}

			last = p.tok
			p.next()

			if ra, ok := node.(*ast.RefArray); ok {
				ra.Index = append(ra.Index, index)
				ra.SetSpan(report.NewSpanOver(ra.Span(), last.Span()))
			} else {
				node = &ast.RefArray{
					ASTBase: ast.NewASTBaseOver(node.Span(), last.Span()),
					Target:  node,
					Index:   []ast.ASTNode{index},
				}
			}
		case p.got(TOK_AT):
			p.next()
			last = p.tok
			prop := p.parseProp()
			node = &ast.RefProp{
				ASTBase: ast.NewASTBaseOver(node.Span(), prop.Span()),
				Target:  node,
				Prop:    prop,
			}
		default:
			return node
		}

		node.SetJosi(last.Josi)
	}

	return node
}

// parseProp parses the property name following `@`.  The property's particle
// is moved to the enclosing access.
//
// prop = 'WORD' | 'STRING' | 'NUMBER'
func (p *Parser) parseProp() ast.ASTNode {
	tok := p.tok

	switch tok.FuncKind {
	case TOK_WORD, TOK_STRING, TOK_STRING_EX, TOK_USER_FUNC, TOK_SYS_FUNC:
		p.next()
		return &ast.String{ASTBase: ast.NewASTBaseOn(tok.Span()), Value: tok.Value}
	case TOK_NUMBER:
		p.next()
		return &ast.Number{ASTBase: ast.NewASTBaseOn(tok.Span()), Value: tok.Num, Text: tok.Value}
	default:
		p.reject()
		return p.nop(tok)
	}
}

// parseGroup parses a parenthesized sentence.
//
// group = '(' sentence ')'
func (p *Parser) parseGroup() ast.ASTNode {
	open := p.tok
	p.next()

	node := p.collectLast(open, TOK_RPAREN)
	if !p.got(TOK_RPAREN) {
		p.errorOn(open, "missingCloseParen", report.Args{"open": "(", "close": ")"})
		return node
	}

	node.SetJosi(p.tok.Josi)
	p.next()
	return node
}

// parseArray parses an array literal.  Array literals may span lines.
//
// array = '[' [sentence {',' sentence}] ']'
func (p *Parser) parseArray() ast.ASTNode {
	open := p.tok
	p.next()

	var items []ast.ASTNode
	for {
		p.skipEOLs()
		if p.gotOneOf(TOK_RBRACKET, TOK_EOF) {
			break
		}

		items = append(items, p.collectLast(p.tok, TOK_COMMA, TOK_RBRACKET))
		if p.got(TOK_COMMA) {
			p.next()
		} else if !p.got(TOK_EOL) {
			break
		}
	}

	arr := &ast.Array{Items: items}
	if !p.got(TOK_RBRACKET) {
		p.errorOn(open, "missingCloseParen", report.Args{"open": "[", "close": "]"})
		arr.ASTBase = p.baseFrom(open.Span())
		return arr
	}

	closeTok := p.tok
	p.next()
	arr.ASTBase = ast.NewASTBaseOver(open.Span(), closeTok.Span())
	arr.SetJosi(closeTok.Josi)
	return p.parsePostfix(arr, closeTok)
}

// parseDict parses a dictionary literal.  Dictionary literals may span lines.
//
// dict = '{' [entry {',' entry}] '}'
// entry = ('WORD' | 'STRING' | 'NUMBER') ':' sentence
func (p *Parser) parseDict() ast.ASTNode {
	open := p.tok
	p.next()

	var entries []ast.DictEntry
	for {
		p.skipEOLs()
		if p.gotOneOf(TOK_RBRACE, TOK_EOF) {
			break
		}

		key := p.parseProp()
		if !p.got(TOK_COLON) {
			p.reject()
			break
		}
		p.next()

		value := p.collectLast(p.tok, TOK_COMMA, TOK_RBRACE)
		entries = append(entries, ast.DictEntry{Key: key, Value: value})

		if p.got(TOK_COMMA) {
			p.next()
		} else if !p.got(TOK_EOL) {
			break
		}
	}

	dict := &ast.Dict{Entries: entries}
	if !p.got(TOK_RBRACE) {
		p.errorOn(open, "missingCloseParen", report.Args{"open": "{", "close": "}"})
		dict.ASTBase = p.baseFrom(open.Span())
		return dict
	}

	closeTok := p.tok
	p.next()
	dict.ASTBase = ast.NewASTBaseOver(open.Span(), closeTok.Span())
	dict.SetJosi(closeTok.Josi)
	return p.parsePostfix(dict, closeTok)
}

// parseTemplate parses a string with interpolations.  A template string with
// no interpolation is a plain string.
//
// template = 'STRING_EX' {'INJECT_START' sentence 'INJECT_END' 'STRING_EX'}
func (p *Parser) parseTemplate() ast.ASTNode {
	first := p.tok
	if p.peekKind(1) != TOK_STRING_INJECT_START {
		p.next()
		s := &ast.String{ASTBase: ast.NewASTBaseOn(first.Span()), Value: first.Value}
		s.SetJosi(first.Josi)
		return s
	}

	var parts []ast.ASTNode
	last := first
	for p.got(TOK_STRING_EX) {
		last = p.tok
		if last.Value != "" {
			parts = append(parts, &ast.String{ASTBase: ast.NewASTBaseOn(last.Span()), Value: last.Value})
		}
		p.next()

		if !p.got(TOK_STRING_INJECT_START) {
			break
		}

		inject := p.tok
		p.next()
		parts = append(parts, p.collectLast(inject, TOK_STRING_INJECT_END))

		if !p.got(TOK_STRING_INJECT_END) {
			break
		}
		p.next()
	}

	ts := &ast.TemplateString{
		ASTBase: ast.NewASTBaseOver(first.Span(), last.Span()),
		Parts:   parts,
	}
	ts.SetJosi(last.Josi)
	return ts
}
