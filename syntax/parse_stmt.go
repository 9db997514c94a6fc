package syntax

import (
	"nakofront/ast"
	"nakofront/depm"
	"nakofront/report"
)

// parseStmt parses a statement or the part of a sentence up to the next
// operand.  It returns nil if the tokens it consumed only pushed operands.
//
// stmt = def_func | if_stmt | def_local | try_stmt | ato_hantei | sequential
//     | break_stmt | let_stmt | sentence_part
func (p *Parser) parseStmt() ast.ASTNode {
	switch p.tok.FuncKind {
	case TOK_PREPROCESS:
		// directive lines are fully handled by the normalizer
		p.skipToEOL()
		return nil
	case TOK_DEF_FUNC, TOK_DEF_TEST:
		return p.parseDefFunc()
	case TOK_MOSHI:
		return p.parseIf()
	case TOK_HENSUU, TOK_TEISUU:
		return p.parseDefLocal()
	case TOK_ERROR_KANSHI:
		return p.parseTry()
	case TOK_ATOHANTEI:
		return p.parseAtoHantei()
	case TOK_CHIKUJI:
		return p.parseSequential()
	case TOK_NUKERU, TOK_TSUZUKERU:
		return p.parseBreak()
	case TOK_COMMA, TOK_SAKINI, TOK_TSUGINI:
		p.next()
		return nil
	case TOK_WORD, TOK_USER_FUNC, TOK_SYS_FUNC:
		if p.letAhead() {
			return p.parseLet()
		}
	}

	return p.parseSentencePart()
}

// parseSentencePart parses a postfix keyword or function call that completes a
// sentence, or otherwise pushes the next operand.
func (p *Parser) parseSentencePart() ast.ASTNode {
	switch p.tok.FuncKind {
	case TOK_AIDA:
		return p.parseWhile()
	case TOK_KAI:
		return p.parseTimes()
	case TOK_KURIKAESU, TOK_ZOU_KURIKAESU, TOK_GEN_KURIKAESU:
		return p.parseFor()
	case TOK_HANPUKU:
		return p.parseForeach()
	case TOK_JOUKEN_BUNKI:
		return p.parseSwitch()
	case TOK_MODORU:
		return p.parseReturn()
	case TOK_DAINYU:
		return p.parseDainyu()
	case TOK_SADAMERU:
		return p.parseSadameru()
	case TOK_ZOU, TOK_GEN:
		return p.parseIncDec()
	case TOK_SPEED_MODE, TOK_PERFORMANCE_MONITOR:
		return p.parseSpeedMode()
	case TOK_USER_FUNC, TOK_SYS_FUNC:
		return p.parseCallStmt()
	}

	if v := p.parseExpr(); v != nil {
		p.push(v)
	}

	return nil
}

// -----------------------------------------------------------------------------

// letAhead returns whether the current word begins an assignment.
func (p *Parser) letAhead() bool {
	j := p.pos + 1
	for j < len(p.tokens) {
		switch p.tokens[j].FuncKind {
		case TOK_LBRACKET:
			if j = p.matchBracket(j); j < 0 {
				return false
			}
			j++
		case TOK_AT:
			j += 2
		case TOK_EQ:
			return true
		default:
			return false
		}
	}

	return false
}

// matchBracket returns the index of the bracket closing the one at open or -1
// if it is not closed on the same line.
func (p *Parser) matchBracket(open int) int {
	depth := 0
	for j := open; j < len(p.tokens); j++ {
		switch p.tokens[j].FuncKind {
		case TOK_LBRACKET:
			depth++
		case TOK_RBRACKET:
			if depth--; depth == 0 {
				return j
			}
		case TOK_EOL, TOK_EOF:
			return -1
		}
	}

	return -1
}

// parseLet parses an assignment.
//
// let_stmt = 'WORD' {'[' expr ']' | '@' prop} ('は' | '=') sentence
func (p *Parser) parseLet() ast.ASTNode {
	nameIdx := p.pos
	nameTok := p.tok
	if nameTok.FuncKind != TOK_WORD {
		p.errorOn(nameTok, "assignToFunction", report.Args{"name": nameTok.Value})
		p.skipToEOL()
		return p.nop(nameTok)
	}
	p.next()

	var index, props []ast.ASTNode
	for !p.got(TOK_EQ) && !p.gotEnd() {
		switch {
		case p.got(TOK_LBRACKET):
			open := p.tok
			p.next()
			index = append(index, p.collectLast(open, TOK_RBRACKET))
			if !p.got(TOK_RBRACKET) {
				p.errorOn(open, "missingCloseParen", report.Args{"open": "[", "close": "]"})
				p.skipToEOL()
				return p.nop(nameTok)
			}
			p.next()
		case p.got(TOK_AT):
			p.next()
			props = append(props, p.parseProp())
		default:
			p.reject()
			p.skipToEOL()
			return p.nop(nameTok)
		}
	}

	eqIdx := p.pos
	p.next()
	value := p.parseAssignValue(&p.tokens[eqIdx])
	p.link(nameIdx, eqIdx)

	base := p.baseFrom(nameTok.Span())
	switch {
	case len(index) > 0:
		return &ast.LetArray{ASTBase: base, Name: nameTok.Value, TokenIndex: nameIdx, Index: index, Value: value}
	case len(props) > 0:
		return &ast.LetProp{ASTBase: base, Name: nameTok.Value, TokenIndex: nameIdx, Props: props, Value: value}
	default:
		p.declareValue(nameIdx, depm.ThingVar)
		return &ast.Let{ASTBase: base, Name: nameTok.Value, TokenIndex: nameIdx, Value: value}
	}
}

// parseAssignValue parses the value of an assignment: the rest of the sentence
// up to the end of the line or a comma.
func (p *Parser) parseAssignValue(at *Token) ast.ASTNode {
	if p.gotEnd() {
		p.reject()
		return p.nop(at)
	}

	return p.collectLast(at, TOK_COMMA, TOK_KOKOMADE, TOK_CHIGAEBA, TOK_ERROR_NARABA)
}

// parseDefLocal parses a variable or constant declaration.
//
// def_local = ('変数' | '定数') 'WORD' [('は' | '=') sentence]
func (p *Parser) parseDefLocal() ast.ASTNode {
	kwIdx := p.pos
	kw := p.tok
	isConst := kw.FuncKind == TOK_TEISUU
	p.next()

	if !p.got(TOK_WORD) {
		if p.gotOneOf(TOK_USER_FUNC, TOK_SYS_FUNC) {
			p.errorOn(p.tok, "assignToFunction", report.Args{"name": p.tok.Value})
		} else {
			p.reject()
		}

		p.skipToEOL()
		return p.nop(kw)
	}

	nameIdx := p.pos
	nameTok := p.tok
	p.next()

	kind := depm.ThingVar
	if isConst {
		kind = depm.ThingConst
	}
	p.declareValue(nameIdx, kind)
	p.link(kwIdx, nameIdx)

	var value ast.ASTNode
	if p.got(TOK_EQ) {
		eq := p.tok
		p.next()
		value = p.parseAssignValue(eq)
	}

	return &ast.DefLocal{
		ASTBase:    p.baseFrom(kw.Span()),
		Name:       nameTok.Value,
		TokenIndex: nameIdx,
		IsConst:    isConst,
		Value:      value,
	}
}

// makeAssign builds the assignment of value to an operand used as an
// assignment target.
func (p *Parser) makeAssign(target, value ast.ASTNode, at *Token) ast.ASTNode {
	base := ast.NewASTBaseOver(target.Span(), at.Span())

	switch v := target.(type) {
	case *ast.Word:
		p.declareValue(v.TokenIndex, depm.ThingVar)
		return &ast.Let{ASTBase: base, Name: v.Name, TokenIndex: v.TokenIndex, Value: value}
	case *ast.RefArray:
		if w, ok := v.Target.(*ast.Word); ok {
			return &ast.LetArray{ASTBase: base, Name: w.Name, TokenIndex: w.TokenIndex, Index: v.Index, Value: value}
		}
	case *ast.RefProp:
		if w, ok := v.Target.(*ast.Word); ok {
			return &ast.LetProp{ASTBase: base, Name: w.Name, TokenIndex: w.TokenIndex, Props: []ast.ASTNode{v.Prop}, Value: value}
		}
	}

	p.diags.Error(target.Span(), "unexpectedToken", report.Args{"name": nodeText(target)})
	return &ast.Nop{ASTBase: base}
}

// parseDainyu parses an assignment written with `代入`.
//
// dainyu = value 'を' target 'に' '代入'
func (p *Parser) parseDainyu() ast.ASTNode {
	tok := p.tok
	target := p.popJosi("に", "へ")
	value := p.popJosi("を")
	p.next()

	if value == nil {
		value = p.sore(tok)
	}

	if target == nil {
		p.errorOn(tok, "tooFewArgs", report.Args{"name": tok.Text, "count": "1"})
		return p.nop(tok)
	}

	return p.makeAssign(target, value, tok)
}

// parseSadameru parses a constant definition written with `定める`.
//
// sadameru = target 'を' value 'に' '定める'
func (p *Parser) parseSadameru() ast.ASTNode {
	tok := p.tok
	value := p.popJosi("に", "へ")
	target := p.popJosi("を")
	p.next()

	w, ok := target.(*ast.Word)
	if !ok {
		p.errorOn(tok, "tooFewArgs", report.Args{"name": tok.Text, "count": "1"})
		return p.nop(tok)
	}

	if value == nil {
		value = p.sore(tok)
	}

	p.declareValue(w.TokenIndex, depm.ThingConst)
	return &ast.DefLocal{
		ASTBase:    ast.NewASTBaseOver(w.Span(), tok.Span()),
		Name:       w.Name,
		TokenIndex: w.TokenIndex,
		IsConst:    true,
		Value:      value,
	}
}

// parseIncDec parses an increment or decrement.
//
// inc_dec = target 'を' [amount] ('増やす' | '減らす')
func (p *Parser) parseIncDec() ast.ASTNode {
	tok := p.tok
	amount := p.popJosi("")
	target := p.popJosi("を")
	p.next()

	if target == nil {
		p.errorOn(tok, "tooFewArgs", report.Args{"name": tok.Text, "count": "1"})
		target = p.nop(tok)
	}

	if amount == nil {
		amount = &ast.Number{ASTBase: ast.NewASTBaseOn(tok.Span()), Value: 1, Text: "1"}
	}

	return &ast.IncDec{
		ASTBase: ast.NewASTBaseOver(target.Span(), tok.Span()),
		Target:  target,
		Amount:  amount,
		Dec:     tok.FuncKind == TOK_GEN,
	}
}

// parseReturn parses a return.
//
// return_stmt = [value ('で' | 'を')] ('戻る' | '戻す')
func (p *Parser) parseReturn() ast.ASTNode {
	tok := p.tok
	value := p.popAny()
	p.next()

	ret := &ast.Return{Value: value}
	if value != nil {
		ret.ASTBase = ast.NewASTBaseOver(value.Span(), tok.Span())
	} else {
		ret.ASTBase = ast.NewASTBaseOn(tok.Span())
	}

	return ret
}

// parseBreak parses `抜ける` and `続ける`.
func (p *Parser) parseBreak() ast.ASTNode {
	tok := p.tok
	p.next()

	if p.loopDepth == 0 {
		p.errorOn(tok, "noBlockToBreak", report.Args{"name": tok.Text})
	}

	if tok.FuncKind == TOK_NUKERU {
		return &ast.Break{ASTBase: ast.NewASTBaseOn(tok.Span())}
	}

	return &ast.Continue{ASTBase: ast.NewASTBaseOn(tok.Span())}
}
