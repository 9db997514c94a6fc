package syntax

import (
	"nakofront/ast"
	"nakofront/depm"
	"nakofront/report"
)

// condition builds a condition from the operands written before `ならば` or
// `の間`.  Two operands, as in `AがBならば`, are compared for equality.
func (p *Parser) condition(items []ast.ASTNode, at *Token) ast.ASTNode {
	switch len(items) {
	case 0:
		p.errorOn(at, "missingCondition", report.Args{"name": at.Text})
		return p.nop(at)
	case 1:
		return items[0]
	}

	if len(items) > 2 {
		outer := p.stack
		p.stack = items[:len(items)-2]
		p.flushStack()
		p.stack = outer
		items = items[len(items)-2:]
	}

	lhs, rhs := items[0], items[1]
	return &ast.BinaryOp{
		ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
		Op:      "==",
		Lhs:     lhs,
		Rhs:     rhs,
	}
}

// closePending consumes the `ここまで` of a keyword delimited construct whose
// last clause was written on a single line.
func (p *Parser) closePending() int {
	save := p.pos
	p.skipEOLs()
	if p.got(TOK_KOKOMADE) {
		end := p.pos
		p.next()
		p.skipCommas()
		return end
	}

	p.seek(save)
	return -1
}

// -----------------------------------------------------------------------------

// parseIf parses a conditional.  A missing `ならば` is reported once: the rest
// of the header line is skipped and the branches are consumed up to their
// `ここまで` but replaced by no-ops.
//
// if_stmt = 'もし' sentence ('ならば' | 'でなければ') block
//     ['違えば' (if_stmt | block)]
func (p *Parser) parseIf() ast.ASTNode {
	moshiIdx := p.pos
	moshi := p.tok
	p.next()
	p.skipCommas()

	var cond ast.ASTNode
	var aux []int
	negate, recovering := false, false

	items := p.collect(TOK_NARABA, TOK_DENAKEREBA)
	if p.gotOneOf(TOK_NARABA, TOK_DENAKEREBA) {
		negate = p.got(TOK_DENAKEREBA)
		aux = append(aux, p.pos)
		cond = p.condition(items, moshi)
		p.next()
	} else {
		p.errorOn(moshi, "missingNaraba", nil)
		p.skipToEOL()
		cond = p.nop(moshi)
		recovering = true
	}

	mode := p.blockMode(false)
	then, end := p.parseBranch(mode, moshi, recovering, TOK_CHIGAEBA)
	aux = append(aux, end)

	var elseNode ast.ASTNode = p.nop(moshi)
	if chIdx, ok := p.elseAhead(mode, moshi); ok {
		p.seek(chIdx)
		aux = append(aux, chIdx)
		p.next()
		p.skipCommas()

		if p.got(TOK_MOSHI) {
			elseNode = p.parseIf()
		} else {
			elseMode := p.blockMode(mode == modeIndent)
			body, elseEnd := p.parseBranch(elseMode, &p.tokens[chIdx], recovering)
			if mode == modeKeyword && elseMode == modeSingle {
				elseEnd = p.closePending()
			}

			aux = append(aux, elseEnd)
			elseNode = body
		}
	}

	p.link(moshiIdx, aux...)

	var thenNode ast.ASTNode = then
	if recovering {
		thenNode, elseNode = p.nop(moshi), p.nop(moshi)
	}

	return &ast.If{
		ASTBase: p.baseFrom(moshi.Span()),
		Cond:    cond,
		Negate:  negate,
		Then:    thenNode,
		Else:    elseNode,
	}
}

// parseBranch parses the body of a conditional branch.  The keyword block of
// a quiet branch does not report its missing `ここまで`.
func (p *Parser) parseBranch(mode int, header *Token, quiet bool, stops ...Kind) (*ast.Block, int) {
	p.quietKokomade = quiet && mode == modeKeyword
	return p.parseBody(mode, header, stops...)
}

// elseAhead returns the index of the `違えば` continuing a conditional whose
// then block was parsed in the given mode.
func (p *Parser) elseAhead(mode int, moshi *Token) (int, bool) {
	switch mode {
	case modeKeyword:
		return p.pos, p.got(TOK_CHIGAEBA)
	case modeIndent:
		return p.pos, p.got(TOK_CHIGAEBA) && p.isLineStart() && p.tok.Indent.Level == moshi.Indent.Level
	}

	if p.got(TOK_CHIGAEBA) {
		return p.pos, true
	}

	// a single line conditional may continue after `。` on the same line or on
	// the next line at the same indentation
	if p.got(TOK_EOL) && p.pos+1 < len(p.tokens) {
		next := &p.tokens[p.pos+1]
		if next.FuncKind == TOK_CHIGAEBA && (next.StartLine == p.tok.EndLine || next.Indent.Level == moshi.Indent.Level) {
			return p.pos + 1, true
		}
	}

	return -1, false
}

// parseSwitch parses a switch.  Each arm is a value followed by `ならば` and a
// block; `違えば` introduces the default arm.
//
// switch = value 'で' '条件分岐' 'EOL' {value 'ならば' block} ['違えば' block]
//     'ここまで'
func (p *Parser) parseSwitch() ast.ASTNode {
	tokIdx := p.pos
	tok := p.tok
	value := p.popJosi("で")
	if value == nil {
		value = p.popAny()
	}
	if value == nil {
		value = p.sore(tok)
	}
	p.next()

	sw := &ast.Switch{Value: value}
	mode := p.blockMode(false)
	if mode == modeSingle {
		mode = modeKeyword
	}

	level := tok.Indent.Level
	if mode == modeKeyword {
		p.keywordLevels = append(p.keywordLevels, level)
		defer func() {
			p.keywordLevels = p.keywordLevels[:len(p.keywordLevels)-1]
		}()
	}

	outer := p.stack
	p.stack = nil
	defer func() {
		p.stack = outer
	}()

	var aux []int
	for {
		p.skipEOLs()
		if p.got(TOK_EOF) {
			if mode == modeKeyword {
				p.errorOn(tok, "missingKokomade", report.Args{"name": tok.Text})
			}

			break
		}

		if mode == modeIndent && p.tok.Indent.Level <= level {
			break
		}

		if p.got(TOK_KOKOMADE) {
			if mode == modeKeyword {
				aux = append(aux, p.pos)
				p.next()
				p.skipCommas()
				break
			}

			p.errorOn(p.tok, "kokomadeInIndentMode", nil)
			p.next()
			continue
		}

		armIdx := p.pos
		if p.got(TOK_CHIGAEBA) {
			aux = append(aux, armIdx)
			p.next()
			body, end := p.parseBody(p.blockMode(mode == modeIndent), &p.tokens[armIdx])
			aux = append(aux, end)
			sw.Default = body
			continue
		}

		items := p.collect(TOK_NARABA)
		if !p.got(TOK_NARABA) {
			p.errorOn(&p.tokens[armIdx], "missingNaraba", nil)
			p.skipToEOL()
			continue
		}

		aux = append(aux, p.pos)
		p.next()

		body, end := p.parseBody(p.blockMode(mode == modeIndent), &p.tokens[armIdx])
		aux = append(aux, end)
		sw.Cases = append(sw.Cases, ast.SwitchCase{Value: p.condition(items, &p.tokens[armIdx]), Body: body})
	}

	p.link(tokIdx, aux...)
	sw.ASTBase = p.baseFrom(value.Span())
	return sw
}

// -----------------------------------------------------------------------------

// parseLoopBody parses the body of a loop.
func (p *Parser) parseLoopBody(header *Token) (*ast.Block, int) {
	p.loopDepth++
	defer func() {
		p.loopDepth--
	}()

	return p.parseBody(p.blockMode(false), header)
}

// parseWhile parses a while loop.
//
// while = sentence '間' block
func (p *Parser) parseWhile() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	cond := p.condition(p.popAll(), tok)
	p.next()

	body, end := p.parseLoopBody(tok)
	p.link(idx, end)
	return &ast.While{ASTBase: p.baseFrom(cond.Span()), Cond: cond, Body: body}
}

// parseTimes parses a loop repeated a number of times.
//
// times = [value] '回' block
func (p *Parser) parseTimes() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	count := p.popAny()
	if count == nil {
		count = p.sore(tok)
	}
	p.next()

	body, end := p.parseLoopBody(tok)
	p.link(idx, end)
	return &ast.Times{ASTBase: p.baseFrom(count.Span()), Count: count, Body: body}
}

// parseFor parses a counting loop.
//
// for = [var ('を' | 'で')] from 'から' to 'まで' [step 'ずつ'] '繰り返す' block
func (p *Parser) parseFor() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	to := p.popJosi("まで")
	from := p.popJosi("から")
	step := p.popJosi("ずつ")
	v := p.popJosi("を", "で")
	p.next()

	if from == nil || to == nil {
		p.errorOn(tok, "missingLoopVar", nil)
		if from == nil {
			from = p.nop(tok)
		}
		if to == nil {
			to = p.nop(tok)
		}
	}

	loop := &ast.For{From: from, To: to, Step: step, VarIndex: -1}
	switch tok.FuncKind {
	case TOK_ZOU_KURIKAESU:
		loop.Direction = ast.ForUp
	case TOK_GEN_KURIKAESU:
		loop.Direction = ast.ForDown
	}

	start := from.Span()
	if w, ok := v.(*ast.Word); ok {
		loop.Var, loop.VarIndex = w.Name, w.TokenIndex
		p.declareValue(w.TokenIndex, depm.ThingVar)
		start = w.Span()
	} else if v != nil {
		p.diags.Error(v.Span(), "missingLoopVar", nil)
	}

	body, end := p.parseLoopBody(tok)
	p.link(idx, end)
	loop.Body = body
	loop.ASTBase = p.baseFrom(start)
	return loop
}

// parseForeach parses a loop over the elements of a value.
//
// foreach = [var 'で'] value 'を' '反復' block
func (p *Parser) parseForeach() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	target := p.popJosi("を")
	if target == nil {
		target = p.popAny()
	}
	if target == nil {
		target = p.sore(tok)
	}
	v := p.popJosi("で")
	p.next()

	loop := &ast.Foreach{Target: target, VarIndex: -1}
	start := target.Span()
	if w, ok := v.(*ast.Word); ok {
		loop.Var, loop.VarIndex = w.Name, w.TokenIndex
		p.declareValue(w.TokenIndex, depm.ThingVar)
		start = w.Span()
	}

	body, end := p.parseLoopBody(tok)
	p.link(idx, end)
	loop.Body = body
	loop.ASTBase = p.baseFrom(start)
	return loop
}

// parseAtoHantei parses a loop whose condition is checked after the body.
//
// ato_hantei = '後判定' block sentence '間'
func (p *Parser) parseAtoHantei() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	p.next()

	body, end := p.parseLoopBody(tok)
	aux := []int{end}

	items := p.collect(TOK_AIDA)
	if p.got(TOK_AIDA) {
		aux = append(aux, p.pos)
		p.next()
	}

	cond := p.condition(items, tok)
	p.link(idx, aux...)
	return &ast.AtoHantei{ASTBase: p.baseFrom(tok.Span()), Body: body, Cond: cond}
}

// -----------------------------------------------------------------------------

// parseTry parses error handling.
//
// try_stmt = 'エラー監視' block ['エラーならば' block]
func (p *Parser) parseTry() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	p.next()

	mode := p.blockMode(false)
	body, end := p.parseBody(mode, tok, TOK_ERROR_NARABA)
	aux := []int{end}

	try := &ast.Try{Body: body}
	catchAhead := p.got(TOK_ERROR_NARABA)
	if mode == modeIndent {
		catchAhead = catchAhead && p.isLineStart() && p.tok.Indent.Level == tok.Indent.Level
	}

	if catchAhead {
		catchIdx := p.pos
		aux = append(aux, catchIdx)
		p.next()

		catchMode := p.blockMode(mode == modeIndent)
		catch, catchEnd := p.parseBody(catchMode, &p.tokens[catchIdx])
		if mode == modeKeyword && catchMode == modeSingle {
			catchEnd = p.closePending()
		}

		aux = append(aux, catchEnd)
		try.Catch = catch
	}

	p.link(idx, aux...)
	try.ASTBase = p.baseFrom(tok.Span())
	return try
}

// parseSpeedMode parses `実行速度優先` and `パフォーマンスモニタ適用`.
//
// speed_mode = [options 'で'] ('実行速度優先' | 'パフォーマンスモニタ適用') block
func (p *Parser) parseSpeedMode() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	options := p.popJosi("で")
	p.next()

	body, end := p.parseBody(p.blockMode(false), tok)
	p.link(idx, end)

	start := tok.Span()
	if options != nil {
		start = options.Span()
	}

	if tok.FuncKind == TOK_PERFORMANCE_MONITOR {
		return &ast.PerformanceMonitor{ASTBase: p.baseFrom(start), Options: options, Body: body}
	}

	return &ast.SpeedMode{ASTBase: p.baseFrom(start), Options: options, Body: body}
}

// parseSequential parses `逐次実行`, whose body is an ordinary block.
//
// sequential = '逐次実行' block
func (p *Parser) parseSequential() ast.ASTNode {
	idx := p.pos
	tok := p.tok
	p.next()

	body, end := p.parseBody(p.blockMode(false), tok)
	p.link(idx, end)
	return body
}
