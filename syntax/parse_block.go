package syntax

import (
	"nakofront/ast"
	"nakofront/report"
)

// Enumeration of block delimiting modes.
const (
	// The block is the rest of the header's line.
	modeSingle = iota

	// The block is the following lines indented deeper than the header.
	modeIndent

	// The block runs until the matching `ここまで`.
	modeKeyword
)

// blockMode determines how the block following a header is delimited and
// moves past the delimiter.  If inherit is set, a block opened at the end of a
// line is delimited by indentation like the block it continues.
//
// block_open = ':' 'EOL' | ':' | 'ここから' | 'EOL' | ε
func (p *Parser) blockMode(inherit bool) int {
	p.skipCommas()

	switch {
	case p.got(TOK_COLON):
		p.next()
		if p.gotEnd() {
			return modeIndent
		}

		return modeSingle
	case p.got(TOK_KOKOKARA):
		p.next()
		return modeKeyword
	case p.gotEnd():
		if inherit || p.opts.IndentSemantics {
			return modeIndent
		}

		return modeKeyword
	default:
		return modeSingle
	}
}

// parseBody parses a block in the given mode.  The header is the token that
// opened the block: its indentation bounds indented blocks and its text names
// the block in diagnostics.  Keyword and single line blocks also end before
// any of the stop kinds.  It returns the block and the index of the closing
// `ここまで` or -1 if there is none.
func (p *Parser) parseBody(mode int, header *Token, stops ...Kind) (*ast.Block, int) {
	outer := p.stack
	p.stack = nil
	defer func() {
		p.stack = outer
	}()

	start := p.tok.Span()
	var stmts []ast.ASTNode
	end := -1

	switch mode {
	case modeSingle:
		stmts = p.parseLine(nil, stops...)
	case modeIndent:
		stmts = p.parseIndentBody(header.Indent.Level)
	case modeKeyword:
		stmts, end = p.parseKeywordBody(header, stops...)
	}

	block := &ast.Block{Stmts: stmts}
	if len(stmts) > 0 {
		block.ASTBase = ast.NewASTBaseOver(stmts[0].Span(), stmts[len(stmts)-1].Span())
	} else {
		block.ASTBase = ast.NewASTBaseOn(start)
	}

	return block, end
}

// parseIndentBody parses the lines indented deeper than level.
//
// indent_body = {'INDENT' line 'EOL'}
func (p *Parser) parseIndentBody(level int) []ast.ASTNode {
	var stmts []ast.ASTNode

	for {
		p.skipEOLs()
		if p.got(TOK_EOF) {
			break
		}

		if p.tok.Indent.Level <= level {
			// a `ここまで` closing an indented block is an error but it is
			// still consumed, unless a keyword block at the same level is
			// waiting for it
			if p.got(TOK_KOKOMADE) && p.tok.Indent.Level == level && !p.keywordBlockAt(level) {
				p.diags.Error(p.tok.Span(), "kokomadeInIndentMode", nil)
				p.next()
				p.skipCommas()
			}

			break
		}

		if p.got(TOK_KOKOMADE) {
			p.diags.Error(p.tok.Span(), "kokomadeInIndentMode", nil)
			p.next()
			continue
		}

		stmts = p.parseLine(stmts)
	}

	return stmts
}

// parseKeywordBody parses lines until the closing `ここまで` or a stop kind.
//
// keyword_body = {line 'EOL'} 'ここまで'
func (p *Parser) parseKeywordBody(header *Token, stops ...Kind) ([]ast.ASTNode, int) {
	p.keywordLevels = append(p.keywordLevels, header.Indent.Level)
	defer func() {
		p.keywordLevels = p.keywordLevels[:len(p.keywordLevels)-1]
	}()

	quiet := p.quietKokomade
	p.quietKokomade = false

	var stmts []ast.ASTNode
	for {
		p.skipEOLs()

		switch {
		case p.got(TOK_EOF):
			if !quiet {
				p.diags.Error(header.Span(), "missingKokomade", report.Args{"name": header.Text})
			}
			return stmts, -1
		case p.got(TOK_KOKOMADE):
			end := p.pos
			p.next()
			p.skipCommas()
			return stmts, end
		case p.gotOneOf(stops...):
			return stmts, -1
		}

		stmts = p.parseLine(stmts, stops...)
	}
}

// keywordBlockAt returns whether the innermost enclosing keyword block was
// opened at the given indentation level.
func (p *Parser) keywordBlockAt(level int) bool {
	n := len(p.keywordLevels)
	return n > 0 && p.keywordLevels[n-1] == level
}

// parseLine parses the statements of a single line and appends them to stmts.
// It leaves the parser on the line's EOL, on a `ここまで` or stop kind, or on
// the first token of a later line if a block statement consumed the line end.
//
// line = {stmt [',']}
func (p *Parser) parseLine(stmts []ast.ASTNode, stops ...Kind) []ast.ASTNode {
	for !p.gotEnd() && !p.got(TOK_KOKOMADE) && !p.gotOneOf(stops...) {
		start := p.pos
		if stmt := p.parseStmtSafe(); stmt != nil {
			stmts = append(stmts, stmt)
		}

		if p.pos == start && !p.gotEnd() {
			p.reject()
			p.next()
		}

		if p.isLineStart() {
			break
		}
	}

	p.flushStack()
	return stmts
}

// parseStmtSafe parses a statement and converts internal errors into
// diagnostics so that one malformed statement cannot stop the parser.
func (p *Parser) parseStmtSafe() (stmt ast.ASTNode) {
	defer report.CatchInternal(p.diags)
	return p.parseStmt()
}

// parseTopLevel parses the statements of the module.
//
// module = {line 'EOL'} 'EOF'
func (p *Parser) parseTopLevel() *ast.Block {
	var stmts []ast.ASTNode

	for !p.got(TOK_EOF) {
		if p.got(TOK_EOL) {
			p.next()
			continue
		}

		if p.got(TOK_KOKOMADE) {
			if p.opts.IndentSemantics {
				p.diags.Error(p.tok.Span(), "kokomadeInIndentMode", nil)
			} else {
				p.diags.Error(p.tok.Span(), "unexpectedKokomade", nil)
			}

			p.next()
			continue
		}

		stmts = p.parseLine(stmts)
	}

	block := &ast.Block{Stmts: stmts}
	if len(stmts) > 0 {
		block.ASTBase = ast.NewASTBaseOver(stmts[0].Span(), stmts[len(stmts)-1].Span())
	} else {
		block.ASTBase = ast.NewASTBaseOn(p.tok.Span())
	}

	return block
}
