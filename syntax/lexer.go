package syntax

import (
	"nakofront/common"
	"nakofront/report"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// cursor is a position in the source text.  Lexers copy cursors by value when
// they re-enter themselves to scan an interpolated expression.
type cursor struct {
	pos, line, col int
}

// lexer is responsible for tokenizing source text.  Each lexer scans the text
// between its cursor and its limit.
type lexer struct {
	src   []rune
	limit int

	// cur is the current position, start is the position the current token
	// began at, and prev is the position before the last advance.
	cur, start, prev cursor

	// The indentation of the current line.
	indent Indent

	// Whether or not no token other than indentation has been read on the
	// current line.
	lineHead bool

	// Whether or not the lexer scans an interpolated expression.
	nested bool

	// Token suffix state filled while the current token is scanned.
	resEndCol    int
	josi         string
	josiStartCol int
	unit         string

	tokens      []Token
	lineLengths *[]int
	diags       *report.Collector
}

// Tokenize converts source text into raw tokens.  It also returns the length of
// every line in runes excluding the line terminator.  Tokenize never fails:
// text matching no rule becomes CHARACTER tokens.
func Tokenize(text string, diags *report.Collector) ([]Token, []int) {
	lineLengths := []int{}
	l := &lexer{
		src:         []rune(text),
		lineLengths: &lineLengths,
		diags:       diags,
	}
	l.limit = len(l.src)

	l.run()

	// record the last line which has no terminator
	lineLengths = append(lineLengths, l.cur.col)

	return l.tokens, lineLengths
}

// run scans tokens until the lexer's limit is reached.
func (l *lexer) run() {
	for l.cur.pos < l.limit {
		if l.cur.col == 0 && !l.nested {
			l.lexIndent()
			if l.cur.pos >= l.limit {
				break
			}
		}

		l.mark()
		if !l.applyRules() {
			c := l.peek()
			l.advance()
			l.diags.Error(l.getSpan(), "invalidChar", report.Args{"char": string(c)})
			l.makeToken(TOK_CHARACTER, string(c))
		}
	}
}

// applyRules tries every rule in priority order and scans a token with the
// first rule that matches.  It returns false if no rule matches.
func (l *lexer) applyRules() bool {
	for _, r := range rules {
		n := 0
		if r.match != nil {
			n = r.match(l)
		} else {
			for _, p := range rulePatterns[r] {
				if l.hasPrefix(p) {
					n = len(p)
					break
				}
			}
		}

		if n == 0 {
			continue
		}

		switch r.scan {
		case scanNone:
			l.eatN(n)
			if r.josi {
				l.readJosi()
			}
			l.makeToken(r.kind, l.coreText())
		case scanSpace:
			l.eatN(n)
			l.makeToken(TOK_SPACE, l.coreText())
		case scanLineComment:
			l.eatN(n)
			l.lexLineComment()
		case scanRangeComment:
			l.eatN(n)
			l.lexRangeComment(r.close)
		case scanNumber:
			l.lexNumber()
		case scanString, scanTemplate:
			l.eatN(n)
			l.lexString(r.kind, r.close, r.scan == scanTemplate)
		case scanBracketWord:
			l.eatN(n)
			l.lexBracketWord(r.close)
		case scanWord:
			l.lexWord()
		}

		return true
	}

	return false
}

// -----------------------------------------------------------------------------

// lexIndent reads the indentation at the start of a line.
func (l *lexer) lexIndent() {
	l.mark()
	l.lineHead = true

	level := 0
	for l.cur.pos < l.limit {
		next, ok := indentLevel(level, l.peek())
		if !ok {
			break
		}

		level = next
		l.advance()
	}

	text := l.coreText()
	l.indent = Indent{Text: text, Len: l.cur.pos - l.start.pos, Level: level}

	if text != "" {
		l.makeToken(TOK_SPACE, text)
		l.lineHead = true
	}
}

// indentLevel returns the indentation level after an indentation rune.  Tabs
// round up to the next multiple of 8 and full-width spaces count twice.
func indentLevel(level int, c rune) (int, bool) {
	switch c {
	case '\t':
		return (level/8 + 1) * 8, true
	case '　':
		return level + 2, true
	case ' ', '・', '⎿', '└', '｜':
		return level + 1, true
	default:
		return level, false
	}
}

// lexLineComment lexes the remainder of a line comment.
func (l *lexer) lexLineComment() {
	for l.cur.pos < l.limit {
		if c := l.peek(); c == '\n' || (c == '\r' && l.peekAt(1) == '\n') {
			break
		}

		l.advance()
	}

	l.makeToken(TOK_LINE_COMMENT, l.coreText())
}

// lexRangeComment lexes the remainder of a block comment.  An unclosed block
// comment only spans its opening tag and scanning resumes right after it.
func (l *lexer) lexRangeComment(close string) {
	closeRunes := []rune(close)

	if end := l.indexOf(closeRunes); end >= 0 {
		l.eatN(end + len(closeRunes))
	} else {
		l.diags.Error(l.getSpan(), "unclosedBlockComment", nil)
	}

	l.makeToken(TOK_RANGE_COMMENT, l.coreText())
}

// lexBracketWord lexes a word written between brackets, eg. `【名前】`.
func (l *lexer) lexBracketWord(close string) {
	closeRunes := []rune(close)
	valueStart := l.cur.pos

	for l.cur.pos < l.limit && !l.hasPrefix(closeRunes) {
		l.advance()
	}

	value := string(l.src[valueStart:l.cur.pos])
	if l.cur.pos >= l.limit {
		l.diags.Error(l.getSpan(), "unclosedString", report.Args{"close": close})
	} else {
		l.eatN(len(closeRunes))
	}

	l.readJosi()
	l.makeToken(TOK_WORD, value)
}

// -----------------------------------------------------------------------------

// lexNumber lexes a numeric literal in one of its dialects and the unit,
// particle, and separator that may follow it.
func (l *lexer) lexNumber() {
	var sb strings.Builder
	base := 10

	if narrow(l.peek()) == '0' {
		switch narrow(l.peekAt(1)) {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}

		// a prefix needs at least one digit after it
		if base != 10 && !isBaseDigit(narrow(l.peekAt(2)), base) {
			base = 10
		}
	}

	isFloat := false
	if base != 10 {
		l.eatN(2)
		for l.cur.pos < l.limit {
			c := narrow(l.peek())
			if c == '_' && isBaseDigit(narrow(l.peekAt(1)), base) {
				l.advance()
				continue
			} else if !isBaseDigit(c, base) {
				break
			}

			sb.WriteRune(c)
			l.advance()
		}
	} else {
		l.readDigits(&sb)

		if c := narrow(l.peek()); c == '.' && isDigit(narrow(l.peekAt(1))) {
			isFloat = true
			sb.WriteRune('.')
			l.advance()
			l.readDigits(&sb)
		}

		if c := narrow(l.peek()); c == 'e' || c == 'E' {
			next := narrow(l.peekAt(1))
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(narrow(l.peekAt(2)))) {
				isFloat = true
				sb.WriteRune('e')
				l.advance()
				if next == '+' || next == '-' {
					sb.WriteRune(next)
					l.advance()
				}
				l.readDigits(&sb)
			}
		}
	}

	digits := sb.String()
	var num float64
	if base != 10 {
		n, _ := strconv.ParseUint(digits, base, 64)
		num = float64(n)
		digits = strconv.FormatUint(n, 10)
	} else if isFloat {
		num, _ = strconv.ParseFloat(digits, 64)
	} else {
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			num, _ = strconv.ParseFloat(digits, 64)
		} else {
			num = float64(n)
		}
	}

	kind := TOK_NUMBER
	value := digits
	l.resEndCol = l.cur.col

	// CSS units turn the number into a string
	if unit := l.matchCSSUnit(); unit != "" {
		l.eatN(len(unit))
		kind = TOK_STRING
		value = digits + unit
	} else if unit := l.matchUnitWord(); unit != "" {
		l.eatN(len([]rune(unit)))
		l.unit = unit
	}

	l.readJosi()
	l.makeToken(kind, value)
	l.tokens[len(l.tokens)-1].Num = num
}

// readDigits reads decimal digits and `_` separators.
func (l *lexer) readDigits(sb *strings.Builder) {
	for l.cur.pos < l.limit {
		c := narrow(l.peek())
		if c == '_' && isDigit(narrow(l.peekAt(1))) {
			l.advance()
			continue
		} else if !isDigit(c) {
			break
		}

		sb.WriteRune(c)
		l.advance()
	}
}

// matchCSSUnit returns the CSS unit directly after the cursor or "".
func (l *lexer) matchCSSUnit() string {
	for _, unit := range cssUnits {
		n := len(unit)
		matched := true
		for i := 0; i < n; i++ {
			if narrow(l.peekAt(i)) != rune(unit[i]) {
				matched = false
				break
			}
		}

		if matched {
			if next := narrow(l.peekAt(n)); !isASCIILetter(next) && !isDigit(next) {
				return unit
			}
		}
	}

	return ""
}

// matchUnitWord returns the unit word directly after the cursor or "".  The
// percent sign is only a unit when it can not be the modulo operator.
func (l *lexer) matchUnitWord() string {
	for _, unit := range unitWords {
		if l.hasPrefix([]rune(unit)) {
			return unit
		}
	}

	if c := l.peek(); c == '%' || c == '％' {
		next := l.peekAt(1)
		if next == -1 || next == '\n' || next == '\r' || common.IsHiragana(next) || strings.ContainsRune("、。,)）]］}｝", next) {
			return string(c)
		}
	}

	return ""
}

// -----------------------------------------------------------------------------

// readJosi reads the particle that may follow a token's core text along with a
// list separator directly after the particle.  Removed particles are consumed
// but leave the particle empty.
func (l *lexer) readJosi() {
	if l.resEndCol < 0 {
		l.resEndCol = l.cur.col
	}

	startCol := l.cur.col
	n, josi := l.matchJosi()
	if n == 0 {
		return
	}

	l.eatN(n)
	if josi != "" {
		l.josi = josi
		l.josiStartCol = startCol

		switch l.peek() {
		case '、', ',', '，':
			l.advance()
		}
	}
}

// matchJosi matches a particle at the cursor.  It returns the number of runes
// the particle occupies and the particle itself; the particle is empty for
// removed particles.
func (l *lexer) matchJosi() (int, string) {
	if !common.IsHiragana(l.peek()) {
		return 0, ""
	}

	// `もの` in front of a particle is dropped
	if l.hasPrefixAt(0, []rune("もの")) {
		if entry, ok := l.josiEntryAt(2); ok {
			if entry.kind == josiRemoved {
				return 2 + entry.chars, ""
			}

			return 2 + entry.chars, string(entry.text)
		}
	}

	if entry, ok := l.josiEntryAt(0); ok {
		if entry.kind == josiRemoved {
			return entry.chars, ""
		}

		return entry.chars, string(entry.text)
	}

	return 0, ""
}

// josiEntryAt returns the longest particle starting offset runes after the
// cursor.
func (l *lexer) josiEntryAt(offset int) (josiEntry, bool) {
	for _, entry := range josiTable {
		if l.hasPrefixAt(offset, entry.text) {
			return entry, true
		}
	}

	return josiEntry{}, false
}

// -----------------------------------------------------------------------------

// lexWord lexes a bare word.  A particle can start at every hiragana after the
// first rune of the word.
func (l *lexer) lexWord() {
	l.advance()

	for l.cur.pos < l.limit {
		c := l.peek()
		if !isWordChar(c) {
			break
		}

		if common.IsHiragana(c) {
			if n, _ := l.matchJosi(); n > 0 {
				break
			}
		}

		l.advance()
	}

	word := []rune(string(l.src[l.start.pos:l.cur.pos]))

	// a word ending in hiragana and `間` gives `間` back
	if n := len(word); n > 1 && word[n-1] == '間' && common.IsHiragana(word[n-2]) {
		l.rewind(l.prev)
		word = word[:n-1]
	}

	value := string(word)
	l.readJosi()

	kind := TOK_WORD
	if rk, ok := reservedWords[common.TrimOkurigana(value)]; ok {
		kind = rk
	}

	l.makeToken(kind, value)
}

// -----------------------------------------------------------------------------

// mark marks the beginning of a token.
func (l *lexer) mark() {
	l.start = l.cur
	l.resEndCol = -1
	l.josi = ""
	l.josiStartCol = -1
	l.unit = ""
}

// advance moves the cursor forward one rune.
func (l *lexer) advance() {
	c := l.src[l.cur.pos]
	l.prev = l.cur
	l.cur.pos++

	switch {
	case c == '\n':
		*l.lineLengths = append(*l.lineLengths, l.cur.col)
		l.cur.line++
		l.cur.col = 0
	case c == '\r' && l.cur.pos < len(l.src) && l.src[l.cur.pos] == '\n':
		// part of the line terminator
	default:
		l.cur.col++
	}
}

// eatN advances the cursor n runes.
func (l *lexer) eatN(n int) {
	for i := 0; i < n && l.cur.pos < l.limit; i++ {
		l.advance()
	}
}

// rewind moves the cursor back to a position on the current line.  It must
// not be used to move back across a line terminator.
func (l *lexer) rewind(c cursor) {
	l.cur = c
}

// peek returns the rune at the cursor or -1 at the lexer's limit.
func (l *lexer) peek() rune {
	return l.peekAt(0)
}

// peekAt returns the rune offset runes after the cursor or -1.
func (l *lexer) peekAt(offset int) rune {
	if p := l.cur.pos + offset; p < l.limit {
		return l.src[p]
	}

	return -1
}

// hasPrefix returns whether the text at the cursor starts with rs.
func (l *lexer) hasPrefix(rs []rune) bool {
	return l.hasPrefixAt(0, rs)
}

// hasPrefixAt returns whether the text offset runes after the cursor starts
// with rs.
func (l *lexer) hasPrefixAt(offset int, rs []rune) bool {
	p := l.cur.pos + offset
	if p+len(rs) > l.limit {
		return false
	}

	for i, r := range rs {
		if l.src[p+i] != r {
			return false
		}
	}

	return true
}

// indexOf returns the offset of the first occurrence of rs after the cursor or
// -1.  It does not move the cursor.
func (l *lexer) indexOf(rs []rune) int {
	for offset := 0; l.cur.pos+offset+len(rs) <= l.limit; offset++ {
		if l.hasPrefixAt(offset, rs) {
			return offset
		}
	}

	return -1
}

// coreText returns the text scanned since the token was marked.
func (l *lexer) coreText() string {
	return string(l.src[l.start.pos:l.cur.pos])
}

// getSpan returns the span from the token's mark to the cursor.
func (l *lexer) getSpan() *report.TextSpan {
	return report.NewSpan(l.start.line, l.start.col, l.cur.line, l.cur.col)
}

// makeToken appends a token spanning from the mark to the cursor.
func (l *lexer) makeToken(kind Kind, value string) {
	tok := Token{
		Kind:         kind,
		FixKind:      kind,
		FuncKind:     kind,
		ParseKind:    kind,
		Group:        GroupOf(kind),
		StartLine:    l.start.line,
		StartCol:     l.start.col,
		EndLine:      l.cur.line,
		EndCol:       l.cur.col,
		ResEndCol:    l.resEndCol,
		Text:         l.coreText(),
		Value:        value,
		Josi:         l.josi,
		JosiStartCol: l.josiStartCol,
		Unit:         l.unit,
		Indent:       l.indent,
		LinkPrimary:  -1,
	}

	// line terminators end on their own line
	if kind == TOK_EOL || kind == TOK_LINE_CONTINUE {
		tok.EndLine = tok.StartLine
		tok.EndCol = tok.StartCol + len([]rune(tok.Text))
	}

	if tok.ResEndCol < 0 {
		tok.ResEndCol = tok.EndCol
	}

	if kind == TOK_WORD || kind == TOK_DIRECTIVE || (kind >= TOK_KOKOKARA && kind <= TOK_TORIKOMU) {
		tok.Key = common.TrimOkurigana(value)
	}

	if kind != TOK_SPACE {
		l.lineHead = false
	}

	l.tokens = append(l.tokens, tok)
}

// -----------------------------------------------------------------------------

// narrow folds a full-width rune into its half-width form.
func narrow(r rune) rune {
	if r < 0 {
		return r
	}

	if n := width.LookupRune(r).Narrow(); n != 0 {
		return n
	}

	return r
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '　' || r == '\r' || r == '\v' || r == '\f'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isBaseDigit(r rune, base int) bool {
	switch base {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 16:
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	default:
		return isDigit(r)
	}
}

// isWordChar returns whether r can be part of a bare word.
func isWordChar(r rune) bool {
	if r < 0 {
		return false
	}

	n := narrow(r)
	if n == '_' || isASCIILetter(n) || isDigit(n) {
		return true
	}

	return common.IsHiragana(r) || common.IsKatakana(r) || common.IsKanji(r) || (unicode.IsLetter(r) && r > 0x7f && !unicode.IsPunct(r))
}
