package syntax

import (
	"nakofront/report"
	"strings"
)

// lexString lexes the remainder of a quoted string.  Template strings are split
// into STRING_EX pieces around each interpolated expression, which is scanned
// by a nested lexer and wrapped in STRING_INJECT_START and STRING_INJECT_END
// tokens.
func (l *lexer) lexString(kind Kind, close string, template bool) {
	closeRunes := []rune(close)

	if !template {
		var value string
		if end := l.indexOf(closeRunes); end >= 0 {
			value = string(l.src[l.cur.pos : l.cur.pos+end])
			l.eatN(end + len(closeRunes))
		} else {
			value = string(l.src[l.cur.pos:l.limit])
			l.eatN(l.limit - l.cur.pos)
			l.diags.Error(l.getSpan(), "unclosedString", report.Args{"close": close})
		}

		l.readJosi()
		l.makeToken(kind, value)
		return
	}

	var sb strings.Builder
	reportedInject := false
	for l.cur.pos < l.limit {
		if l.hasPrefix(closeRunes) {
			l.eatN(len(closeRunes))
			l.readJosi()
			l.makeToken(kind, sb.String())
			return
		}

		c := l.peek()
		if c == '{' || c == '｛' {
			end := l.findInjectEnd(closeRunes)
			if end < 0 {
				if !reportedInject {
					l.diags.Error(report.NewSpan(l.cur.line, l.cur.col, l.cur.line, l.cur.col+1), "unclosedInterpolation", report.Args{"open": string(c)})
					reportedInject = true
				}

				sb.WriteRune(c)
				l.advance()
				continue
			}

			l.makeToken(kind, sb.String())
			sb.Reset()
			l.lexInjection(end)
			l.mark()
			continue
		}

		sb.WriteRune(c)
		l.advance()
	}

	l.diags.Error(l.getSpan(), "unclosedString", report.Args{"close": close})
	l.makeToken(kind, sb.String())
}

// findInjectEnd returns the source position of the brace closing the
// interpolation at the cursor or -1.  An interpolation never spans a line
// terminator or the string's closing quote.
func (l *lexer) findInjectEnd(closeRunes []rune) int {
	for offset := 1; l.cur.pos+offset < l.limit; offset++ {
		if l.hasPrefixAt(offset, closeRunes) {
			return -1
		}

		switch l.peekAt(offset) {
		case '}', '｝':
			return l.cur.pos + offset
		case '\n', '\r':
			return -1
		}
	}

	return -1
}

// lexInjection lexes an interpolated expression whose closing brace is at the
// given position.  The nested lexer continues from the outer lexer's cursor
// and hands it back once it reaches the brace.
func (l *lexer) lexInjection(end int) {
	l.mark()
	open := l.peek()
	l.advance()
	l.makeToken(TOK_STRING_INJECT_START, string(open))

	sub := &lexer{
		src:         l.src,
		limit:       end,
		cur:         l.cur,
		prev:        l.prev,
		indent:      l.indent,
		nested:      true,
		lineLengths: l.lineLengths,
		diags:       l.diags,
	}
	sub.run()

	l.tokens = append(l.tokens, sub.tokens...)
	l.cur = sub.cur
	l.prev = sub.prev

	l.mark()
	closeBrace := l.peek()
	l.advance()
	l.makeToken(TOK_STRING_INJECT_END, string(closeBrace))
}
