package report

import "fmt"

// TextSpan represents a range or "span" of source text.  Line and column
// numbers are zero-indexed and columns are counted in runes.  The starting
// position is the first rune of the span; the ending position is one past the
// last rune of the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpan creates a span from the given start and end positions.
func NewSpan(startLine, startCol, endLine, endCol int) *TextSpan {
	return &TextSpan{
		StartLine: startLine,
		StartCol:  startCol,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// Contains returns whether the given position lies inside the span.
func (ts *TextSpan) Contains(line, col int) bool {
	if line < ts.StartLine || line > ts.EndLine {
		return false
	}

	if line == ts.StartLine && col < ts.StartCol {
		return false
	}

	if line == ts.EndLine && col >= ts.EndCol {
		return false
	}

	return true
}

func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", ts.StartLine+1, ts.StartCol+1, ts.EndLine+1, ts.EndCol+1)
}
