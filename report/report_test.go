package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLanguages(t *testing.T) {
	d := &Diagnostic{MessageID: "tooFewArgs", Args: Args{"name": "足す", "count": "2"}}

	assert.Equal(t, "関数「足す」の引数が2個足りません。", d.Message(LangJa))
	assert.Equal(t, "function `足す` is missing 2 arguments", d.Message(LangEn))
	assert.Equal(t, d.Message(LangJa), d.Message("fr"))
}

func TestMessageFallbacks(t *testing.T) {
	missing := &Diagnostic{MessageID: "noSuchMessage", Args: Args{"b": "2", "a": "1"}}
	assert.Equal(t, "noSuchMessage(a=1, b=2)", missing.Message(LangEn))

	raw := &Diagnostic{Raw: "plain text"}
	assert.Equal(t, "plain text", raw.Message(LangJa))

	noArgs := &Diagnostic{MessageID: "unclosedBlockComment"}
	assert.Equal(t, "unclosed block comment", noArgs.Message(LangEn))
}

func TestCatalogsAgree(t *testing.T) {
	require.Len(t, catalogs[LangEn], len(catalogs[LangJa]))
	for id := range catalogs[LangJa] {
		assert.Contains(t, catalogs[LangEn], id)
		assert.True(t, HasMessage(id))
	}

	assert.False(t, HasMessage("noSuchMessage"))
}

func TestDiagnosticString(t *testing.T) {
	d := &Diagnostic{
		MessageID: "invalidChar",
		Args:      Args{"char": "$"},
		Severity:  SeverityError,
		Span:      NewSpan(0, 0, 0, 1),
	}
	assert.Equal(t, "1:1-1:2: error: invalid character `$`", d.String())

	d.Span = nil
	d.Severity = SeverityHint
	assert.Equal(t, "hint: invalid character `$`", d.String())
}

// -----------------------------------------------------------------------------

func TestCollectorCap(t *testing.T) {
	c := NewCollector("tag", 2)
	c.Error(nil, "unknownWord", Args{"name": "A"})
	c.Warn(nil, "redefinedFunc", Args{"name": "B"})
	c.Error(nil, "unknownWord", Args{"name": "C"})

	assert.Len(t, c.Diags, 2)
	assert.Equal(t, 1, c.Dropped)
	assert.Equal(t, 1, c.Count(SeverityError))
	assert.Equal(t, 1, c.Count(SeverityWarn))
	assert.True(t, c.HasErrors())
	assert.Len(t, c.WithID("unknownWord"), 1)

	c.Reset()
	assert.Empty(t, c.Diags)
	assert.Zero(t, c.Dropped)
	assert.False(t, c.HasErrors())
}

func TestCollectorUncapped(t *testing.T) {
	c := NewCollector("lex", 0)
	for i := 0; i < DefaultMaxDiagnostics+5; i++ {
		c.Hint(nil, "unexpectedEOL", nil)
	}

	assert.Len(t, c.Diags, DefaultMaxDiagnostics+5)
	assert.False(t, c.HasErrors())
}

func TestCollectorRaw(t *testing.T) {
	c := NewCollector("parse", 0)
	c.Raw(SeverityInfo, nil, "%d statements", 3)

	require.Len(t, c.Diags, 1)
	assert.Equal(t, "3 statements", c.Diags[0].Message(LangJa))
	assert.Equal(t, SeverityInfo, c.Diags[0].Severity)
}

func TestCatchInternal(t *testing.T) {
	c := NewCollector("parse", 0)

	func() {
		defer CatchInternal(c)
		panic(Raise(NewSpan(1, 0, 1, 2), "bad node %s", "Let"))
	}()

	require.Len(t, c.Diags, 1)
	assert.Equal(t, "internal", c.Diags[0].MessageID)
	assert.Equal(t, "bad node Let", c.Diags[0].Args["detail"])
	assert.Equal(t, 1, c.Diags[0].Span.StartLine)

	assert.Panics(t, func() {
		defer CatchInternal(c)
		panic("other")
	})
}

// -----------------------------------------------------------------------------

func TestSpanContains(t *testing.T) {
	span := NewSpan(1, 2, 2, 1)

	assert.False(t, span.Contains(0, 5))
	assert.False(t, span.Contains(1, 1))
	assert.True(t, span.Contains(1, 2))
	assert.True(t, span.Contains(1, 40))
	assert.True(t, span.Contains(2, 0))
	assert.False(t, span.Contains(2, 1))
	assert.False(t, span.Contains(3, 0))
}

func TestNewSpanOver(t *testing.T) {
	a, b := NewSpan(0, 1, 0, 2), NewSpan(3, 0, 3, 4)

	assert.Equal(t, NewSpan(0, 1, 3, 4), NewSpanOver(a, b))
	assert.Same(t, b, NewSpanOver(nil, b))
	assert.Same(t, a, NewSpanOver(a, nil))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, displayWidth([]rune("abc")))
	assert.Equal(t, 6, displayWidth([]rune("表示を")))
	assert.Equal(t, 4, displayWidth([]rune("\t")))
	assert.Equal(t, 2, displayWidth([]rune("Ａ")))
	assert.Equal(t, 1, displayWidth([]rune("ｱ")))
}

func TestLogLevelFromName(t *testing.T) {
	assert.Equal(t, LogLevelSilent, LogLevelFromName("silent"))
	assert.Equal(t, LogLevelError, LogLevelFromName("error"))
	assert.Equal(t, LogLevelWarn, LogLevelFromName("warning"))
	assert.Equal(t, LogLevelVerbose, LogLevelFromName("loud"))
}
