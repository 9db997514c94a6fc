package report

import (
	"fmt"
	"sort"
	"strings"
)

// Severity is the severity of a diagnostic.  The values mirror the four
// severities editor tooling understands.
type Severity int

// Enumeration of diagnostic severities.
const (
	SeverityError Severity = iota
	SeverityWarn
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarn:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "hint"
	}
}

// Args are the structured arguments of a templated diagnostic message.
type Args map[string]string

// Diagnostic is a single message produced by one of the analysis stages.  It
// is either templated (MessageID + Args) or raw (Raw is non-empty).
type Diagnostic struct {
	// The message id in the message catalog.  Empty for raw messages.
	MessageID string

	// The arguments substituted into the templated message.
	Args Args

	// The preformatted message used when there is no message id.
	Raw string

	// The severity of the diagnostic.
	Severity Severity

	// The span the diagnostic applies to.  This may be nil.
	Span *TextSpan
}

// Message renders the diagnostic in the given language.  Unknown languages
// fall back to Japanese.
func (d *Diagnostic) Message(lang string) string {
	if d.MessageID == "" {
		return d.Raw
	}

	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs[LangJa]
	}

	tmpl, ok := catalog[d.MessageID]
	if !ok {
		return d.MessageID + formatArgs(d.Args)
	}

	if len(d.Args) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(d.Args)*2)
	for _, key := range sortedKeys(d.Args) {
		pairs = append(pairs, "{"+key+"}", d.Args[key])
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}

func (d *Diagnostic) String() string {
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message(LangEn))
	}

	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message(LangEn))
}

// formatArgs renders arguments for a message id missing from the catalog.
func formatArgs(args Args) string {
	if len(args) == 0 {
		return ""
	}

	parts := make([]string, 0, len(args))
	for _, key := range sortedKeys(args) {
		parts = append(parts, key+"="+args[key])
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

func sortedKeys(args Args) []string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

// -----------------------------------------------------------------------------

// DefaultMaxDiagnostics is the collector cap used when none is configured.
const DefaultMaxDiagnostics = 100

// Collector is an append-only, capped list of diagnostics for one analysis
// stage.  Once the cap is reached further diagnostics are dropped.
type Collector struct {
	// The name of the stage the collector belongs to.
	Stage string

	// The maximum number of diagnostics kept.  Zero or less means no cap.
	Max int

	// The accumulated diagnostics in report order.
	Diags []*Diagnostic

	// The number of diagnostics that were dropped because of the cap.
	Dropped int
}

// NewCollector creates a new collector for the named stage.
func NewCollector(stage string, max int) *Collector {
	return &Collector{Stage: stage, Max: max}
}

// Add appends a diagnostic.  It returns false if the diagnostic was dropped.
func (c *Collector) Add(d *Diagnostic) bool {
	if c.Max > 0 && len(c.Diags) >= c.Max {
		c.Dropped++
		return false
	}

	c.Diags = append(c.Diags, d)
	return true
}

// Error appends a templated error.
func (c *Collector) Error(span *TextSpan, id string, args Args) {
	c.Add(&Diagnostic{MessageID: id, Args: args, Severity: SeverityError, Span: span})
}

// Warn appends a templated warning.
func (c *Collector) Warn(span *TextSpan, id string, args Args) {
	c.Add(&Diagnostic{MessageID: id, Args: args, Severity: SeverityWarn, Span: span})
}

// Info appends a templated informational message.
func (c *Collector) Info(span *TextSpan, id string, args Args) {
	c.Add(&Diagnostic{MessageID: id, Args: args, Severity: SeverityInfo, Span: span})
}

// Hint appends a templated hint.
func (c *Collector) Hint(span *TextSpan, id string, args Args) {
	c.Add(&Diagnostic{MessageID: id, Args: args, Severity: SeverityHint, Span: span})
}

// Raw appends a preformatted message with the given severity.
func (c *Collector) Raw(sev Severity, span *TextSpan, msg string, a ...interface{}) {
	c.Add(&Diagnostic{Raw: fmt.Sprintf(msg, a...), Severity: sev, Span: span})
}

// Count returns the number of kept diagnostics with the given severity.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.Diags {
		if d.Severity == sev {
			n++
		}
	}

	return n
}

// HasErrors returns whether any error was collected.
func (c *Collector) HasErrors() bool {
	return c.Count(SeverityError) > 0
}

// WithID returns the kept diagnostics that have the given message id.
func (c *Collector) WithID(id string) []*Diagnostic {
	var ds []*Diagnostic
	for _, d := range c.Diags {
		if d.MessageID == id {
			ds = append(ds, d)
		}
	}

	return ds
}

// Reset clears the collector so that a stage can be rerun.
func (c *Collector) Reset() {
	c.Diags = nil
	c.Dropped = 0
}
