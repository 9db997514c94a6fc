package ast

import "nakofront/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan

	// The particle trailing the node in source.  The parser uses it to bind
	// arguments; it has no meaning once parsing is complete.
	Josi() string

	// SetJosi replaces the trailing particle of the node.
	SetJosi(josi string)
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan

	// The trailing particle.
	josi string
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab *ASTBase) Span() *report.TextSpan {
	return ab.span
}

func (ab *ASTBase) Josi() string {
	return ab.josi
}

func (ab *ASTBase) SetJosi(josi string) {
	ab.josi = josi
}

// SetSpan replaces the span of the node.  It is used when a node is extended
// after its creation, eg. when a postfix index is applied.
func (ab *ASTBase) SetSpan(span *report.TextSpan) {
	ab.span = span
}
