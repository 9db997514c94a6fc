package fixer

import (
	"nakofront/report"
	"nakofront/syntax"
)

// preprocess recognizes directive lines: lines that start with `!` followed
// by a directive word or an import string.  Every token of a directive line is
// marked as PREPROCESS so that later stages skip it.
func (n *normalizer) preprocess() {
	for i := 0; i < len(n.out); i++ {
		tok := &n.out[i]
		if tok.FixKind != syntax.TOK_NOT || (i > 0 && n.out[i-1].FixKind != syntax.TOK_EOL) {
			continue
		}

		switch n.out[i+1].FixKind {
		case syntax.TOK_WORD, syntax.TOK_DIRECTIVE, syntax.TOK_STRING, syntax.TOK_STRING_EX:
		default:
			continue
		}

		end := i + 1
		for n.out[end].FixKind != syntax.TOK_EOL && n.out[end].FixKind != syntax.TOK_EOF {
			end++
		}

		n.directive(i+1, end)

		for k := i; k < end; k++ {
			n.out[k].FixKind = syntax.TOK_PREPROCESS
		}
		tok.Group = syntax.GroupKeyword

		i = end
	}
}

// directive interprets the directive made of the tokens [start, end).
func (n *normalizer) directive(start, end int) {
	first := &n.out[start]
	consumed := 1

	switch first.FixKind {
	case syntax.TOK_STRING, syntax.TOK_STRING_EX:
		if start+1 < end && n.out[start+1].FixKind == syntax.TOK_STRING_INJECT_START {
			n.diags.Error(first.Span(), "importNotString", nil)
			return
		}

		if start+1 >= end || n.out[start+1].FixKind != syntax.TOK_TORIKOMU {
			n.diags.Error(first.Span(), "unknownDirective", report.Args{"name": first.Value})
			return
		}

		n.imports = append(n.imports, ImportStatement{
			Name:       first.Value,
			Span:       first.Span(),
			TokenIndex: start,
		})
		consumed = 2
	case syntax.TOK_DIRECTIVE:
		switch first.Key {
		case "厳チェック":
			n.opts.Strict = true
		case "非同期モード":
			n.opts.AsyncMode = true
			n.diags.Warn(first.Span(), "deprecatedAsync", nil)
		case "DNCLモード":
			n.opts.DNCL = true
			n.diags.Warn(first.Span(), "unsupportedDncl", report.Args{"name": first.Value})
		case "DNCL2モード":
			n.opts.DNCL2 = true
			n.diags.Warn(first.Span(), "unsupportedDncl", report.Args{"name": first.Value})
		case "インデント構文":
			n.opts.IndentSemantics = true
		case "モジュール公開既定値":
			consumed = n.defaultExport(start, end)
		}
	default:
		if start+1 < end && n.out[start+1].FixKind == syntax.TOK_TORIKOMU {
			n.diags.Error(first.Span(), "importNotString", nil)
		} else {
			n.diags.Error(first.Span(), "unknownDirective", report.Args{"name": first.Value})
		}

		return
	}

	if start+consumed < end {
		n.diags.Error(n.out[start+consumed].Span(), "directiveNotTerminated", report.Args{"name": first.Value})
	}
}

// defaultExport interprets `モジュール公開既定値は「公開」`.  It returns the number
// of tokens the directive occupies.
func (n *normalizer) defaultExport(start, end int) int {
	if start+2 < end && n.out[start+1].FixKind == syntax.TOK_EQ {
		if value := &n.out[start+2]; value.FixKind == syntax.TOK_STRING || value.FixKind == syntax.TOK_STRING_EX {
			switch value.Value {
			case "公開":
				n.opts.DefaultExport = true
				return 3
			case "非公開":
				n.opts.DefaultExport = false
				return 3
			}
		}
	}

	n.diags.Error(n.out[start].Span(), "invalidExportDefault", nil)
	return end - start
}
