package fixer

import (
	"nakofront/depm"
	"nakofront/report"
	"nakofront/syntax"
)

// enumerateFuncs extracts the header of every function definition and
// anonymous function.  Named functions are registered into the module; the
// declaration is attached to the anchor token and the name token.
func (n *normalizer) enumerateFuncs() {
	for i := range n.out {
		switch n.out[i].FixKind {
		case syntax.TOK_DEF_FUNC:
			n.defineFunc(i, false)
		case syntax.TOK_DEF_TEST:
			n.defineFunc(i, true)
		case syntax.TOK_NIWA:
			n.defineAnon(i)
		}
	}
}

// defineFunc reads a function header: `●{attrs}(params)name(params)とは`.
func (n *normalizer) defineFunc(anchor int, isTest bool) {
	j := anchor + 1

	var attrs []string
	if n.out[j].FixKind == syntax.TOK_LBRACE {
		attrs, j = n.readAttrs(j)
	}

	var args []depm.FuncArg
	paramsBefore := false
	if n.out[j].FixKind == syntax.TOK_LPAREN {
		args, j = n.readParams(j, args)
		paramsBefore = true
	}

	if n.out[j].FixKind != syntax.TOK_WORD {
		n.diags.Error(n.out[anchor].Span(), "missingFuncName", nil)
		return
	}

	nameIdx := j
	nameTok := &n.out[nameIdx]
	j++

	if n.out[j].FixKind == syntax.TOK_LPAREN {
		if paramsBefore {
			n.diags.Error(n.out[j].Span(), "duplicateParams", report.Args{"name": nameTok.Value})
		}

		args, j = n.readParams(j, args)
	}

	dt := depm.NewDeclaredThing(depm.ThingFunc, nameTok.Value, nameTok.Key, n.mod.Name, depm.OriginGlobal)
	dt.Args = args
	dt.Span = nameTok.Span()
	dt.TokenIndex = nameIdx
	dt.IsExport = n.opts.DefaultExport
	n.applyFuncAttrs(dt, attrs, n.out[anchor].Span())

	if !isTest {
		if prev := n.mod.DeclareFunc(dt); prev != nil {
			n.diags.Warn(nameTok.Span(), "redefinedFunc", report.Args{"name": nameTok.Value})
		}
	}

	n.out[anchor].Decl = dt
	nameTok.Decl = dt
}

// defineAnon reads the optional parameter list after `には`.
func (n *normalizer) defineAnon(anchor int) {
	dt := depm.NewDeclaredThing(depm.ThingFunc, "", "", n.mod.Name, depm.OriginLocal)
	dt.Span = n.out[anchor].Span()
	dt.TokenIndex = anchor

	if n.out[anchor+1].FixKind == syntax.TOK_LPAREN {
		dt.Args, _ = n.readParams(anchor+1, nil)
	}

	n.out[anchor].Decl = dt
}

// applyFuncAttrs applies the attributes of a function header.
func (n *normalizer) applyFuncAttrs(dt *depm.DeclaredThing, attrs []string, span *report.TextSpan) {
	for _, attr := range attrs {
		switch attr {
		case "公開":
			dt.IsExport = true
			dt.IsPrivate = false
		case "非公開":
			dt.IsExport = false
			dt.IsPrivate = true
		case "非同期":
			dt.IsAsync = true
		default:
			n.diags.Error(span, "invalidAttribute", report.Args{"name": attr})
		}
	}
}

// readAttrs reads an attribute block `{...}` starting at the opening brace.
// It returns the attributes and the index after the block.
func (n *normalizer) readAttrs(j int) ([]string, int) {
	var attrs []string
	for j++; j < len(n.out); j++ {
		switch tok := &n.out[j]; tok.FixKind {
		case syntax.TOK_RBRACE:
			return attrs, j + 1
		case syntax.TOK_EOL, syntax.TOK_EOF:
			return attrs, j
		case syntax.TOK_COMMA:
		default:
			attrs = append(attrs, tok.Value)
		}
	}

	return attrs, j
}

// readParams reads a parameter list `(...)` starting at the opening paren and
// merges it into args.  It returns the merged arguments and the index after
// the list.  Parameter tokens are reclassified as FUNC_ARG.
func (n *normalizer) readParams(j int, args []depm.FuncArg) ([]depm.FuncArg, int) {
	open := j

	var attrs []string
	for j++; j < len(n.out); j++ {
		tok := &n.out[j]
		switch tok.FixKind {
		case syntax.TOK_RPAREN:
			return args, j + 1
		case syntax.TOK_EOL, syntax.TOK_EOF:
			n.diags.Error(n.out[open].Span(), "unclosedParams", nil)
			return args, j
		case syntax.TOK_LBRACE:
			var more []string
			more, j = n.readAttrs(j)
			attrs = append(attrs, more...)
			j--
		case syntax.TOK_FUNC_POINTER:
			attrs = append(attrs, "関数")
		case syntax.TOK_WORD:
			tok.FixKind = syntax.TOK_FUNC_ARG
			tok.Group = syntax.GroupOf(tok.FixKind)
			args = mergeParam(args, tok.Value, tok.Josi, attrs)
			attrs = nil
		}
	}

	return args, j
}

// mergeParam adds a parameter to args.  A parameter that is already present
// gains the particle instead: `(AとBを|Aに)` accepts both と and に for A.
func mergeParam(args []depm.FuncArg, name, josi string, attrs []string) []depm.FuncArg {
	for i := range args {
		if args[i].Name == name {
			if !args[i].AcceptsJosi(josi) {
				args[i].Josi = append(args[i].Josi, josi)
			}
			args[i].Attrs = append(args[i].Attrs, attrs...)
			args[i].ByRef = args[i].ByRef || hasAttr(attrs, "参照渡し")
			return args
		}
	}

	return append(args, depm.FuncArg{
		Name:  name,
		Josi:  []string{josi},
		Attrs: attrs,
		ByRef: hasAttr(attrs, "参照渡し"),
	})
}

func hasAttr(attrs []string, attr string) bool {
	for _, a := range attrs {
		if a == attr {
			return true
		}
	}

	return false
}
