package cmd

import (
	"fmt"
	"io"
	"nakofront/analysis"
	"nakofront/ast"
	"nakofront/syntax"
	"strconv"

	"github.com/pterm/pterm"
)

// tokenTable builds the display rows of a token list.
func tokenTable(tokens []syntax.Token) pterm.TableData {
	data := pterm.TableData{
		{"#", "Pos", "Kind", "Group", "Text", "Josi", "Level", "Decl"},
	}

	for i := range tokens {
		tok := &tokens[i]

		text := strconv.Quote(tok.Text)
		if tok.Synthetic {
			text += "*"
		}

		decl := ""
		if tok.Decl != nil {
			decl = tok.Decl.KindName() + " " + tok.Decl.Name
		}

		data = append(data, []string{
			strconv.Itoa(i),
			fmt.Sprintf("%d:%d", tok.StartLine+1, tok.StartCol+1),
			tok.ParseKind.String(),
			syntax.GroupName(tok.Group),
			text,
			tok.Josi,
			strconv.Itoa(tok.Indent.Level),
			decl,
		})
	}

	return data
}

// printTokens prints the statement tokens of a result, or the raw tokens if
// raw is set.
func printTokens(r *analysis.Result, raw bool) {
	tokens := r.Tokens
	if raw {
		tokens = r.RawTokens
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(tokenTable(tokens)).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

// printAST prints the tree of a result followed by its scope ranges.
func printAST(w io.Writer, r *analysis.Result) {
	fmt.Fprint(w, ast.Dump(r.AST))

	fmt.Fprintln(w)
	for _, sr := range r.ScopeRanges {
		fmt.Fprintf(w, "scope %d: [%d, %d)\n", sr.ScopeID, sr.Start, sr.End)
	}
}
