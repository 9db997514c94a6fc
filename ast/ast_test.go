package ast

import (
	"nakofront/report"
	"testing"

	"github.com/stretchr/testify/assert"
)

func at(line, col int) ASTBase {
	return NewASTBaseOn(report.NewSpan(line, col, line, col+1))
}

// sample builds `A=1+2` followed by `3回` with a `Aを表示` body.
func sample() *Block {
	sum := &BinaryOp{
		ASTBase: at(0, 2),
		Op:      "+",
		Lhs:     &Number{ASTBase: at(0, 2), Value: 1, Text: "1"},
		Rhs:     &Number{ASTBase: at(0, 4), Value: 2, Text: "2"},
	}

	arg := &Word{ASTBase: at(2, 0), Name: "A"}
	arg.SetJosi("を")

	return &Block{Stmts: []ASTNode{
		&Let{ASTBase: at(0, 0), Name: "A", Value: sum},
		&Times{
			ASTBase: at(1, 0),
			Count:   &Number{ASTBase: at(1, 0), Value: 3, Text: "3"},
			Body: &Block{Stmts: []ASTNode{
				&FuncCall{ASTBase: at(2, 2), Name: "表示", Args: []ASTNode{arg}, IsAsync: true},
			}},
		},
	}}
}

func TestDump(t *testing.T) {
	want := "Block\n" +
		"  Let A\n" +
		"    BinaryOp +\n" +
		"      Number 1\n" +
		"      Number 2\n" +
		"  Times\n" +
		"    Number 3\n" +
		"    Block\n" +
		"      FuncCall 表示 (async)\n" +
		"        Word A [を]\n"

	assert.Equal(t, want, Dump(sample()))
}

func TestInspect(t *testing.T) {
	var visited []string
	Inspect(sample(), func(node ASTNode) bool {
		visited = append(visited, Describe(node))
		_, isLet := node.(*Let)
		return !isLet
	})

	assert.Equal(t, []string{
		"Block", "Let A", "Times", "Number 3", "Block", "FuncCall 表示 (async)", "Word A",
	}, visited)
}

func TestChildrenSkipsAbsentNodes(t *testing.T) {
	loop := &For{Var: "I", From: &Number{Text: "1"}, To: &Number{Text: "3"}}
	assert.Len(t, Children(loop), 2)

	try := &Try{Body: &Block{}}
	assert.Len(t, Children(try), 1)

	assert.Empty(t, Children(&DefLocal{Name: "A"}))
}

func TestDescribe(t *testing.T) {
	cases := map[string]ASTNode{
		"If (negated)":       &If{Negate: true},
		"DefTest 足算":         &DefFunc{Name: "足算", IsTest: true},
		"DefFunc 待つ (async)": &DefFunc{Name: "待つ", IsAsync: true},
		"DefConst 上限":        &DefLocal{Name: "上限", IsConst: true},
		"Dec":                &IncDec{Dec: true},
		"Switch (2 cases)":   &Switch{Cases: make([]SwitchCase, 2)},
		"String \"a\"":       &String{Value: "a"},
		"Number 10px":        &Number{Text: "10", Unit: "px"},
	}

	for want, node := range cases {
		assert.Equal(t, want, Describe(node))
	}
}

func TestSetSpan(t *testing.T) {
	ra := &RefArray{ASTBase: at(0, 0)}
	end := report.NewSpan(0, 5, 0, 6)
	ra.SetSpan(report.NewSpanOver(ra.Span(), end))

	assert.Equal(t, 0, ra.Span().StartCol)
	assert.Equal(t, 6, ra.Span().EndCol)
}
