package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders the tree rooted at node as indented text, one node per line.
func Dump(node ASTNode) string {
	var sb strings.Builder
	dumpNode(&sb, node, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node ASTNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(Describe(node))
	if josi := node.Josi(); josi != "" {
		fmt.Fprintf(sb, " [%s]", josi)
	}
	sb.WriteRune('\n')

	for _, child := range Children(node) {
		dumpNode(sb, child, depth+1)
	}
}

// Describe returns a one line description of a node without its children.
func Describe(node ASTNode) string {
	switch v := node.(type) {
	case *Number:
		return "Number " + v.Text + v.Unit
	case *String:
		return "String " + strconv.Quote(v.Value)
	case *TemplateString:
		return "TemplateString"
	case *Word:
		return "Word " + v.Name
	case *Array:
		return fmt.Sprintf("Array (%d)", len(v.Items))
	case *Dict:
		return fmt.Sprintf("Dict (%d)", len(v.Entries))
	case *RefArray:
		return "RefArray"
	case *RefProp:
		return "RefProp"
	case *BinaryOp:
		return "BinaryOp " + v.Op
	case *UnaryOp:
		return "UnaryOp " + v.Op
	case *FuncCall:
		if v.IsAsync {
			return "FuncCall " + v.Name + " (async)"
		}
		return "FuncCall " + v.Name
	case *Renbun:
		return "Renbun"
	case *AnonFunc:
		return fmt.Sprintf("AnonFunc (%d args)", len(v.Args))
	case *Nop:
		return "Nop"
	case *Block:
		return "Block"
	case *If:
		if v.Negate {
			return "If (negated)"
		}
		return "If"
	case *Switch:
		return fmt.Sprintf("Switch (%d cases)", len(v.Cases))
	case *While:
		return "While"
	case *Times:
		return "Times"
	case *For:
		return "For " + v.Var
	case *Foreach:
		return "Foreach " + v.Var
	case *AtoHantei:
		return "AtoHantei"
	case *Try:
		return "Try"
	case *DefFunc:
		desc := "DefFunc " + v.Name
		if v.IsTest {
			desc = "DefTest " + v.Name
		}
		if v.IsAsync {
			desc += " (async)"
		}
		return desc
	case *Return:
		return "Return"
	case *Break:
		return "Break"
	case *Continue:
		return "Continue"
	case *Let:
		return "Let " + v.Name
	case *LetArray:
		return "LetArray " + v.Name
	case *LetProp:
		return "LetProp " + v.Name
	case *DefLocal:
		if v.IsConst {
			return "DefConst " + v.Name
		}
		return "DefVar " + v.Name
	case *IncDec:
		if v.Dec {
			return "Dec"
		}
		return "Inc"
	case *SpeedMode:
		return "SpeedMode"
	case *PerformanceMonitor:
		return "PerformanceMonitor"
	default:
		return fmt.Sprintf("%T", node)
	}
}
