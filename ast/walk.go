package ast

// Children returns the direct children of a node in source order.
func Children(node ASTNode) []ASTNode {
	var cs children

	switch v := node.(type) {
	case *TemplateString:
		cs.add(v.Parts...)
	case *Array:
		cs.add(v.Items...)
	case *Dict:
		for _, entry := range v.Entries {
			cs.add(entry.Key, entry.Value)
		}
	case *RefArray:
		cs.add(v.Target)
		cs.add(v.Index...)
	case *RefProp:
		cs.add(v.Target, v.Prop)
	case *BinaryOp:
		cs.add(v.Lhs, v.Rhs)
	case *UnaryOp:
		cs.add(v.Operand)
	case *FuncCall:
		cs.add(v.Args...)
	case *Renbun:
		cs.add(v.First, v.Rest)
	case *AnonFunc:
		cs.addBlock(v.Body)
	case *Block:
		cs.add(v.Stmts...)
	case *If:
		cs.add(v.Cond, v.Then, v.Else)
	case *Switch:
		cs.add(v.Value)
		for _, c := range v.Cases {
			cs.add(c.Value)
			cs.addBlock(c.Body)
		}
		cs.addBlock(v.Default)
	case *While:
		cs.add(v.Cond)
		cs.addBlock(v.Body)
	case *Times:
		cs.add(v.Count)
		cs.addBlock(v.Body)
	case *For:
		cs.add(v.From, v.To, v.Step)
		cs.addBlock(v.Body)
	case *Foreach:
		cs.add(v.Target)
		cs.addBlock(v.Body)
	case *AtoHantei:
		cs.addBlock(v.Body)
		cs.add(v.Cond)
	case *Try:
		cs.addBlock(v.Body)
		cs.addBlock(v.Catch)
	case *DefFunc:
		cs.addBlock(v.Body)
	case *Return:
		cs.add(v.Value)
	case *Let:
		cs.add(v.Value)
	case *LetArray:
		cs.add(v.Index...)
		cs.add(v.Value)
	case *LetProp:
		cs.add(v.Props...)
		cs.add(v.Value)
	case *DefLocal:
		cs.add(v.Value)
	case *IncDec:
		cs.add(v.Target, v.Amount)
	case *SpeedMode:
		cs.add(v.Options)
		cs.addBlock(v.Body)
	case *PerformanceMonitor:
		cs.add(v.Options)
		cs.addBlock(v.Body)
	}

	return cs
}

// children collects child nodes skipping absent ones.
type children []ASTNode

func (cs *children) add(nodes ...ASTNode) {
	for _, node := range nodes {
		if node != nil {
			*cs = append(*cs, node)
		}
	}
}

func (cs *children) addBlock(block *Block) {
	if block != nil {
		*cs = append(*cs, block)
	}
}

// Inspect traverses the tree rooted at node in depth-first order.  If f returns
// false, the children of the node are not visited.
func Inspect(node ASTNode, f func(ASTNode) bool) {
	if node == nil || !f(node) {
		return
	}

	for _, child := range Children(node) {
		Inspect(child, f)
	}
}
