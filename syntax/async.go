package syntax

import (
	"nakofront/ast"
)

// markAsync marks the asynchronous calls and function definitions of a module.
// A definition is asynchronous if its body calls an asynchronous function,
// chains calls with a te-form particle, or defines an asynchronous function.
// Marking a definition makes its callers asynchronous in turn, so the marking
// repeats until nothing changes.
func markAsync(root *ast.Block) {
	var defs []ast.ASTNode
	ast.Inspect(root, func(node ast.ASTNode) bool {
		switch node.(type) {
		case *ast.DefFunc, *ast.AnonFunc:
			defs = append(defs, node)
		}

		return true
	})

	for changed := true; changed; {
		changed = false

		for _, def := range defs {
			switch v := def.(type) {
			case *ast.DefFunc:
				if !v.IsAsync && containsAsync(v.Body) {
					v.IsAsync = true
					if v.Decl != nil {
						v.Decl.IsAsync = true
					}
					changed = true
				}
			case *ast.AnonFunc:
				if !v.IsAsync && containsAsync(v.Body) {
					v.IsAsync = true
					changed = true
				}
			}
		}
	}

	// definitions marked in an earlier round are skipped above, so every call
	// site is marked in one final pass over the whole tree
	containsAsync(root)
}

// containsAsync returns whether a block contains an asynchronous construct.
// It marks every call to an asynchronous function it encounters.
func containsAsync(body *ast.Block) bool {
	found := false
	ast.Inspect(body, func(node ast.ASTNode) bool {
		switch v := node.(type) {
		case *ast.FuncCall:
			if v.Decl != nil && v.Decl.IsAsync {
				v.IsAsync = true
				found = true
			}
		case *ast.Renbun:
			found = true
		case *ast.DefFunc:
			found = found || v.IsAsync
		case *ast.AnonFunc:
			found = found || v.IsAsync
		}

		return true
	})

	return found
}
