package ast

import "nakofront/depm"

// Let represents an assignment to a variable, eg. `Aは5`.
type Let struct {
	ASTBase

	// The name of the assigned variable and the index of its token.
	Name       string
	TokenIndex int

	Value ASTNode
}

// LetArray represents an assignment to an array element, eg. `A[0]は5`.
type LetArray struct {
	ASTBase

	Name       string
	TokenIndex int

	// The index expressions, outermost first.
	Index []ASTNode

	Value ASTNode
}

// LetProp represents an assignment to a property, eg. `A@名前は「太郎」`.
type LetProp struct {
	ASTBase

	Name       string
	TokenIndex int

	// The property path, outermost first.
	Props []ASTNode

	Value ASTNode
}

// DefLocal represents a local variable or constant declaration, eg.
// `変数 Aは5` or `定数 Bは1`.
type DefLocal struct {
	ASTBase

	Name       string
	TokenIndex int

	// Whether or not the declared thing is a constant.
	IsConst bool

	// The initializer, which may be nil for variables.
	Value ASTNode
}

// IncDec represents an increment or decrement, eg. `Aを1増やす`.  Amount is
// always set: it defaults to the number 1 when it is not written.
type IncDec struct {
	ASTBase

	Target ASTNode
	Amount ASTNode

	// Whether the target is decremented.
	Dec bool
}

// -----------------------------------------------------------------------------

// DefFunc represents a named function definition.
type DefFunc struct {
	ASTBase

	// The function's name and the index of its name token.
	Name       string
	TokenIndex int

	// The declaration registered for the function.  It is nil for tests.
	Decl *depm.DeclaredThing

	// The parameters of the function.
	Args []depm.FuncArg

	Body *Block

	// The scope opened by the function body.
	ScopeID int

	// Whether the definition is a test, eg. `●テスト:足し算`.
	IsTest bool

	IsAsync bool
}

// Return represents a return statement.  Value is nil for a bare return.
type Return struct {
	ASTBase

	Value ASTNode
}

// Break represents `抜ける`.
type Break struct {
	ASTBase
}

// Continue represents `続ける`.
type Continue struct {
	ASTBase
}
