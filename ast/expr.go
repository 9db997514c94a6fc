package ast

import "nakofront/depm"

// Number represents a numeric literal.
type Number struct {
	ASTBase

	// The numeric value and its normalized text.
	Value float64
	Text  string

	// The unit word written after the number, if any.
	Unit string
}

// String represents a string literal without interpolation.
type String struct {
	ASTBase

	Value string
}

// TemplateString represents a string with interpolated expressions.  Its
// parts are String nodes for the literal text and arbitrary expressions for
// the interpolations.
type TemplateString struct {
	ASTBase

	Parts []ASTNode
}

// Word represents a reference to a variable or constant.  The token the word
// was parsed from holds the declaration it resolves to once tagging is done.
type Word struct {
	ASTBase

	// The name of the referenced thing.
	Name string

	// The index of the word's token.
	TokenIndex int
}

// Array represents an array literal.
type Array struct {
	ASTBase

	Items []ASTNode
}

// DictEntry is a single `key: value` pair of a dictionary literal.
type DictEntry struct {
	Key, Value ASTNode
}

// Dict represents a dictionary literal.
type Dict struct {
	ASTBase

	Entries []DictEntry
}

// RefArray represents an indexing operation, eg. `A[1][2]`.
type RefArray struct {
	ASTBase

	Target ASTNode
	Index  []ASTNode
}

// RefProp represents a property access, eg. `A@名前`.
type RefProp struct {
	ASTBase

	Target ASTNode
	Prop   ASTNode
}

// BinaryOp represents a binary operator application.
type BinaryOp struct {
	ASTBase

	// The operator's display name, eg. `+` or `かつ`.
	Op string

	Lhs, Rhs ASTNode
}

// UnaryOp represents a unary operator application.
type UnaryOp struct {
	ASTBase

	Op      string
	Operand ASTNode
}

// FuncCall represents a function call.  The arguments are in declaration
// order regardless of the order their particles were written in.
type FuncCall struct {
	ASTBase

	// The name of the called function.
	Name string

	// The index of the token naming the function.
	TokenIndex int

	// The called function.  This is a non-owning reference.
	Decl *depm.DeclaredThing

	// The arguments of the call.
	Args []ASTNode

	// Whether or not the call was found to be asynchronous.
	IsAsync bool
}

// Renbun represents two calls chained with a te-form particle, eg.
// `AをBに足して表示`.  The rest is evaluated with the result of the first.
type Renbun struct {
	ASTBase

	First, Rest ASTNode
}

// AnonFunc represents an anonymous function created with `には`.
type AnonFunc struct {
	ASTBase

	// The parameters of the function.
	Args []depm.FuncArg

	// The function body.
	Body *Block

	// The scope opened by the function body.
	ScopeID int

	IsAsync bool
}

// Nop is a placeholder for a construct that could not be parsed.
type Nop struct {
	ASTBase
}
