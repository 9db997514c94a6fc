package ast

// Block represents a list of AST statements.
type Block struct {
	ASTBase

	// The statements of the block.
	Stmts []ASTNode
}

// -----------------------------------------------------------------------------

// If represents a conditional.  The Else branch is a Nop when no `違えば`
// clause is written.
type If struct {
	ASTBase

	// The condition of the branch.
	Cond ASTNode

	// Whether the condition was written with `でなければ`.
	Negate bool

	Then, Else ASTNode
}

// SwitchCase is a single arm of a switch.
type SwitchCase struct {
	Value ASTNode
	Body  *Block
}

// Switch represents `条件分岐`.
type Switch struct {
	ASTBase

	// The value being switched on.
	Value ASTNode

	Cases []SwitchCase

	// The `違えば` arm.  This is nil when it is not written.
	Default *Block
}

// While represents `Cの間`.
type While struct {
	ASTBase

	Cond ASTNode
	Body *Block
}

// Times represents `N回`.
type Times struct {
	ASTBase

	Count ASTNode
	Body  *Block
}

// Enumeration of for loop directions.
const (
	ForAuto = iota
	ForUp
	ForDown
)

// For represents `IをAからBまで繰り返す` and its increasing and decreasing
// variants.
type For struct {
	ASTBase

	// The name of the loop variable and the index of its token.  The name is
	// empty if no loop variable is written.
	Var      string
	VarIndex int

	From, To ASTNode

	// The step of the loop.  This is nil when it is not written.
	Step ASTNode

	// The direction of the loop.  This must be one of the enumerated
	// directions.
	Direction int

	Body *Block
}

// Foreach represents `Xを反復`.
type Foreach struct {
	ASTBase

	// The optional counter variable, eg. `I` in `IでXを反復`.
	Var      string
	VarIndex int

	Target ASTNode
	Body   *Block
}

// AtoHantei represents a loop whose condition is checked after the body, ie.
// `後判定で … ここまで、Cの間`.
type AtoHantei struct {
	ASTBase

	Body *Block
	Cond ASTNode
}

// Try represents `エラー監視 … エラーならば …`.
type Try struct {
	ASTBase

	Body  *Block
	Catch *Block
}

// SpeedMode represents `実行速度優先`.  The options are the words or strings
// written before the keyword.
type SpeedMode struct {
	ASTBase

	Options ASTNode
	Body    *Block
}

// PerformanceMonitor represents `パフォーマンスモニタ適用`.
type PerformanceMonitor struct {
	ASTBase

	Options ASTNode
	Body    *Block
}
