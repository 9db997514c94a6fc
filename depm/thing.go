package depm

import (
	"nakofront/report"
	"strings"
)

// DeclaredThing represents any named function, variable, or constant known to
// analysis regardless of whether it comes from the analyzed module, an imported
// module, or a plugin.
type DeclaredThing struct {
	// The thing's kind.  This must be one of the enumerated thing kinds.
	Kind int

	// The raw name of the thing and its okurigana-trimmed lookup key.
	Name, Key string

	// The name of the declaring module or plugin.
	Module string

	// Visibility flags.  A thing can be neither exported nor private when the
	// module has no default export setting.
	IsExport, IsPrivate bool

	// Where the thing comes from.  This must be one of the enumerated origins.
	Origin int

	// Where the thing is declared.  This is nil for built-ins.
	Span *report.TextSpan

	// The ordered parameter list of a function.
	Args []FuncArg

	// Whether or not the function takes its arguments positionally regardless
	// of their particles.
	IsVariableJosi bool

	// Function flags.
	IsPure, IsAsync bool

	// Human readable description used for hovers and argument hints.
	Hint string

	// The scope the thing is visible in.  Scope 0 is the module global scope.
	// For functions, this is the scope opened by the function body.
	ScopeID int

	// The index of the declaring token in the module's token array or -1 if the
	// thing was not declared by the module's tokens.
	TokenIndex int

	// The owning plugin for plugin and system things.
	Plugin string
}

// FuncArg is a single parameter of a declared function.
type FuncArg struct {
	// The parameter name.
	Name string

	// The accepted particles.  An empty string accepts an argument without a
	// particle.
	Josi []string

	// Attribute tags attached to the parameter, eg. `参照渡し`.
	Attrs []string

	// Whether or not the argument is passed by reference.
	ByRef bool
}

// Enumeration of thing kinds.
const (
	ThingFunc = iota
	ThingVar
	ThingConst
)

// Enumeration of thing origins.
const (
	OriginGlobal = iota
	OriginLocal
	OriginPlugin
	OriginSystem
)

// NewDeclaredThing creates a new declared thing with no declaring token.
func NewDeclaredThing(kind int, name, key, module string, origin int) *DeclaredThing {
	return &DeclaredThing{
		Kind:       kind,
		Name:       name,
		Key:        key,
		Module:     module,
		Origin:     origin,
		TokenIndex: -1,
	}
}

// IsFunc returns whether the thing is a function.
func (dt *DeclaredThing) IsFunc() bool {
	return dt.Kind == ThingFunc
}

// AcceptsJosi returns whether the parameter accepts the given particle.
func (fa FuncArg) AcceptsJosi(josi string) bool {
	for _, j := range fa.Josi {
		if j == josi {
			return true
		}
	}

	return false
}

// Signature renders a function as it would be declared, eg. `(AとBを)足す`.
func (dt *DeclaredThing) Signature() string {
	if !dt.IsFunc() || len(dt.Args) == 0 {
		return dt.Name
	}

	var sb strings.Builder
	sb.WriteRune('(')
	for i, arg := range dt.Args {
		if i > 0 {
			sb.WriteRune('|')
		}

		sb.WriteString(arg.Name)
		sb.WriteString(strings.Join(arg.Josi, "/"))
	}
	sb.WriteRune(')')
	sb.WriteString(dt.Name)

	return sb.String()
}

// KindName returns the name of the thing's kind.
func (dt *DeclaredThing) KindName() string {
	switch dt.Kind {
	case ThingFunc:
		return "func"
	case ThingVar:
		return "var"
	default:
		return "const"
	}
}
