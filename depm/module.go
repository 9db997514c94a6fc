package depm

import "sort"

// Module is the symbol table of one analyzed module.  It is rebuilt wholesale
// every time the module's text is analyzed.
type Module struct {
	// The module's name.
	Name string

	// The functions declared by the module by lookup key.
	Funcs map[string]*DeclaredThing

	// The global variables and constants declared by the module by lookup key.
	Globals map[string]*DeclaredThing

	// The local variables and constants of each function scope by scope ID and
	// lookup key.
	Locals map[int]map[string]*DeclaredThing

	// The names of the modules imported by the module in import order.
	Imports []string
}

// NewModule creates a new, empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:    name,
		Funcs:   make(map[string]*DeclaredThing),
		Globals: make(map[string]*DeclaredThing),
		Locals:  make(map[int]map[string]*DeclaredThing),
	}
}

// DeclareFunc declares a function.  If a function with the same key already
// exists, it is replaced and the previous declaration is returned.
func (m *Module) DeclareFunc(dt *DeclaredThing) *DeclaredThing {
	prev := m.Funcs[dt.Key]
	m.Funcs[dt.Key] = dt
	return prev
}

// DeclareGlobal declares a global variable or constant if it is not already
// declared.  It returns the declaration that is in effect.
func (m *Module) DeclareGlobal(dt *DeclaredThing) *DeclaredThing {
	if prev, ok := m.Globals[dt.Key]; ok {
		return prev
	}

	m.Globals[dt.Key] = dt
	return dt
}

// DeclareLocal declares a local variable or constant in the given scope if it
// is not already declared there.  It returns the declaration that is in effect.
func (m *Module) DeclareLocal(scopeID int, dt *DeclaredThing) *DeclaredThing {
	scope, ok := m.Locals[scopeID]
	if !ok {
		scope = make(map[string]*DeclaredThing)
		m.Locals[scopeID] = scope
	}

	if prev, ok := scope[dt.Key]; ok {
		return prev
	}

	dt.ScopeID = scopeID
	scope[dt.Key] = dt
	return dt
}

// LookupFunc looks up a function declared by the module.
func (m *Module) LookupFunc(key string) (*DeclaredThing, bool) {
	dt, ok := m.Funcs[key]
	return dt, ok
}

// LookupGlobal looks up a global variable or constant.
func (m *Module) LookupGlobal(key string) (*DeclaredThing, bool) {
	dt, ok := m.Globals[key]
	return dt, ok
}

// LookupLocal looks up a local variable or constant in the given scope.
func (m *Module) LookupLocal(scopeID int, key string) (*DeclaredThing, bool) {
	if scope, ok := m.Locals[scopeID]; ok {
		dt, ok := scope[key]
		return dt, ok
	}

	return nil, false
}

// Exported returns a module holding only the exported functions and globals of
// the module.  This is what importing modules see.
func (m *Module) Exported() *Module {
	em := NewModule(m.Name)

	for key, dt := range m.Funcs {
		if dt.IsExport {
			em.Funcs[key] = dt
		}
	}

	for key, dt := range m.Globals {
		if dt.IsExport {
			em.Globals[key] = dt
		}
	}

	return em
}

// Names returns the sorted names of every thing in the module including the
// locals of the given scope.  It is used to build suggestions.
func (m *Module) Names(scopeID int) []string {
	seen := make(map[string]struct{})
	add := func(things map[string]*DeclaredThing) {
		for _, dt := range things {
			seen[dt.Name] = struct{}{}
		}
	}

	add(m.Funcs)
	add(m.Globals)
	if scope, ok := m.Locals[scopeID]; ok {
		add(scope)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// ScopeIdRange maps the half-open token index range [Start, End) to the scope
// that is active over it.
type ScopeIdRange struct {
	Start, End int
	ScopeID    int
}

// GlobalScopeID is the ID of the module scope.
const GlobalScopeID = 0

// LookupScope returns the innermost scope containing the token index.  Ranges
// must be sorted by their starting index; the latest starting range that
// contains the index wins.  If no range contains the index, the global scope
// is returned.
func LookupScope(ranges []ScopeIdRange, index int) int {
	scope := GlobalScopeID
	for _, r := range ranges {
		if r.Start > index {
			break
		}

		if index < r.End {
			scope = r.ScopeID
		}
	}

	return scope
}
