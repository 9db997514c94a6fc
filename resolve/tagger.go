package resolve

import (
	"nakofront/depm"
	"nakofront/report"
	"nakofront/syntax"
)

// aliasWords maps words that stand for another word to that word.
var aliasWords = map[string]string{
	"そう": "それ",
}

// Tagger is responsible for classifying the bare words of a module's tokens
// into functions, variables, and constants.
type Tagger struct {
	// The module being tagged.
	mod *depm.Module

	// The environment the module is analyzed in.
	env *depm.Env

	diags *report.Collector
}

// NewTagger creates a new tagger for the given module.
func NewTagger(mod *depm.Module, env *depm.Env, diags *report.Collector) *Tagger {
	return &Tagger{mod: mod, env: env, diags: diags}
}

// ApplyFunctionTags resolves the callable form of every bare word.  It writes
// the function kind of every token.  Words that are not functions keep their
// fixed kind.
func (t *Tagger) ApplyFunctionTags(tokens []syntax.Token) {
	for i := range tokens {
		tok := &tokens[i]
		tok.FuncKind = tok.FixKind

		if tok.FixKind != syntax.TOK_WORD {
			continue
		}

		// declaration names already carry their function
		if tok.Decl != nil && tok.Decl.IsFunc() && tok.Decl.TokenIndex == i {
			tok.FuncKind = syntax.TOK_USER_FUNC
			tok.Group = syntax.GroupOf(tok.FuncKind)
			continue
		}

		if dt, ok := t.lookupFunc(tok.Key); ok {
			tok.Decl = dt
			tok.FuncKind = funcKind(dt)
			tok.Group = syntax.GroupOf(tok.FuncKind)
		}
	}
}

// lookupFunc resolves the callable form of a word.
func (t *Tagger) lookupFunc(key string) (*depm.DeclaredThing, bool) {
	if dt, ok := t.mod.LookupFunc(key); ok {
		return dt, true
	}

	if dt, ok := t.env.LookupImport(t.mod.Imports, key, true); ok {
		return dt, true
	}

	if _, ok := aliasWords[key]; ok {
		return nil, false
	}

	if dt, ok := t.env.LookupPlugin(key); ok && dt.IsFunc() {
		return dt, true
	}

	return nil, false
}

// ApplyVarConstTags resolves the value form of every bare word that is not a
// function using the scope ranges computed by the parser.  It writes the parse
// kind of every token.  Words that can not be resolved are reported.
func (t *Tagger) ApplyVarConstTags(tokens []syntax.Token, ranges []depm.ScopeIdRange) {
	for i := range tokens {
		tok := &tokens[i]
		tok.ParseKind = tok.FuncKind

		switch tok.FuncKind {
		case syntax.TOK_FUNC_ARG:
			scope := depm.LookupScope(ranges, i)
			if dt, ok := t.mod.LookupLocal(scope, tok.Key); ok {
				tok.Decl = dt
			}
		case syntax.TOK_WORD:
			if isPropertyName(tokens, i) {
				continue
			}

			t.tagWord(tokens, i, ranges)
		}
	}
}

// tagWord resolves a single word to a variable or constant.
func (t *Tagger) tagWord(tokens []syntax.Token, i int, ranges []depm.ScopeIdRange) {
	tok := &tokens[i]
	key := tok.Key
	if alias, ok := aliasWords[key]; ok {
		key = alias
	}

	scope := depm.LookupScope(ranges, i)
	dt, ok := t.lookupValue(key, scope)
	if !ok {
		tok.Decl = nil
		t.diags.Error(tok.Span(), "unknownWord", report.Args{
			"name": tok.Value,
			"hint": t.suggest(tok.Value, scope),
		})
		return
	}

	tok.Decl = dt
	tok.ParseKind = valueKind(dt)
	tok.Group = syntax.GroupOf(tok.ParseKind)
}

// lookupValue resolves the value form of a word.
func (t *Tagger) lookupValue(key string, scope int) (*depm.DeclaredThing, bool) {
	if dt, ok := t.mod.LookupGlobal(key); ok {
		return dt, true
	}

	if scope != depm.GlobalScopeID {
		if dt, ok := t.mod.LookupLocal(scope, key); ok {
			return dt, true
		}
	}

	if dt, ok := t.env.LookupImport(t.mod.Imports, key, false); ok {
		return dt, true
	}

	if dt, ok := t.env.LookupPlugin(key); ok && !dt.IsFunc() {
		return dt, true
	}

	if key == depm.Sore.Key {
		return depm.Sore, true
	}

	return nil, false
}

// isPropertyName returns whether the word at index i names a property, eg. the
// `名前` in `A@名前`, or a dictionary key, eg. the `名前` in `{名前: 1}`.
func isPropertyName(tokens []syntax.Token, i int) bool {
	if i == 0 {
		return false
	}

	prev := tokens[i-1].FuncKind
	if prev == syntax.TOK_AT {
		return true
	}

	if i+1 < len(tokens) && tokens[i+1].FuncKind == syntax.TOK_COLON {
		return prev == syntax.TOK_LBRACE || prev == syntax.TOK_COMMA
	}

	return false
}

// -----------------------------------------------------------------------------

// funcKind returns the function kind for a callable thing.
func funcKind(dt *depm.DeclaredThing) syntax.Kind {
	if dt.Origin == depm.OriginPlugin || dt.Origin == depm.OriginSystem {
		return syntax.TOK_SYS_FUNC
	}

	return syntax.TOK_USER_FUNC
}

// valueKind returns the parse kind for a variable or constant.
func valueKind(dt *depm.DeclaredThing) syntax.Kind {
	system := dt.Origin == depm.OriginPlugin || dt.Origin == depm.OriginSystem

	switch {
	case dt.Kind == depm.ThingConst && system:
		return syntax.TOK_SYS_CONST
	case dt.Kind == depm.ThingConst:
		return syntax.TOK_USER_CONST
	case system:
		return syntax.TOK_SYS_VAR
	default:
		return syntax.TOK_USER_VAR
	}
}
