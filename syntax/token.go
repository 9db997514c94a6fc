package syntax

import (
	"nakofront/depm"
	"nakofront/report"
)

// Kind is the kind of a token.  Each analysis stage writes one kind field of a
// token: the tokenizer writes the raw kind, the normalizer the fixed kind, the
// function tagger the function kind, and the variable tagger the parse kind.
type Kind int

// Token represents a single lexical token.
type Token struct {
	// The kinds of the token for each analysis stage.
	Kind, FixKind, FuncKind, ParseKind Kind

	// The display group of the token.  This must be one of the enumerated
	// groups.
	Group int

	// The position of the token.  Lines and columns are zero-indexed, columns
	// are counted in runes, and the end column is exclusive.
	StartLine, StartCol int
	EndLine, EndCol     int

	// The end column of the token's core text: it excludes any trailing unit,
	// particle, or separator.
	ResEndCol int

	// The exact source text of the token.
	Text string

	// The decoded value of the token: the word itself, the contents of a
	// string, or the normalized text of a number.
	Value string

	// The numeric value of a number token.
	Num float64

	// The okurigana-trimmed lookup key of a word.
	Key string

	// The trailing particle and its starting column.  The column is -1 if
	// there is no particle.
	Josi         string
	JosiStartCol int

	// The unit word absorbed into a number.
	Unit string

	// The indentation of the line the token is on.
	Indent Indent

	// Metadata of the function, variable, or constant the token refers to or
	// declares.  This is a non-owning reference.
	Decl *depm.DeclaredThing

	// The index of the primary token of the construct this token belongs to,
	// or -1 if the token is not linked.  Primary tokens store the indices of
	// their auxiliary tokens in LinkAux.
	LinkPrimary int
	LinkAux     []int

	// Whether or not the token was created by the normalizer.
	Synthetic bool
}

// Indent is the indentation of a line.
type Indent struct {
	// The indentation text and its length in runes.
	Text string
	Len  int

	// The computed indentation level.
	Level int
}

// Span returns the text span of the token.
func (tok *Token) Span() *report.TextSpan {
	return report.NewSpan(tok.StartLine, tok.StartCol, tok.EndLine, tok.EndCol)
}

// Is returns whether the token's latest kind is one of the given kinds.
func (tok *Token) Is(kinds ...Kind) bool {
	for _, kind := range kinds {
		if tok.ParseKind == kind {
			return true
		}
	}

	return false
}

// HasJosi returns whether or not the token has a particle.
func (tok *Token) HasJosi() bool {
	return tok.Josi != ""
}

// Enumeration of token kinds.
const (
	TOK_EOF Kind = iota
	TOK_EOL
	TOK_SPACE
	TOK_CHARACTER

	TOK_LINE_COMMENT
	TOK_RANGE_COMMENT
	TOK_LINE_CONTINUE

	TOK_NUMBER
	TOK_STRING
	TOK_STRING_EX
	TOK_STRING_INJECT_START
	TOK_STRING_INJECT_END
	TOK_WORD

	TOK_DEF_FUNC
	TOK_DEF_TEST
	TOK_FUNC_POINTER

	TOK_KOKOKARA
	TOK_KOKOMADE
	TOK_MOSHI
	TOK_CHIGAEBA
	TOK_KAI
	TOK_AIDA
	TOK_KURIKAESU
	TOK_ZOU_KURIKAESU
	TOK_GEN_KURIKAESU
	TOK_ATOHANTEI
	TOK_HANPUKU
	TOK_NUKERU
	TOK_TSUZUKERU
	TOK_MODORU
	TOK_SAKINI
	TOK_TSUGINI
	TOK_DAINYU
	TOK_SADAMERU
	TOK_SPEED_MODE
	TOK_PERFORMANCE_MONITOR
	TOK_CHIKUJI
	TOK_JOUKEN_BUNKI
	TOK_ZOU
	TOK_GEN
	TOK_HENSUU
	TOK_TEISUU
	TOK_ERROR_KANSHI
	TOK_ERROR
	TOK_TORIKOMU
	TOK_DIRECTIVE

	TOK_EQ
	TOK_EQEQ
	TOK_EQEQEQ
	TOK_NOTEQ
	TOK_NOTEQEQ
	TOK_GT
	TOK_GTEQ
	TOK_LT
	TOK_LTEQ
	TOK_ARROW
	TOK_NOT
	TOK_AND
	TOK_OR
	TOK_AT
	TOK_PLUS
	TOK_MINUS
	TOK_POW
	TOK_MUL
	TOK_INTDIV
	TOK_DIV
	TOK_MOD
	TOK_CARET
	TOK_AMP
	TOK_SHL
	TOK_SHR
	TOK_USHR

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE
	TOK_COLON
	TOK_COMMA
	TOK_BAR

	// Kinds created by the normalizer.
	TOK_NIWA
	TOK_NARABA
	TOK_DENAKEREBA
	TOK_ERROR_NARABA
	TOK_PREPROCESS
	TOK_FUNC_ARG

	// Kinds created by the semantic tagger.
	TOK_USER_FUNC
	TOK_SYS_FUNC
	TOK_USER_VAR
	TOK_USER_CONST
	TOK_SYS_VAR
	TOK_SYS_CONST
)

// kindNames are the display names of the token kinds.
var kindNames = [...]string{
	TOK_EOF:       "EOF",
	TOK_EOL:       "EOL",
	TOK_SPACE:     "SPACE",
	TOK_CHARACTER: "CHARACTER",

	TOK_LINE_COMMENT:  "LINE_COMMENT",
	TOK_RANGE_COMMENT: "RANGE_COMMENT",
	TOK_LINE_CONTINUE: "LINE_CONTINUE",

	TOK_NUMBER:              "NUMBER",
	TOK_STRING:              "STRING",
	TOK_STRING_EX:           "STRING_EX",
	TOK_STRING_INJECT_START: "STRING_INJECT_START",
	TOK_STRING_INJECT_END:   "STRING_INJECT_END",
	TOK_WORD:                "WORD",

	TOK_DEF_FUNC:     "DEF_FUNC",
	TOK_DEF_TEST:     "DEF_TEST",
	TOK_FUNC_POINTER: "FUNC_POINTER",

	TOK_KOKOKARA:            "ここから",
	TOK_KOKOMADE:            "ここまで",
	TOK_MOSHI:               "もし",
	TOK_CHIGAEBA:            "違えば",
	TOK_KAI:                 "回",
	TOK_AIDA:                "間",
	TOK_KURIKAESU:           "繰り返す",
	TOK_ZOU_KURIKAESU:       "増繰り返す",
	TOK_GEN_KURIKAESU:       "減繰り返す",
	TOK_ATOHANTEI:           "後判定",
	TOK_HANPUKU:             "反復",
	TOK_NUKERU:              "抜ける",
	TOK_TSUZUKERU:           "続ける",
	TOK_MODORU:              "戻る",
	TOK_SAKINI:              "先に",
	TOK_TSUGINI:             "次に",
	TOK_DAINYU:              "代入",
	TOK_SADAMERU:            "定める",
	TOK_SPEED_MODE:          "実行速度優先",
	TOK_PERFORMANCE_MONITOR: "パフォーマンスモニタ適用",
	TOK_CHIKUJI:             "逐次実行",
	TOK_JOUKEN_BUNKI:        "条件分岐",
	TOK_ZOU:                 "増",
	TOK_GEN:                 "減",
	TOK_HENSUU:              "変数",
	TOK_TEISUU:              "定数",
	TOK_ERROR_KANSHI:        "エラー監視",
	TOK_ERROR:               "エラー",
	TOK_TORIKOMU:            "取込",
	TOK_DIRECTIVE:           "DIRECTIVE",

	TOK_EQ:      "=",
	TOK_EQEQ:    "==",
	TOK_EQEQEQ:  "===",
	TOK_NOTEQ:   "≠",
	TOK_NOTEQEQ: "!==",
	TOK_GT:      ">",
	TOK_GTEQ:    "≧",
	TOK_LT:      "<",
	TOK_LTEQ:    "≦",
	TOK_ARROW:   "←",
	TOK_NOT:     "!",
	TOK_AND:     "かつ",
	TOK_OR:      "または",
	TOK_AT:      "@",
	TOK_PLUS:    "+",
	TOK_MINUS:   "-",
	TOK_POW:     "**",
	TOK_MUL:     "*",
	TOK_INTDIV:  "÷÷",
	TOK_DIV:     "÷",
	TOK_MOD:     "%",
	TOK_CARET:   "^",
	TOK_AMP:     "&",
	TOK_SHL:     "<<",
	TOK_SHR:     ">>",
	TOK_USHR:    ">>>",

	TOK_LPAREN:   "(",
	TOK_RPAREN:   ")",
	TOK_LBRACKET: "[",
	TOK_RBRACKET: "]",
	TOK_LBRACE:   "{",
	TOK_RBRACE:   "}",
	TOK_COLON:    ":",
	TOK_COMMA:    ",",
	TOK_BAR:      "|",

	TOK_NIWA:         "には",
	TOK_NARABA:       "ならば",
	TOK_DENAKEREBA:   "でなければ",
	TOK_ERROR_NARABA: "エラーならば",
	TOK_PREPROCESS:   "PREPROCESS",
	TOK_FUNC_ARG:     "FUNCTION_ARG_PARAMETER",

	TOK_USER_FUNC:  "USER_FUNC",
	TOK_SYS_FUNC:   "SYS_FUNC",
	TOK_USER_VAR:   "USER_VAR",
	TOK_USER_CONST: "USER_CONST",
	TOK_SYS_VAR:    "SYS_VAR",
	TOK_SYS_CONST:  "SYS_CONST",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "UNKNOWN"
}

// Enumeration of token display groups.
const (
	GroupKeyword = iota
	GroupOperator
	GroupNumber
	GroupString
	GroupComment
	GroupVariable
	GroupConstant
	GroupFunction
	GroupParameter
	GroupPunctuation
	GroupWhitespace
	GroupInvalid
	GroupWord
)

// groupNames are the display names of the token groups.
var groupNames = [...]string{
	GroupKeyword:     "keyword",
	GroupOperator:    "operator",
	GroupNumber:      "number",
	GroupString:      "string",
	GroupComment:     "comment",
	GroupVariable:    "variable",
	GroupConstant:    "constant",
	GroupFunction:    "function",
	GroupParameter:   "parameter",
	GroupPunctuation: "punctuation",
	GroupWhitespace:  "whitespace",
	GroupInvalid:     "invalid",
	GroupWord:        "word",
}

// GroupName returns the display name of a token group.
func GroupName(group int) string {
	if group >= 0 && group < len(groupNames) {
		return groupNames[group]
	}

	return "unknown"
}

// GroupOf returns the default display group of a token kind.
func GroupOf(kind Kind) int {
	switch {
	case kind == TOK_EOF || kind == TOK_EOL || kind == TOK_SPACE:
		return GroupWhitespace
	case kind == TOK_CHARACTER:
		return GroupInvalid
	case kind >= TOK_LINE_COMMENT && kind <= TOK_LINE_CONTINUE:
		return GroupComment
	case kind == TOK_NUMBER:
		return GroupNumber
	case kind >= TOK_STRING && kind <= TOK_STRING_INJECT_END:
		return GroupString
	case kind == TOK_WORD:
		return GroupWord
	case kind >= TOK_EQ && kind <= TOK_USHR:
		return GroupOperator
	case kind >= TOK_LPAREN && kind <= TOK_BAR:
		return GroupPunctuation
	case kind == TOK_FUNC_ARG:
		return GroupParameter
	case kind == TOK_USER_FUNC || kind == TOK_SYS_FUNC:
		return GroupFunction
	case kind == TOK_USER_VAR || kind == TOK_SYS_VAR:
		return GroupVariable
	case kind == TOK_USER_CONST || kind == TOK_SYS_CONST:
		return GroupConstant
	default:
		return GroupKeyword
	}
}
