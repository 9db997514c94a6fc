package syntax

import (
	"sort"
	"unicode/utf8"
)

// scanner identifies the sub-scanner a rule delegates to.
type scanner int

// Enumeration of sub-scanners.
const (
	scanNone scanner = iota
	scanSpace
	scanLineComment
	scanRangeComment
	scanNumber
	scanString
	scanTemplate
	scanBracketWord
	scanWord
)

// rule is a single entry of the rule table.  A rule matches either one of its
// literal patterns or, if it has none, its match function.
type rule struct {
	// The literal patterns of the rule.  They are tried in order.
	patterns []string

	// The match function: it returns the number of runes matched at the
	// lexer's position or zero.
	match func(l *lexer) int

	// The token kind the rule produces.
	kind Kind

	// The sub-scanner the rule delegates to once its pattern is consumed.
	scan scanner

	// The closing delimiter of comments, strings, and bracketed words.
	close string

	// Whether or not a trailing particle is read after the rule's text.
	josi bool
}

// rules is the priority-ordered rule table: the first rule that matches wins.
var rules = []*rule{
	{patterns: []string{"\r\n", "\n"}, kind: TOK_EOL},
	{patterns: []string{";", "；", "。"}, kind: TOK_EOL},
	{match: matchSpace, kind: TOK_SPACE, scan: scanSpace},
	{match: matchLineContinue, kind: TOK_LINE_CONTINUE},

	{patterns: []string{"#", "//", "※", "＃", "／／"}, kind: TOK_LINE_COMMENT, scan: scanLineComment},
	{patterns: []string{"/*"}, kind: TOK_RANGE_COMMENT, scan: scanRangeComment, close: "*/"},
	{patterns: []string{"／＊"}, kind: TOK_RANGE_COMMENT, scan: scanRangeComment, close: "＊／"},

	{patterns: []string{"●テスト:", "●テスト："}, kind: TOK_DEF_TEST},
	{patterns: []string{"●", "〇"}, kind: TOK_DEF_FUNC},
	{match: matchLineHeadStar, kind: TOK_DEF_FUNC},

	{match: matchNumber, kind: TOK_NUMBER, scan: scanNumber, josi: true},

	{patterns: []string{"ここから"}, kind: TOK_KOKOKARA},
	{patterns: []string{"ここまで", "💧"}, kind: TOK_KOKOMADE},
	{patterns: []string{"もしも", "もし"}, kind: TOK_MOSHI},
	{patterns: []string{"違えば"}, kind: TOK_CHIGAEBA},
	{match: matchDeclPrefix("変数"), kind: TOK_HENSUU},
	{match: matchDeclPrefix("定数"), kind: TOK_TEISUU},

	{patterns: []string{">>>"}, kind: TOK_USHR},
	{patterns: []string{">>"}, kind: TOK_SHR},
	{patterns: []string{"<<"}, kind: TOK_SHL},
	{patterns: []string{"==="}, kind: TOK_EQEQEQ},
	{patterns: []string{"!=="}, kind: TOK_NOTEQEQ},
	{patterns: []string{"≧", ">=", "=>"}, kind: TOK_GTEQ},
	{patterns: []string{"≦", "<=", "=<"}, kind: TOK_LTEQ},
	{patterns: []string{"≠", "<>", "!="}, kind: TOK_NOTEQ},
	{patterns: []string{"←"}, kind: TOK_ARROW},
	{patterns: []string{"=="}, kind: TOK_EQEQ},
	{patterns: []string{"=", "＝"}, kind: TOK_EQ},
	{patterns: []string{"!", "！", "💡"}, kind: TOK_NOT},
	{patterns: []string{">", "＞"}, kind: TOK_GT},
	{patterns: []string{"<", "＜"}, kind: TOK_LT},
	{patterns: []string{"かつ", "&&"}, kind: TOK_AND},
	{patterns: []string{"または", "||"}, kind: TOK_OR},
	{patterns: []string{"@", "＠"}, kind: TOK_AT},
	{patterns: []string{"+", "＋"}, kind: TOK_PLUS},
	{patterns: []string{"-", "−", "－"}, kind: TOK_MINUS},
	{patterns: []string{"××", "**"}, kind: TOK_POW},
	{patterns: []string{"×", "*", "＊"}, kind: TOK_MUL},
	{patterns: []string{"÷÷"}, kind: TOK_INTDIV},
	{patterns: []string{"÷", "/", "／"}, kind: TOK_DIV},
	{patterns: []string{"%", "％"}, kind: TOK_MOD},
	{patterns: []string{"^"}, kind: TOK_CARET},
	{patterns: []string{"&", "＆"}, kind: TOK_AMP},

	{patterns: []string{"(", "（"}, kind: TOK_LPAREN},
	{patterns: []string{")", "）"}, kind: TOK_RPAREN, josi: true},
	{patterns: []string{"[", "［"}, kind: TOK_LBRACKET},
	{patterns: []string{"]", "］"}, kind: TOK_RBRACKET, josi: true},
	{patterns: []string{"{関数}", "｛関数｝"}, kind: TOK_FUNC_POINTER},
	{patterns: []string{"{", "｛"}, kind: TOK_LBRACE},
	{patterns: []string{"}", "｝"}, kind: TOK_RBRACE, josi: true},

	{patterns: []string{"「"}, kind: TOK_STRING_EX, scan: scanTemplate, close: "」", josi: true},
	{patterns: []string{"\""}, kind: TOK_STRING_EX, scan: scanTemplate, close: "\"", josi: true},
	{patterns: []string{"“"}, kind: TOK_STRING_EX, scan: scanTemplate, close: "”", josi: true},
	{patterns: []string{"🌴"}, kind: TOK_STRING_EX, scan: scanTemplate, close: "🌴", josi: true},
	{patterns: []string{"『"}, kind: TOK_STRING, scan: scanString, close: "』", josi: true},
	{patterns: []string{"'"}, kind: TOK_STRING, scan: scanString, close: "'", josi: true},
	{patterns: []string{"🌿"}, kind: TOK_STRING, scan: scanString, close: "🌿", josi: true},

	{patterns: []string{":", "："}, kind: TOK_COLON},
	{patterns: []string{",", "、", "，"}, kind: TOK_COMMA},
	{patterns: []string{"|", "｜"}, kind: TOK_BAR},

	{patterns: []string{"【"}, kind: TOK_WORD, scan: scanBracketWord, close: "】", josi: true},
	{patterns: []string{"《"}, kind: TOK_WORD, scan: scanBracketWord, close: "》", josi: true},

	{match: matchWord, kind: TOK_WORD, scan: scanWord, josi: true},
}

// rulePatterns stores the rune form of every rule pattern.
var rulePatterns = make(map[*rule][][]rune)

func init() {
	for _, r := range rules {
		for _, p := range r.patterns {
			rulePatterns[r] = append(rulePatterns[r], []rune(p))
		}
	}
}

// -----------------------------------------------------------------------------

func matchSpace(l *lexer) int {
	n := 0
	for l.cur.pos+n < l.limit && isSpace(l.src[l.cur.pos+n]) {
		n++
	}

	return n
}

func matchLineContinue(l *lexer) int {
	if l.peek() != '_' {
		return 0
	}

	switch l.peekAt(1) {
	case '\n':
		return 2
	case '\r':
		if l.peekAt(2) == '\n' {
			return 3
		}
	}

	return 0
}

func matchLineHeadStar(l *lexer) int {
	if l.lineHead && (l.peek() == '*' || l.peek() == '＊') && l.peekAt(1) != '*' {
		return 1
	}

	return 0
}

func matchNumber(l *lexer) int {
	if isDigit(narrow(l.peek())) {
		return 1
	}

	return 0
}

func matchWord(l *lexer) int {
	if isWordChar(l.peek()) {
		return 1
	}

	return 0
}

// matchDeclPrefix matches a declaration keyword written directly in front of
// an alphabetic name, eg. `変数A`.  Other words starting with the keyword are
// left to the word scanner.
func matchDeclPrefix(prefix string) func(l *lexer) int {
	prs := []rune(prefix)
	return func(l *lexer) int {
		if !l.hasPrefix(prs) {
			return 0
		}

		r := narrow(l.peekAt(len(prs)))
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return len(prs)
		}

		return 0
	}
}

// -----------------------------------------------------------------------------

// josiEntry is a single particle of the particle table.
type josiEntry struct {
	text  []rune
	kind  int
	chars int
}

// Enumeration of particle kinds.
const (
	josiNormal = iota
	josiTarareba
	josiRemoved
)

// josiWords are the ordinary particles.
var josiWords = []string{
	"について", "くらい", "なのか", "までを", "までの", "による", "とは", "から",
	"まで", "だけ", "より", "ほど", "など", "いて", "えて", "きて", "けて", "して",
	"って", "にて", "みて", "めて", "ねて", "では", "には", "は~", "は～", "んで",
	"ずつ", "は", "を", "に", "へ", "で", "と", "が", "の",
}

// tararebaWords are the conditional particles.
var tararebaWords = []string{"でなければ", "なければ", "ならば", "なら", "たら", "れば"}

// removedWords are the particles that are deleted outright.
var removedWords = []string{"こと", "である", "です", "します", "でした"}

// josiTable is every particle sorted longest first.
var josiTable []josiEntry

func init() {
	add := func(words []string, kind int) {
		for _, w := range words {
			josiTable = append(josiTable, josiEntry{text: []rune(w), kind: kind, chars: utf8.RuneCountInString(w)})
		}
	}

	add(josiWords, josiNormal)
	add(tararebaWords, josiTarareba)
	add(removedWords, josiRemoved)

	sort.SliceStable(josiTable, func(i, j int) bool {
		return josiTable[i].chars > josiTable[j].chars
	})
}

// IsTararebaJosi returns whether the particle is a conditional particle.
func IsTararebaJosi(josi string) bool {
	for _, w := range tararebaWords {
		if w == josi {
			return true
		}
	}

	return false
}

// renbunJosi are the particles of the te-form that chain a call into the next
// sentence.
var renbunJosi = map[string]struct{}{
	"いて": {}, "えて": {}, "きて": {}, "けて": {}, "して": {}, "って": {},
	"にて": {}, "みて": {}, "めて": {}, "ねて": {}, "んで": {},
}

// IsRenbunJosi returns whether the particle chains sentences.
func IsRenbunJosi(josi string) bool {
	_, ok := renbunJosi[josi]
	return ok
}

// -----------------------------------------------------------------------------

// reservedWords maps the lookup keys of reserved words to their kinds.
var reservedWords = map[string]Kind{
	"回":            TOK_KAI,
	"回繰返":          TOK_KAI,
	"間":            TOK_AIDA,
	"繰返":           TOK_KURIKAESU,
	"増繰返":          TOK_ZOU_KURIKAESU,
	"減繰返":          TOK_GEN_KURIKAESU,
	"後判定":          TOK_ATOHANTEI,
	"反復":           TOK_HANPUKU,
	"抜":            TOK_NUKERU,
	"続":            TOK_TSUZUKERU,
	"戻":            TOK_MODORU,
	"先":            TOK_SAKINI,
	"次":            TOK_TSUGINI,
	"代入":           TOK_DAINYU,
	"定":            TOK_SADAMERU,
	"実行速度優先":       TOK_SPEED_MODE,
	"パフォーマンスモニタ適用": TOK_PERFORMANCE_MONITOR,
	"逐次実行":         TOK_CHIKUJI,
	"条件分岐":         TOK_JOUKEN_BUNKI,
	"増":            TOK_ZOU,
	"減":            TOK_GEN,
	"変数":           TOK_HENSUU,
	"定数":           TOK_TEISUU,
	"エラー監視":        TOK_ERROR_KANSHI,
	"エラー":          TOK_ERROR,
	"取込":           TOK_TORIKOMU,
	"厳チェック":        TOK_DIRECTIVE,
	"非同期モード":       TOK_DIRECTIVE,
	"DNCLモード":      TOK_DIRECTIVE,
	"DNCL2モード":     TOK_DIRECTIVE,
	"インデント構文":      TOK_DIRECTIVE,
	"モジュール公開既定値":   TOK_DIRECTIVE,
}

// ReservedKind returns the kind of a reserved word by its lookup key.
func ReservedKind(key string) (Kind, bool) {
	kind, ok := reservedWords[key]
	return kind, ok
}

// -----------------------------------------------------------------------------

// unitWords are the measurement words absorbed into a preceding number.
var unitWords = []string{
	"ドル", "円", "元", "個", "つ", "本", "冊", "才", "歳", "匹", "枚", "皿", "羽",
	"人", "件", "行", "列", "台",
}

// cssUnits are the CSS units that turn a number into a string.  Longer units
// come first.
var cssUnits = []string{"deg", "rem", "em", "px", "pt", "vh", "vw", "ms", "s"}
