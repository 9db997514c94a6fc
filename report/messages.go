package report

// Supported catalog languages.
const (
	LangJa = "ja"
	LangEn = "en"
)

// catalogs maps a language to its message templates.  Templates reference
// diagnostic arguments by name: `{name}`.
var catalogs = map[string]map[string]string{
	LangJa: {
		"invalidChar":            "不正な文字「{char}」があります。",
		"unclosedString":         "文字列が「{close}」で閉じられていません。",
		"unclosedInterpolation":  "文字列中の展開「{open}」が閉じられていません。",
		"unclosedBlockComment":   "範囲コメントが閉じられていません。",
		"unknownDirective":       "不明なプリプロセス命令「{name}」です。",
		"directiveNotTerminated": "プリプロセス命令「{name}」の後ろには何も書けません。",
		"deprecatedAsync":        "「!非同期モード」は非推奨です。",
		"unsupportedDncl":        "「{name}」には対応していません。",
		"importNotString":        "取り込むファイル名は文字列で指定してください。",
		"invalidExportDefault":   "モジュール公開既定値には「公開」か「非公開」を指定してください。",
		"duplicateParams":        "関数「{name}」の引数が二重に定義されています。",
		"missingFuncName":        "関数名がありません。",
		"unclosedParams":         "関数の引数リストが閉じられていません。",
		"invalidAttribute":       "不明な属性「{name}」です。",
		"redefinedFunc":          "関数「{name}」はすでに定義されています。",
		"unknownWord":            "「{name}」が見つかりません。{hint}",
		"missingNaraba":          "もし文の条件の後ろに「ならば」がないか、条件が複雑すぎます。",
		"missingKokomade":        "「{name}」に対応する「ここまで」がありません。",
		"kokomadeInIndentMode":   "インデント構文では「ここまで」は使えません。",
		"unexpectedKokomade":     "対応する構文のない「ここまで」があります。",
		"unusedStack":            "{words}が解決していません。{hint}",
		"tooFewArgs":             "関数「{name}」の引数が{count}個足りません。",
		"unexpectedToken":        "予期しない「{name}」があります。",
		"unexpectedEOL":          "文が途中で終わっています。",
		"assignToFunction":       "関数「{name}」には代入できません。",
		"noBlockToBreak":         "「{name}」は繰り返しの中でのみ使えます。",
		"missingLoopVar":         "繰り返しの範囲の指定が不足しています。",
		"missingCloseParen":      "「{open}」に対応する「{close}」がありません。",
		"missingCondition":       "「{name}」の条件がありません。",
		"internal":               "内部エラー: {detail}",
	},
	LangEn: {
		"invalidChar":            "invalid character `{char}`",
		"unclosedString":         "string literal is not closed by `{close}`",
		"unclosedInterpolation":  "interpolation `{open}` inside a string is not closed",
		"unclosedBlockComment":   "unclosed block comment",
		"unknownDirective":       "unknown preprocessor directive `{name}`",
		"directiveNotTerminated": "preprocessor directive `{name}` must be followed by end of line",
		"deprecatedAsync":        "`!非同期モード` is deprecated",
		"unsupportedDncl":        "`{name}` is not supported",
		"importNotString":        "the imported file name must be a string",
		"invalidExportDefault":   "default export visibility must be `公開` or `非公開`",
		"duplicateParams":        "parameters of function `{name}` are declared twice",
		"missingFuncName":        "missing function name",
		"unclosedParams":         "function parameter list is not closed",
		"invalidAttribute":       "unknown attribute `{name}`",
		"redefinedFunc":          "function `{name}` is already defined",
		"unknownWord":            "unknown word `{name}`{hint}",
		"missingNaraba":          "missing `ならば` after the condition of `もし`, or the condition is too complex",
		"missingKokomade":        "missing `ここまで` for `{name}`",
		"kokomadeInIndentMode":   "cannot use closing keyword `ここまで` in indent mode",
		"unexpectedKokomade":     "`ここまで` without a matching construct",
		"unusedStack":            "unresolved words: {words}{hint}",
		"tooFewArgs":             "function `{name}` is missing {count} arguments",
		"unexpectedToken":        "unexpected `{name}`",
		"unexpectedEOL":          "statement ends unexpectedly",
		"assignToFunction":       "cannot assign to function `{name}`",
		"noBlockToBreak":         "`{name}` can only be used inside a loop",
		"missingLoopVar":         "the loop range is incomplete",
		"missingCloseParen":      "missing `{close}` for `{open}`",
		"missingCondition":       "missing condition for `{name}`",
		"internal":               "internal error: {detail}",
	},
}

// HasMessage returns whether the message id exists in the Japanese catalog.
func HasMessage(id string) bool {
	_, ok := catalogs[LangJa][id]
	return ok
}
