package depm

import (
	"fmt"
	"nakofront/common"
)

// systemTable is the command table of the built-in system plugin.
const systemTable = `
meta: {type: const, value: {pluginName: plugin_system, nakoVersion: 3.4.0}}
それ: {type: var, value: "", desc: 直前の結果}
対象: {type: var, value: "", desc: 反復中の値}
対象キー: {type: var, value: "", desc: 反復中のキー}
回数: {type: var, value: 0, desc: 繰り返しの回数}
永遠: {type: const, value: 1, desc: 常に真}
改行: {type: const, value: "\n", desc: 改行文字}
タブ: {type: const, value: "\t", desc: タブ文字}
空: {type: const, value: "", desc: 空文字列}
はい: {type: const, value: 1, desc: 真}
いいえ: {type: const, value: 0, desc: 偽}
真: {type: const, value: 1, desc: 真}
偽: {type: const, value: 0, desc: 偽}
PI: {type: const, value: 3.141592653589793, desc: 円周率}
表示: {type: func, josi: [[を, と, の]], args: [S], desc: Sを表示する}
言う: {type: func, josi: [[を, と, の]], args: [S], desc: Sを表示する}
足す: {type: func, josi: [[と, に], [を]], args: [A, B], pure: true, desc: AとBを足す}
引く: {type: func, josi: [[から], [を]], args: [A, B], pure: true, desc: AからBを引く}
掛ける: {type: func, josi: [[と, に], [を]], args: [A, B], pure: true, desc: AとBを掛ける}
割る: {type: func, josi: [[を], [で]], args: [A, B], pure: true, desc: AをBで割る}
連続加算: {type: func, josi: [[を], [に, と]], args: [A, B], pure: true, isVariableJosi: true, desc: 値を順に足す}
以上: {type: func, josi: [[が], [""]], args: [A, B], pure: true, desc: AがB以上}
以下: {type: func, josi: [[が], [""]], args: [A, B], pure: true, desc: AがB以下}
未満: {type: func, josi: [[が], [""]], args: [A, B], pure: true, desc: AがB未満}
超: {type: func, josi: [[が], [""]], args: [A, B], pure: true, desc: AがBより大きい}
等しい: {type: func, josi: [[が], [と]], args: [A, B], pure: true, desc: AがBと等しい}
文字数: {type: func, josi: [[の]], args: [S], pure: true, desc: Sの文字数}
文字列分解: {type: func, josi: [[を, の, で]], args: [S], pure: true, desc: Sを一文字ずつ分解}
配列カスタムソート: {type: func, josi: [[で], [の, を]], args: [F, A], desc: 関数Fで配列Aを並べ替える}
秒待機: {type: func, josi: [[""]], args: [N], asyncFn: true, desc: N秒待機する}
秒後: {type: func, josi: [[を], [""]], args: [F, N], desc: N秒後に関数Fを実行する}
`

// systemThings parses the built-in system command table.
func systemThings() []*DeclaredThing {
	things, err := ParseCommandTable(common.SystemPluginName, systemTable)
	if err != nil {
		panic(fmt.Sprintf("invalid system command table: %s", err))
	}

	return things
}

// Sore is the declaration of the implicit variable `それ` which holds the result
// of the previous sentence.
var Sore = &DeclaredThing{
	Kind:       ThingVar,
	Name:       "それ",
	Key:        "それ",
	Module:     common.SystemPluginName,
	Origin:     OriginSystem,
	TokenIndex: -1,
	Plugin:     common.SystemPluginName,
	IsExport:   true,
	Hint:       "直前の結果",
}
