package cmd

import (
	"bytes"
	"nakofront/common"
	"nakofront/config"
	"nakofront/report"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	report.InitReporter(report.LogLevelSilent, report.LangEn)
}

func TestOpensBlock(t *testing.T) {
	open := []string{"●挨拶とは", "〇(Aを)倍とは", "もしAが1ならば:", "3回：", "ここから", "  Aが1の間 ここから"}
	for _, line := range open {
		assert.True(t, opensBlock(line), line)
	}

	closed := []string{"Aを表示", "A=1", "", "ここまで"}
	for _, line := range closed {
		assert.False(t, opensBlock(line), line)
	}
}

func TestTokenTable(t *testing.T) {
	d := NewDriver(config.Default())
	r := d.AnalyzeText("main", "Aは1")

	data := tokenTable(r.Tokens)
	require.Len(t, data, len(r.Tokens)+1)
	assert.Equal(t, "Kind", data[0][2])

	// the `は` split off the word is synthetic
	assert.Equal(t, "\"は\"*", data[2][4])
	assert.Equal(t, "1:1", data[1][1])
}

func TestPrintAST(t *testing.T) {
	d := NewDriver(config.Default())
	r := d.AnalyzeText("main", "●挨拶とは\n「a」を表示\nここまで")

	var buf bytes.Buffer
	printAST(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "DefFunc 挨拶")
	assert.Contains(t, out, "scope 0: [0, ")
	assert.Contains(t, out, "scope 1: [")
}

func TestDriverLoadsProject(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte("挨拶する: {type: func, josi: []}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.nako3"), []byte("●(Aを)倍とは\n  A*2で戻る\nここまで\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte(`
[[plugins]]
name = "plugin_extra"
path = "extra.yaml"

[[modules]]
path = "util.nako3"
`), 0o644))

	conf, err := config.Find(dir)
	require.NoError(t, err)

	d := NewDriver(conf)
	require.Len(t, d.imports, 1)
	assert.False(t, d.imports[0].HasErrors())

	r := d.AnalyzeText("main", "!「util.nako3」を取り込む\n挨拶する\n3を倍して表示")
	assert.False(t, r.HasErrors(), r.All())
}

func TestDriverCheck(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.nako3")
	bad := filepath.Join(dir, "bad.nako3")
	require.NoError(t, os.WriteFile(good, []byte("「a」を表示\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("Xを表示\n"), 0o644))

	d := NewDriver(config.Default())
	assert.True(t, d.Check(good))
	assert.False(t, d.Check(bad))
	assert.False(t, d.Check(filepath.Join(dir, "missing.nako3")))
}
