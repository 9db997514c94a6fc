package config

import (
	"nakofront/common"
	"nakofront/report"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
[analysis]
max-errors = 20
runtime = "wnako"
lang = "en"
indent-semantics = true

[[plugins]]
name = "plugin_turtle"
path = "plugins/turtle.yaml"

[[modules]]
path = "lib/util.nako3"

[[modules]]
name = "共通"
path = "/abs/common.nako3"
`

func TestParseFull(t *testing.T) {
	conf, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, &AnalysisConfig{
		MaxErrors:       20,
		Runtime:         "wnako",
		Lang:            report.LangEn,
		IndentSemantics: true,
	}, conf.Analysis)

	assert.Equal(t, []PluginRef{{Name: "plugin_turtle", Path: "plugins/turtle.yaml"}}, conf.Plugins)

	require.Len(t, conf.Modules, 2)
	assert.Equal(t, "util", conf.Modules[0].Name)
	assert.Equal(t, "共通", conf.Modules[1].Name)
}

func TestParseDefaults(t *testing.T) {
	for _, text := range []string{"", "[analysis]\n", "[analysis]\nmax-errors = 0\n"} {
		conf, err := Parse([]byte(text))
		require.NoError(t, err, text)

		assert.Equal(t, report.DefaultMaxDiagnostics, conf.Analysis.MaxErrors, text)
		assert.Equal(t, common.DefaultRuntime, conf.Analysis.Runtime, text)
		assert.Equal(t, report.LangJa, conf.Analysis.Lang, text)
		assert.False(t, conf.Analysis.IndentSemantics, text)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		text, msg string
	}{
		{"[analysis]\nmax-errors = -1\n", "max-errors must not be negative"},
		{"[analysis]\nruntime = \"deno\"\n", "unknown runtime `deno`"},
		{"[analysis]\nlang = \"fr\"\n", "unknown message language `fr`"},
		{"[[plugins]]\nname = \"a\"\n", "every plugin must have a name and a path"},
		{"[[modules]]\nname = \"a\"\n", "every module must have a path"},
		{"[[plugins]]\nname = \"a\"\npath = \"a.yaml\"\n[[plugins]]\nname = \"a\"\npath = \"b.yaml\"\n", "plugin `a` is listed more than once"},
	}

	for _, c := range cases {
		_, err := Parse([]byte(c.text))
		assert.EqualError(t, err, c.msg, c.text)
	}
}

func TestParseInvalidToml(t *testing.T) {
	_, err := Parse([]byte("[analysis"))
	assert.Error(t, err)
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, common.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, dir, conf.Root)
	assert.Equal(t, filepath.Join(dir, "plugins/turtle.yaml"), conf.Resolve(conf.Plugins[0].Path))
	assert.Equal(t, "/abs/common.nako3", conf.Resolve(conf.Modules[1].Path))
}

func TestLoadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, common.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[analysis]\nlang = \"fr\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()

	conf, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, conf.Root)
	assert.Equal(t, Default().Analysis, conf.Analysis)

	require.NoError(t, os.WriteFile(filepath.Join(dir, common.ConfigFileName), []byte("[analysis]\nruntime = \"snako\"\n"), 0o644))

	conf, err = Find(dir)
	require.NoError(t, err)
	assert.Equal(t, "snako", conf.Analysis.Runtime)
}
