package config

import (
	"errors"
	"fmt"
	"nakofront/common"
	"nakofront/depm"
	"nakofront/report"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// Config is a project configuration as decoded from `nako3.toml`.
type Config struct {
	Analysis *AnalysisConfig `toml:"analysis"`
	Plugins  []PluginRef     `toml:"plugins"`
	Modules  []ModuleRef     `toml:"modules"`

	// Root is the directory enclosing the configuration file.  Relative paths
	// of plugins and modules are resolved against it.
	Root string `toml:"-"`
}

// AnalysisConfig holds the settings of every analysis run.
type AnalysisConfig struct {
	MaxErrors       int    `toml:"max-errors"`
	Runtime         string `toml:"runtime"`
	Lang            string `toml:"lang"`
	IndentSemantics bool   `toml:"indent-semantics"`
}

// PluginRef names a plugin command table file.
type PluginRef struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// ModuleRef names a source module whose exported symbols other modules may
// import.
type ModuleRef struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Analysis: &AnalysisConfig{
			MaxErrors: report.DefaultMaxDiagnostics,
			Runtime:   common.DefaultRuntime,
			Lang:      report.LangJa,
		},
		Root: ".",
	}
}

// Load loads and validates the configuration file at path.  Missing settings
// take their default values.
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	conf, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	conf.Root = filepath.Dir(path)
	return conf, nil
}

// Find loads the configuration file in dir if one exists and the default
// configuration otherwise.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, common.ConfigFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		conf := Default()
		conf.Root = dir
		return conf, nil
	}

	return Load(path)
}

// Parse decodes and validates the contents of a configuration file.
func Parse(buff []byte) (*Config, error) {
	conf := Default()
	if err := toml.Unmarshal(buff, conf); err != nil {
		return nil, err
	}

	if err := validate(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

// validate checks the decoded configuration and fills in the defaults of
// settings left empty.
func validate(conf *Config) error {
	if conf.Analysis == nil {
		conf.Analysis = Default().Analysis
	}

	a := conf.Analysis
	if a.MaxErrors < 0 {
		return errors.New("max-errors must not be negative")
	} else if a.MaxErrors == 0 {
		a.MaxErrors = report.DefaultMaxDiagnostics
	}

	if a.Runtime == "" {
		a.Runtime = common.DefaultRuntime
	} else if !depm.IsRuntime(a.Runtime) {
		return fmt.Errorf("unknown runtime `%s`", a.Runtime)
	}

	switch a.Lang {
	case "":
		a.Lang = report.LangJa
	case report.LangJa, report.LangEn:
	default:
		return fmt.Errorf("unknown message language `%s`", a.Lang)
	}

	seen := make(map[string]struct{})
	for _, p := range conf.Plugins {
		if p.Name == "" || p.Path == "" {
			return errors.New("every plugin must have a name and a path")
		}

		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("plugin `%s` is listed more than once", p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	for i := range conf.Modules {
		m := &conf.Modules[i]
		if m.Path == "" {
			return errors.New("every module must have a path")
		}

		if m.Name == "" {
			m.Name = common.ModuleNameFromPath(m.Path)
		}
	}

	return nil
}

// Resolve returns path relative to the configuration's root directory.
func (conf *Config) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(conf.Root, path)
}
