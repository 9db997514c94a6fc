package cmd

import (
	"fmt"
	"nakofront/analysis"
	"nakofront/common"
	"nakofront/config"
	"nakofront/depm"
	"nakofront/report"
	"os"
	"path/filepath"
)

// Driver holds the state shared by every analysis the CLI runs: the project
// configuration, the plugin universe, and the analyzed import modules.
type Driver struct {
	// conf is the project configuration.
	conf *config.Config

	// uni is the universe of loaded plugins.
	uni *depm.Universe

	// imports are the analyzed modules listed in the configuration.  They are
	// analyzed once, in configuration order, so a module can import the ones
	// listed before it.
	imports []*analysis.Result
}

// NewDriver creates a driver for the given configuration and loads every
// plugin and module it lists.  Loading errors are reported but do not stop
// the driver.
func NewDriver(conf *config.Config) *Driver {
	d := &Driver{conf: conf, uni: depm.NewUniverse()}

	for _, ref := range conf.Plugins {
		if err := d.loadPlugin(ref); err != nil {
			report.ReportStdError("Plugin", err)
		}
	}

	env := d.newEnv()
	for _, ref := range conf.Modules {
		src, err := os.ReadFile(conf.Resolve(ref.Path))
		if err != nil {
			report.ReportStdError("Module", fmt.Errorf("loading module %s: %w", ref.Name, err))
			continue
		}

		d.imports = append(d.imports, analysis.AnalyzeImport(ref.Name, string(src), env, d.options()))
	}

	return d
}

// loadPlugin reads and decodes a plugin command table and adds it to the
// universe.
func (d *Driver) loadPlugin(ref config.PluginRef) error {
	text, err := os.ReadFile(d.conf.Resolve(ref.Path))
	if err != nil {
		return fmt.Errorf("loading plugin %s: %w", ref.Name, err)
	}

	things, err := depm.ParseCommandTable(ref.Name, string(text))
	if err != nil {
		return err
	}

	d.uni.AddPlugin(ref.Name, things)
	return nil
}

// newEnv creates an analysis environment for the configured runtime with every
// configured plugin enabled and every analyzed module importable.
func (d *Driver) newEnv() *depm.Env {
	env := depm.NewEnv(d.uni, d.conf.Analysis.Runtime)

	for _, ref := range d.conf.Plugins {
		if d.uni.HasPlugin(ref.Name) {
			env.EnablePlugin(ref.Name)
		}
	}

	for _, r := range d.imports {
		env.AddImport(r.Module)
	}

	return env
}

// options returns the analysis options of the configuration.
func (d *Driver) options() analysis.Options {
	return analysis.Options{
		MaxErrors:       d.conf.Analysis.MaxErrors,
		IndentSemantics: d.conf.Analysis.IndentSemantics,
	}
}

// AnalyzeText analyzes source text as the module of the given name.
func (d *Driver) AnalyzeText(name, text string) *analysis.Result {
	return analysis.Analyze(name, text, d.newEnv(), d.options())
}

// AnalyzeFile reads and analyzes the source file at path.
func (d *Driver) AnalyzeFile(path string) (*analysis.Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	return d.AnalyzeText(common.ModuleNameFromPath(path), string(src)), nil
}

// Check analyzes the file at path and reports its diagnostics.  It returns
// whether analysis found no errors.
func (d *Driver) Check(path string) bool {
	report.BeginPhase("Analyzing")
	r, err := d.AnalyzeFile(path)
	if err != nil {
		report.EndPhase(false)
		report.ReportStdError("File", err)
		return false
	}
	report.EndPhase(!r.HasErrors())

	report.ReportDiagnostics(path, r.Text, r.All())
	return !r.HasErrors()
}

// -----------------------------------------------------------------------------

// loadConfig loads the configuration at path or, if path is empty, the one in
// the directory of the source file.  It falls back to the default
// configuration when no file exists.
func loadConfig(path, srcPath string) *config.Config {
	var conf *config.Config
	var err error
	if path != "" {
		conf, err = config.Load(path)
	} else {
		conf, err = config.Find(filepath.Dir(srcPath))
	}

	if err != nil {
		report.ReportFatal(err.Error())
	}

	return conf
}
