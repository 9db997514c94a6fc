package cmd

import (
	"nakofront/analysis"
	"nakofront/common"
	"nakofront/config"
	"nakofront/report"
	"os"

	"github.com/ComedicChimera/olive"
)

// Execute is the main entry point for the `nakofront` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("nakofront", "nakofront analyzes Nadesiko source files", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	tokensCmd := cli.AddSubcommand("tokens", "print the tokens of a source file", true)
	tokensCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	tokensCmd.AddFlag("raw", "r", "print the tokenizer output instead of the statement tokens")
	tokensCmd.AddStringArg("config", "c", "the path to the configuration file", false)

	astCmd := cli.AddSubcommand("ast", "print the syntax tree of a source file", true)
	astCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	astCmd.AddStringArg("config", "c", "the path to the configuration file", false)

	checkCmd := cli.AddSubcommand("check", "report the diagnostics of a source file", true)
	checkCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	checkCmd.AddFlag("watch", "w", "check the file again every time it changes")
	checkCmd.AddStringArg("config", "c", "the path to the configuration file", false)
	checkCmd.AddSelectorArg("runtime", "rt", "the runtime whose plugins are available", false, []string{"cnako", "wnako", "snako"})
	checkCmd.AddSelectorArg("lang", "l", "the language of diagnostic messages", false, []string{report.LangJa, report.LangEn})

	replCmd := cli.AddSubcommand("repl", "analyze snippets interactively", true)
	replCmd.AddStringArg("config", "c", "the path to the configuration file", false)

	cli.AddSubcommand("version", "print the nakofront version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	loglevel := report.LogLevelFromName(result.Arguments["loglevel"].(string))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "tokens":
		d, path := setupDriver(subResult, loglevel)
		if r, ok := analyzeOrReport(d, path); ok {
			printTokens(r, subResult.HasFlag("raw"))
		}
	case "ast":
		d, path := setupDriver(subResult, loglevel)
		if r, ok := analyzeOrReport(d, path); ok {
			printAST(os.Stdout, r)
		}
	case "check":
		execCheckCommand(subResult, loglevel)
	case "repl":
		d, _ := setupDriver(subResult, loglevel)
		runRepl(d)
	case "version":
		report.InitReporter(loglevel, report.LangJa)
		report.ReportInfo("nakofront Version", versionString())
	}
}

// execCheckCommand executes the check subcommand and handles all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel int) {
	d, path := setupDriver(result, loglevel)

	if result.HasFlag("watch") {
		if err := watchFile(d, path); err != nil {
			report.ReportFatal(err.Error())
		}
		return
	}

	d.Check(path)
	report.ReportFinished()

	if report.AnyErrors() {
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

// setupDriver loads the configuration named by a subcommand's arguments,
// applies the argument overrides, initializes the reporter, and creates the
// driver.  It returns the driver and the source file path, which is empty for
// subcommands without one.
func setupDriver(result *olive.ArgParseResult, loglevel int) (*Driver, string) {
	path, _ := result.PrimaryArg()

	confPath := ""
	if v, ok := result.Arguments["config"]; ok {
		confPath = v.(string)
	}

	var conf *config.Config
	if path == "" && confPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			report.ReportFatal("error getting working directory: %s", err.Error())
		}

		conf, err = config.Find(wd)
		if err != nil {
			report.ReportFatal(err.Error())
		}
	} else {
		conf = loadConfig(confPath, path)
	}

	if v, ok := result.Arguments["runtime"]; ok {
		conf.Analysis.Runtime = v.(string)
	}

	if v, ok := result.Arguments["lang"]; ok {
		conf.Analysis.Lang = v.(string)
	}

	report.InitReporter(loglevel, conf.Analysis.Lang)
	return NewDriver(conf), path
}

// analyzeOrReport analyzes the file at path and reports a fatal error if it
// cannot be read.  Diagnostics are reported before the result is returned.
func analyzeOrReport(d *Driver, path string) (*analysis.Result, bool) {
	r, err := d.AnalyzeFile(path)
	if err != nil {
		report.ReportFatal(err.Error())
		return nil, false
	}

	report.ReportDiagnostics(path, r.Text, r.All())
	return r, true
}

// versionString returns the version of the front end.
func versionString() string {
	return common.NakoVersion
}
