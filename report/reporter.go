package report

import (
	"fmt"
	"os"
	"sync"
)

// Reporter is responsible for presenting diagnostics and other messages to the
// user of the command line tool.  The reporter respects the set log level and
// is synchronized: its methods can be safely called from multiple goroutines
// (watch mode reports from the watcher goroutine).
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The language diagnostics are rendered in.
	lang string

	// Counts of displayed errors and warnings.
	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

// rep is the global reporter instance.
var rep = &Reporter{m: &sync.Mutex{}, logLevel: LogLevelVerbose, lang: LangJa}

// InitReporter initializes the global reporter to the given log level and
// message language.
func InitReporter(logLevel int, lang string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.logLevel = logLevel
	rep.lang = lang
	rep.errorCount = 0
	rep.warningCount = 0
}

// LogLevelFromName converts a log level name into a log level.  Unknown names
// select the verbose level.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	default:
		return LogLevelVerbose
	}
}

// -----------------------------------------------------------------------------

// ReportDiagnostics displays the diagnostics of one source file.  The source
// text is used to display the offending lines.
func ReportDiagnostics(path, src string, diags []*Diagnostic) {
	rep.m.Lock()
	defer rep.m.Unlock()

	lines := splitLines(src)
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			rep.errorCount++
			if rep.logLevel > LogLevelSilent {
				displayDiagnostic(path, lines, d, rep.lang)
			}
		case SeverityWarn:
			rep.warningCount++
			if rep.logLevel > LogLevelError {
				displayDiagnostic(path, lines, d, rep.lang)
			}
		default:
			if rep.logLevel == LogLevelVerbose {
				displayDiagnostic(path, lines, d, rep.lang)
			}
		}
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(tag string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	if rep.logLevel > LogLevelSilent {
		displayStdError(tag, err)
	}
}

// ReportInfo reports an information message when the log level is verbose.
func ReportInfo(tag, msg string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayInfo(tag, fmt.Sprintf(msg, args...))
	}
}

// ReportFatal reports a fatal error and exits.  These are expected errors that
// result from invalid configuration or usage.
func ReportFatal(message string, args ...interface{}) {
	rep.m.Lock()
	if rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}
	rep.m.Unlock()

	os.Exit(1)
}

// -----------------------------------------------------------------------------

// BeginPhase displays the start of an analysis phase.  It is only shown at
// the verbose log level.
func BeginPhase(phase string) {
	if rep.logLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase displays the end of an analysis phase.
func EndPhase(success bool) {
	if rep.logLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// ReportFinished displays the concluding summary.
func ReportFinished() {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayFinished(rep.errorCount == 0, rep.errorCount, rep.warningCount)
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}

// ResetCounts clears the error and warning counts.  Watch mode calls this
// before every re-analysis.
func ResetCounts() {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount = 0
	rep.warningCount = 0
}
