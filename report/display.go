package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/text/width"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// displayStdError displays a standard Go error.
func displayStdError(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// displayInfo displays an informational message.
func displayInfo(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayDiagnostic displays a diagnostic with its banner and, if it has a
// span, the offending source lines.
func displayDiagnostic(path string, lines []string, d *Diagnostic, lang string) {
	fmt.Print("\n-- ")

	label := d.Severity.String()
	switch d.Severity {
	case SeverityError:
		ErrorStyleBG.Print(label)
	case SeverityWarn:
		WarnStyleBG.Print(label)
	default:
		InfoStyleBG.Print(label)
	}

	if d.Span == nil {
		fmt.Printf(" %s\n", path)
	} else {
		fmt.Printf(" %s:%d:%d\n", path, d.Span.StartLine+1, d.Span.StartCol+1)
	}

	fmt.Println(d.Message(lang))

	if d.Span != nil && d.Span.StartLine < len(lines) {
		displaySourceText(lines, d.Span)
	}
}

// displaySourceText displays a segment of source text defined by a text span
// with carets underlining the span.
func displaySourceText(lines []string, span *TextSpan) {
	endLine := span.EndLine
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	// Calculate the maximum line number length and use it to build a padding
	// format string so line numbers line up.
	maxLineNumLen := len(strconv.Itoa(endLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for ln := span.StartLine; ln <= endLine; ln++ {
		line := []rune(lines[ln])

		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, ln+1))
		fmt.Println(displayText(line))

		startCol := 0
		if ln == span.StartLine {
			startCol = clamp(span.StartCol, len(line))
		}

		endCol := len(line)
		if ln == span.EndLine {
			endCol = clamp(span.EndCol, len(line))
		}

		// Zero-width spans still get a single caret.
		caretWidth := displayWidth(line[startCol:endCol])
		if caretWidth == 0 {
			caretWidth = 1
		}

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")
		fmt.Print(strings.Repeat(" ", displayWidth(line[:startCol])))
		ErrorColorFG.Println(strings.Repeat("^", caretWidth))
	}
}

// displayText converts tabs so that the caret line lines up with the text.
func displayText(line []rune) string {
	return strings.ReplaceAll(string(line), "\t", "    ")
}

// displayWidth calculates the terminal width of the given runes: East Asian
// wide and full-width runes take two cells.
func displayWidth(rs []rune) int {
	n := 0
	for _, r := range rs {
		switch {
		case r == '\t':
			n += 4
		default:
			switch width.LookupRune(r).Kind() {
			case width.EastAsianWide, width.EastAsianFullwidth:
				n += 2
			default:
				n++
			}
		}
	}

	return n
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	} else if n > max {
		return max
	}

	return n
}

// splitLines splits source text into lines without their terminators.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.Split(src, "\n")
}

// -----------------------------------------------------------------------------

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Normalizing")

// displayBeginPhase displays the beginning of an analysis phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}
	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	started, err := spinner.Start(phaseText)
	if err != nil {
		phaseSpinner = nil
		return
	}

	phaseSpinner = started
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of an analysis phase.
func displayEndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	padded := currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
	if success {
		phaseSpinner.Success(padded, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(padded)
	}

	phaseSpinner = nil
}

// displayFinished displays the closing summary message.
func displayFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}
}
