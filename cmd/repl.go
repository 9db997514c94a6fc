package cmd

import (
	"errors"
	"fmt"
	"io"
	"nakofront/report"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	promptMain  = "nako> "
	promptCont  = "....> "
	historyFile = ".nakofront_history"
)

// Enumeration of the REPL display modes.
const (
	replAST = iota
	replTokens
	replRawTokens
)

// runRepl runs an interactive loop that analyzes each entered snippet and
// shows its diagnostics along with its tree or tokens.
func runRepl(d *Driver) {
	fmt.Printf("nakofront %s (:help for commands)\n", versionString())

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	mode := replAST
	for {
		src, ok := readSnippet(ln)
		if !ok {
			fmt.Println()
			return
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch trimmed {
			case ":quit", ":q":
				return
			case ":ast":
				mode = replAST
			case ":tokens":
				mode = replTokens
			case ":raw":
				mode = replRawTokens
			case ":help":
				fmt.Println(":ast  show the tree (default)")
				fmt.Println(":tokens  show the statement tokens")
				fmt.Println(":raw  show the tokenizer output")
				fmt.Println(":quit  leave")
			default:
				fmt.Println("unknown command; type :help")
			}

			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		r := d.AnalyzeText("repl", src)
		report.ReportDiagnostics("repl", src, r.All())

		switch mode {
		case replTokens:
			printTokens(r, false)
		case replRawTokens:
			printTokens(r, true)
		default:
			printAST(os.Stdout, r)
		}
	}
}

// readSnippet reads one snippet.  A line that opens a block keeps reading
// until an empty line.
func readSnippet(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		} else if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				return b.String(), true
			}

			b.WriteByte('\n')
			b.WriteString(line)
			continue
		}

		b.WriteString(line)
		if !opensBlock(line) {
			return b.String(), true
		}
	}
}

// opensBlock returns whether a line leaves a block open.
func opensBlock(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "●") || strings.HasPrefix(line, "〇") {
		return true
	}

	for _, suffix := range []string{":", "：", "ここから"} {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}

	return false
}
