package cmd

import (
	"fmt"
	"nakofront/report"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits after a change before it
// re-analyzes, so editors that write a file in several steps trigger one run.
const debounceDelay = 100 * time.Millisecond

// watchFile checks the file at path and checks it again every time it changes
// until interrupted.  The directory is watched rather than the file because
// many editors replace files on save.
func watchFile(d *Driver, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	check := func() {
		report.ResetCounts()
		d.Check(path)
		report.ReportFinished()
		report.ReportInfo("Watch", "waiting for changes to %s", path)
	}
	check()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var timer <-chan time.Time
	for {
		select {
		case <-interrupt:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != absPath {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer = time.After(debounceDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			report.ReportStdError("Watch", err)
		case <-timer:
			timer = nil
			check()
		}
	}
}
