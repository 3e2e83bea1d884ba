package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceDelay coalesces bursts of filesystem events (editors often write
// a file several times in quick succession) into a single re-run.
const debounceDelay = 500 * time.Millisecond

// watchAndRerun blocks, re-running the analysis whenever the dataset file
// changes. It returns when interrupted.
func watchAndRerun(cmd *cobra.Command, opts analyzeOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the containing directory: watching the file itself loses the
	// watch when editors replace it via rename.
	absPath, err := filepath.Abs(opts.datasetPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	cmd.PrintErrf("%s Watching %s for changes (ctrl-c to stop)\n",
		infoStyle.Render("→"), opts.datasetPath)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != absPath {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			fire = debounce.C

		case <-fire:
			fire = nil
			cmd.PrintErrf("%s Dataset changed, re-running analysis\n", infoStyle.Render("→"))
			if err := runAnalysis(cmd, opts); err != nil {
				cmd.PrintErrf("%s Analysis failed: %v\n", infoStyle.Render("!"), err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("%s Watch error: %v\n", infoStyle.Render("!"), err)

		case <-interrupt:
			cmd.PrintErrln("Stopping watch.")
			return nil
		}
	}
}
