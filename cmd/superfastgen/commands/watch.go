package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/superfastgen/superfastgen/config"
	"github.com/superfastgen/superfastgen/errors"
	"github.com/superfastgen/superfastgen/logger"
	"github.com/superfastgen/superfastgen/pipeline"
	"github.com/superfastgen/superfastgen/watch"
)

// WatchCmd runs an initial generation pass and then keeps companions in
// sync as sources change
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch sources and regenerate on change",
	Long: `Run a full generation pass, then watch the input directory and
regenerate companions for each source as it is created, modified, or
deleted. Rapid save bursts on one file collapse into a single run.

Editing superfastgen.yaml or pubspec.yaml triggers a full rerun with the
reloaded configuration. Stop with Ctrl-C; an in-flight regeneration is
allowed to finish before exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := loadProject()
		if err != nil {
			return err
		}

		input := resolveInput(cfg, root)
		if _, err := os.Stat(input); err != nil {
			return errors.Wrapf(err, "input directory %s", input)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Config reloads swap the pipeline while file hooks may be running
		// on coordinator goroutines, so access goes through the mutex
		var mu sync.Mutex
		p := pipeline.New(cfg)
		current := func() *pipeline.Pipeline {
			mu.Lock()
			defer mu.Unlock()
			return p
		}

		report, err := p.RunBatch(ctx, input)
		if err != nil {
			return err
		}
		printReport(report)

		coord := watch.NewCoordinator(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, watch.Hooks{
			RunFile: func(path string) {
				r := pipeline.NewReport()
				current().RunFile(path, r)
				logChanges(r)
			},
			RemoveFile: func(path string) {
				if err := current().RemoveCompanions(path); err != nil {
					logger.Errorw("Failed to remove companions", "path", path, "error", err)
				}
			},
			FullRun: func() {
				// Reload so edited toggles and paths take effect
				config.Reset()
				fresh, err := config.Load()
				if err != nil {
					logger.Errorw("Failed to reload configuration", "error", err)
					return
				}
				next := pipeline.New(fresh)
				mu.Lock()
				p = next
				mu.Unlock()
				r, err := next.RunBatch(context.Background(), resolveInput(fresh, root))
				if err != nil {
					logger.Errorw("Full rerun failed", "error", err)
					return
				}
				logChanges(r)
			},
		})

		watcher, err := watch.NewWatcher(input, root, coord)
		if err != nil {
			return err
		}
		watcher.Start()
		defer func() {
			watcher.Close()
			coord.Stop()
		}()

		pterm.Info.Printf("Watching %s for changes (Ctrl-C to stop)\n", input)
		<-ctx.Done()
		pterm.Println()
		pterm.Info.Println("Shutting down watcher")
		return nil
	},
}

func logChanges(r *pipeline.Report) {
	for _, w := range r.Warnings() {
		logger.Warnw("Generation warning", "detail", w)
	}
	for _, e := range r.Errors() {
		logger.Errorw("Generation error", "detail", e)
	}
}
