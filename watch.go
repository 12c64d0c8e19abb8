package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/metrics"
	"github.com/novotemporh/cartaz/pipeline"
	"github.com/novotemporh/cartaz/templates"
)

var (
	watchOut  string
	watchCard bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <file.poster>",
	Short: "Re-render a sheet on every save",
	Long: "Render the first sheet of a .poster file and render it again each time the file " +
		"is saved. A save during a render cancels the stale pass; only the newest result is written.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "out.png", "output PNG path")
	watchCmd.Flags().BoolVar(&watchCard, "card", false, "render single posters as the square direct-message card")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	src := args[0]

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}
	parts, err := buildEngine(cfg, logger, true)
	if err != nil {
		logger.Error("failed to build engine", "error", err)
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(src)); err != nil {
		return fmt.Errorf("watch %s: %w", src, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &sheetWatcher{
		src:    src,
		out:    watchOut,
		card:   watchCard,
		engine: parts.engine,
		passes: pipeline.New[[]byte](logger, metrics.Superseded),
		logger: logger,
	}
	go w.rebuild(ctx)

	target := filepath.Clean(src)
	for {
		select {
		case <-ctx.Done():
			w.passes.Cancel()
			logger.Info("goodbye")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logger.Debug("sheet changed", "file", ev.Name, "op", ev.Op.String())
			go w.rebuild(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// sheetWatcher renders one sheet file through a pipeline so that a newer
// save supersedes a pass still in flight.
type sheetWatcher struct {
	src    string
	out    string
	card   bool
	engine *templates.Engine
	passes *pipeline.Pipeline[[]byte]
	logger *slog.Logger
}

func (w *sheetWatcher) rebuild(ctx context.Context) {
	err := w.passes.RunThen(ctx, w.pass, w.write)
	switch {
	case errors.Is(err, pipeline.ErrSuperseded), errors.Is(err, context.Canceled):
	case err != nil:
		w.logger.Error("render failed", "file", w.src, "error", err)
	}
}

// write runs only for the latest pass, so an older result never replaces
// a newer one on disk.
func (w *sheetWatcher) write(data []byte) error {
	if err := os.WriteFile(w.out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", w.out, err)
	}
	w.logger.Info("poster rendered", "out", w.out)
	return nil
}

func (w *sheetWatcher) pass(ctx context.Context) ([]byte, error) {
	entries, err := loadEntries(w.src)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("file has no sheets")
	}
	if len(entries) > 1 {
		w.logger.Debug("watching first sheet only", "sheets", len(entries))
	}
	r, err := renderPNG(ctx, w.engine, entries[0], w.card, false)
	if err != nil {
		return nil, err
	}
	return r.png, nil
}
