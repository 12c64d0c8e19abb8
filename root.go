package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/config"
	"github.com/novotemporh/cartaz/metrics"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
	"github.com/novotemporh/cartaz/templates"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "cartaz",
	Short: "Job-opening poster renderer",
	Long:  "cartaz turns job-opening records into brand-styled PNG posters, from the command line or over HTTP.",
	// Errors are logged by each command.
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: CARTAZ_CONFIG env var or ./cartaz.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// loadConfig resolves the config path and parses it.
// Priority: --config > CARTAZ_CONFIG > ./cartaz.yaml > built-in defaults.
func loadConfig(logger *slog.Logger) (*config.Config, error) {
	cfg, path, err := config.LoadResolved(cfgPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logger.Debug("no config file, using defaults")
	} else {
		logger.Debug("config loaded", "path", path)
	}
	return cfg, nil
}

// engineParts is everything a command needs to render.
type engineParts struct {
	engine *templates.Engine
	loader *assets.Loader
}

// buildEngine wires fonts, brand assets and the illustration loader. local
// allows file paths as illustration sources; only commands that take their
// input from the operator set it.
func buildEngine(cfg *config.Config, logger *slog.Logger, local bool) (*engineParts, error) {
	book, err := canvasrenderer.NewFontBook(logger)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	if cfg.Render.FontDir != "" {
		if err := book.LoadDir(cfg.Render.FontDir); err != nil {
			return nil, err
		}
	}
	if cfg.Render.FontFamily != "" && !book.Has(cfg.Render.FontFamily) {
		logger.Warn("font family not loaded, falling back to built-in", "family", cfg.Render.FontFamily)
	}

	store := assets.NewStore(cfg.Render.AssetsDir, book, logger)
	if err := store.Warm(); err != nil {
		logger.Warn("brand assets incomplete", "err", err)
	}
	var opts []assets.LoaderOption
	if local {
		opts = append(opts, assets.WithLocalFiles())
	}
	loader := assets.NewLoader(nil, cfg.Render.DecodeTimeout, logger, opts...)

	engine := templates.NewEngine(templates.Options{
		Fonts:    book,
		Assets:   store,
		Loader:   loader,
		Logger:   logger,
		Observer: metrics.RenderObserver{},
		Family:   cfg.Render.FontFamily,
	})
	return &engineParts{engine: engine, loader: loader}, nil
}
