package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/novotemporh/cartaz/config"
	"github.com/novotemporh/cartaz/metrics"
	"github.com/novotemporh/cartaz/server"
	"github.com/novotemporh/cartaz/share"
	"github.com/novotemporh/cartaz/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Serve rendering, preview sessions, sharing, framing and job requests over HTTP; blocks until SIGINT/SIGTERM.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	parts, err := buildEngine(cfg, logger, false)
	if err != nil {
		logger.Error("failed to build engine", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{
		Engine:          parts.engine,
		Loader:          parts.loader,
		Sharer:          setupSharer(ctx, cfg.Share, logger),
		Caption:         cfg.Share.Caption,
		CompiledCaption: cfg.Share.CompiledCaption,
		Logger:          logger,
		OnStale:         metrics.Superseded,
	}
	if cfg.Store.Path != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "path", cfg.Store.Path, "error", err)
			return err
		}
		defer sqlStore.Close()
		deps.Store = sqlStore
		logger.Info("request store opened", "path", cfg.Store.Path)
	}

	timeouts := server.Timeouts{
		Read:     cfg.Server.ReadTimeout,
		Write:    cfg.Server.WriteTimeout,
		Shutdown: cfg.Server.ShutdownTimeout,
	}
	if err := server.New(deps).Run(ctx, cfg.Server.Addr, timeouts); err != nil {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("goodbye")
	return nil
}

// setupSharer builds the configured share target. MinIO falls back to the
// drop directory when it is unreachable at startup or fails later.
func setupSharer(ctx context.Context, cfg config.ShareConfig, logger *slog.Logger) share.Sharer {
	var dir share.Sharer
	if cfg.Dir != "" {
		d, err := share.NewDirSharer(cfg.Dir)
		if err != nil {
			logger.Warn("share dir unavailable", "dir", cfg.Dir, "error", err)
		} else {
			dir = d
		}
	}

	switch cfg.Type {
	case "none":
		logger.Info("sharing disabled")
		return nil
	case "minio":
		m, err := share.NewMinioSharer(ctx, cfg.Minio)
		if err != nil {
			logger.Warn("minio unavailable", "endpoint", cfg.Minio.Endpoint, "error", err)
			if dir == nil {
				return nil
			}
			logger.Info("sharing to directory", "dir", cfg.Dir)
			return dir
		}
		logger.Info("sharing to minio", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
		if dir == nil {
			return m
		}
		return &share.Fallback{Primary: m, Secondary: dir, Logger: logger}
	default:
		if dir == nil {
			return nil
		}
		logger.Info("sharing to directory", "dir", cfg.Dir)
		return dir
	}
}
