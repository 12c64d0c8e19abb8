// Package server exposes the render engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/binding"
	"github.com/novotemporh/cartaz/metrics"
	"github.com/novotemporh/cartaz/pipeline"
	"github.com/novotemporh/cartaz/poster"
	"github.com/novotemporh/cartaz/share"
	"github.com/novotemporh/cartaz/templates"
)

// RequestStore persists submitted job requests.
type RequestStore interface {
	Save(ctx context.Context, r poster.RequestRecord) (poster.RequestRecord, error)
	Get(ctx context.Context, id string) (poster.RequestRecord, error)
	List(ctx context.Context, limit int) ([]poster.RequestRecord, error)
}

// Deps are the collaborators of the API. Engine is required; a nil Store
// or Sharer disables the routes that need it.
type Deps struct {
	Engine          *templates.Engine
	Loader          *assets.Loader
	Store           RequestStore
	Sharer          share.Sharer
	Caption         binding.Caption
	CompiledCaption binding.Caption
	Logger          *slog.Logger
	// OnStale is called for every superseded preview.
	OnStale func()
}

// Server holds the handlers.
type Server struct {
	deps     Deps
	logger   *slog.Logger
	previews *pipeline.Sessions[[]byte]
}

// New builds a server from deps.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Loader == nil {
		deps.Loader = assets.NewLoader(nil, 0, deps.Logger)
	}
	if deps.Caption == (binding.Caption{}) {
		deps.Caption = binding.DefaultCaption
	}
	if deps.CompiledCaption == (binding.Caption{}) {
		deps.CompiledCaption = binding.DefaultCompiledCaption
	}
	return &Server{
		deps:     deps,
		logger:   deps.Logger,
		previews: pipeline.NewSessions[[]byte](deps.Logger, deps.OnStale),
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CorrelationID(), SlogLogger(s.logger), metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/templates", s.listTemplates)

		posters := api.Group("/posters")
		{
			posters.POST("/render", s.renderPoster)
			posters.POST("/compiled/render", s.renderCompiled)
			posters.POST("/share", s.sharePoster)
		}

		api.POST("/previews/:session", s.preview)
		api.DELETE("/previews/:session", s.closePreview)
		api.POST("/framing", s.frame)

		requests := api.Group("/requests")
		{
			requests.POST("", s.createRequest)
			requests.GET("", s.listRequests)
			requests.GET("/:id", s.getRequest)
			requests.GET("/:id/poster", s.requestPoster)
		}
	}
	return router
}

// Timeouts bound the HTTP server.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	if t.Shutdown <= 0 {
		t.Shutdown = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), t.Shutdown)
	defer cancel()
	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
