package templates

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/fonts"
	"github.com/novotemporh/cartaz/poster"
	"github.com/novotemporh/cartaz/renderer"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
)

// Observer receives render outcomes; the metrics package implements it.
type Observer interface {
	RenderDone(template string, elapsed time.Duration, err error)
	ImageFallback(template, reason string)
}

type nopObserver struct{}

func (nopObserver) RenderDone(string, time.Duration, error) {}
func (nopObserver) ImageFallback(string, string)            {}

// Options configures an Engine. Fonts and Assets are required.
type Options struct {
	Fonts    *canvasrenderer.FontBook
	Assets   AssetSource
	Loader   *assets.Loader
	Logger   *slog.Logger
	Observer Observer
	// Family is the font family used for every text; defaults to the
	// built-in Go family.
	Family string
}

// Engine renders templates. It is safe for concurrent use: every call gets
// its own surface, and the font book and asset store are only read.
type Engine struct {
	fonts    *canvasrenderer.FontBook
	assets   AssetSource
	loader   *assets.Loader
	logger   *slog.Logger
	observer Observer
	family   string
}

// NewEngine builds an engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		fonts:    opts.Fonts,
		assets:   opts.Assets,
		loader:   opts.Loader,
		logger:   opts.Logger,
		observer: opts.Observer,
		family:   opts.Family,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.observer == nil {
		e.observer = nopObserver{}
	}
	if e.family == "" {
		e.family = fonts.Family
	}
	if e.loader == nil {
		e.loader = assets.NewLoader(nil, 0, e.logger)
	}
	return e
}

// Render draws content with the named template.
func (e *Engine) Render(ctx context.Context, name string, content Content) (*image.RGBA, error) {
	img, _, err := e.render(ctx, name, content, false)
	return img, err
}

// Plan renders like Render and also returns the recorded paint operations.
func (e *Engine) Plan(ctx context.Context, name string, content Content) (*renderer.Plan, *image.RGBA, error) {
	img, ops, err := e.render(ctx, name, content, true)
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	return &renderer.Plan{Template: name, Width: b.Dx(), Height: b.Dy(), Ops: ops}, img, nil
}

// RenderPoster renders a single-job record with its variant's template, or
// the direct-message card when card is set.
func (e *Engine) RenderPoster(ctx context.Context, p poster.PosterData, card bool) (*image.RGBA, error) {
	return e.Render(ctx, ForPoster(p, card), SingleContent(p))
}

// RenderCompiled renders a compiled record.
func (e *Engine) RenderCompiled(ctx context.Context, c poster.CompiledPosterData) (*image.RGBA, error) {
	name, err := ForCompiled(c)
	if err != nil {
		return nil, err
	}
	return e.Render(ctx, name, CompiledContent(c))
}

func (e *Engine) render(ctx context.Context, name string, content Content, record bool) (img *image.RGBA, ops []renderer.Op, err error) {
	l, err := Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	defer func() { e.observer.RenderDone(l.Name, time.Since(start), err) }()

	var surface renderer.Surface = canvasrenderer.NewSurface(l.Width, l.Height, e.fonts)
	var rec *renderer.Recorder
	if record {
		rec = renderer.NewRecorder(surface)
		surface = rec
	}
	surface.Clear(l.Palette.Background)

	illustration, err := e.illustration(ctx, l, content.Image)
	if err != nil {
		return nil, nil, err
	}

	sc := &Scene{
		Surface:      surface,
		Layout:       l,
		Content:      content,
		Illustration: illustration,
		assets:       e.assets,
		family:       e.family,
		logger:       e.logger,
	}
	for _, step := range l.Steps {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("render %s: %w", l.Name, err)
		}
		step(sc)
	}

	img = surface.Image()
	if rec != nil {
		ops = rec.Ops()
	}
	e.logger.Debug("poster rendered", "template", l.Name, "elapsed", time.Since(start))
	return img, ops, nil
}

// illustration resolves the photo for l. Load failures fall back to a
// placeholder of the region size; only the caller's own cancellation is
// returned as an error.
func (e *Engine) illustration(ctx context.Context, l *Layout, src poster.ImageSource) (image.Image, error) {
	region := l.Illustration
	if region.W <= 0 || region.H <= 0 {
		return nil, nil
	}
	w, h := int(math.Round(region.W)), int(math.Round(region.H))
	if src.IsZero() {
		return assets.Placeholder(e.fonts, w, h, assets.PlaceholderLabel), nil
	}

	img, err := e.loader.Load(ctx, src)
	if err == nil {
		return img, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("render %s: %w", l.Name, ctxErr)
	}
	e.logger.Warn("illustration unavailable, using placeholder", "template", l.Name, "err", err)
	e.observer.ImageFallback(l.Name, fallbackReason(err))
	return assets.Placeholder(e.fonts, w, h, assets.PlaceholderLabel), nil
}

func fallbackReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
