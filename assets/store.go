// Package assets provides the brand images shared by every template and
// loads the per-poster illustrations.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/novotemporh/cartaz/fonts"
	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/renderer"
	canvasrenderer "github.com/novotemporh/cartaz/renderer/canvas"
)

// Brand asset names.
const (
	LogoNovotempo      = "logo-novotempo"
	LogoNovotempoWhite = "logo-novotempo-white"
	LogoMarisa         = "logo-marisa"
	LogoWEG            = "logo-weg"
	WhatsAppGlyph      = "whatsapp"
)

// Names lists every brand asset a template may ask for.
func Names() []string {
	return []string{LogoNovotempo, LogoNovotempoWhite, LogoMarisa, LogoWEG, WhatsAppGlyph}
}

// Store loads brand assets once and then serves them read-only to every
// render pass. A file "<dir>/<name>.png" overrides the drawn default.
type Store struct {
	dir    string
	fonts  *canvasrenderer.FontBook
	logger *slog.Logger

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewStore creates a store reading overrides from dir (may be empty).
func NewStore(dir string, fonts *canvasrenderer.FontBook, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, fonts: fonts, logger: logger, cache: map[string]image.Image{}}
}

// Get returns the named asset. Concurrent first requests share one load.
func (s *Store) Get(name string) (image.Image, error) {
	s.mu.RLock()
	img, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		img, err := s.load(name)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[name] = img
		s.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

// Warm loads every brand asset, reporting the first failure.
func (s *Store) Warm() error {
	for _, name := range Names() {
		if _, err := s.Get(name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) load(name string) (image.Image, error) {
	if s.dir != "" {
		path := filepath.Join(s.dir, name+".png")
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			img, _, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("decode asset %s: %w", path, err)
			}
			s.logger.Debug("brand asset loaded", "name", name, "path", path)
			return img, nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read asset %s: %w", path, err)
		}
	}
	draw, ok := defaults[name]
	if !ok {
		return nil, fmt.Errorf("unknown brand asset %q", name)
	}
	return draw(s.fonts), nil
}

var defaults = map[string]func(*canvasrenderer.FontBook) image.Image{
	LogoNovotempo:      func(b *canvasrenderer.FontBook) image.Image { return wordmark(b, navy, orange) },
	LogoNovotempoWhite: func(b *canvasrenderer.FontBook) image.Image { return wordmark(b, white, white) },
	LogoMarisa:         marisaLogo,
	LogoWEG:            wegLogo,
	WhatsAppGlyph:      whatsappGlyph,
}

var (
	navy        = layout.MustHex("#0b2a5b")
	orange      = layout.MustHex("#f39200")
	white       = color.RGBA{255, 255, 255, 255}
	transparent = color.RGBA{}
)

func wordmark(b *canvasrenderer.FontBook, ink, accent color.RGBA) image.Image {
	s := canvasrenderer.NewSurface(440, 120, b)
	s.Clear(transparent)
	font := layout.FontSpec{Family: fonts.Family, Weight: layout.Black, Size: 64}
	s.FillText(renderer.TextCommand{Text: "novotempo", X: 0, Top: 14, Font: font, Color: ink})
	w := s.Measure("novotempo", font)
	s.FillRoundedRect(layout.Rect{X: w + 12, Y: 26, W: 78, H: 62}, 14, accent)
	rh := ink
	if ink == accent {
		rh = navy
	}
	s.FillText(renderer.TextCommand{
		Text:  "RH",
		X:     w + 12 + 39,
		Top:   34,
		Font:  font.WithSize(40),
		Color: rh,
		Align: layout.AlignCenter,
	})
	return s.Image()
}

func marisaLogo(b *canvasrenderer.FontBook) image.Image {
	s := canvasrenderer.NewSurface(400, 120, b)
	s.Clear(transparent)
	s.FillText(renderer.TextCommand{
		Text:  "Marisa",
		X:     200,
		Top:   16,
		Font:  layout.FontSpec{Family: fonts.Family, Weight: layout.Bold, Size: 76},
		Color: layout.MustHex("#e4002b"),
		Align: layout.AlignCenter,
	})
	return s.Image()
}

func wegLogo(b *canvasrenderer.FontBook) image.Image {
	s := canvasrenderer.NewSurface(300, 140, b)
	s.Clear(transparent)
	s.FillRoundedRect(layout.Rect{W: 300, H: 140}, 18, layout.MustHex("#00579d"))
	s.FillText(renderer.TextCommand{
		Text:  "WEG",
		X:     150,
		Top:   22,
		Font:  layout.FontSpec{Family: fonts.Family, Weight: layout.Black, Size: 88},
		Color: white,
		Align: layout.AlignCenter,
	})
	return s.Image()
}

// whatsappGlyph is a speech bubble with a handset, drawn on a transparent tile.
func whatsappGlyph(b *canvasrenderer.FontBook) image.Image {
	s := canvasrenderer.NewSurface(96, 96, b)
	s.Clear(transparent)
	green := layout.MustHex("#25d366")
	s.FillPolygon([]layout.Point{{X: 14, Y: 92}, {X: 22, Y: 62}, {X: 38, Y: 78}}, green)
	s.FillCircle(layout.Point{X: 48, Y: 46}, 42, green)
	s.StrokeEllipse(layout.Point{X: 48, Y: 46}, 33, 33, 5, white)
	// handset
	s.FillPolygon([]layout.Point{
		{X: 34, Y: 30}, {X: 42, Y: 28}, {X: 46, Y: 38}, {X: 41, Y: 42},
		{X: 50, Y: 53}, {X: 55, Y: 49}, {X: 65, Y: 54}, {X: 62, Y: 62},
		{X: 52, Y: 62}, {X: 36, Y: 48}, {X: 31, Y: 38},
	}, white)
	return s.Image()
}
