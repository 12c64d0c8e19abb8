package canvasrenderer

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/novotemporh/cartaz/fonts"
	"github.com/novotemporh/cartaz/layout"
)

// FontBook owns the font families shared by every surface. Families are
// loaded once and then only read, so one book serves concurrent passes.
type FontBook struct {
	logger *slog.Logger

	mu       sync.Mutex
	families map[string]*familyEntry
}

type familyEntry struct {
	family  *canvas.FontFamily
	weights map[layout.FontWeight]bool
}

// NewFontBook returns a book preloaded with the built-in Go family.
func NewFontBook(logger *slog.Logger) (*FontBook, error) {
	if logger == nil {
		logger = slog.Default()
	}
	b := &FontBook{logger: logger, families: map[string]*familyEntry{}}
	for _, name := range fonts.Weights() {
		data, err := fonts.Load(name)
		if err != nil {
			return nil, err
		}
		if err := b.Register(fonts.Family, weightFromName(name), data); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Register loads a TTF/OTF face into family at weight.
func (b *FontBook) Register(family string, weight layout.FontWeight, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.families[family]
	if !ok {
		entry = &familyEntry{family: canvas.NewFontFamily(family), weights: map[layout.FontWeight]bool{}}
	}
	if err := entry.family.LoadFont(data, 0, canvasStyle(weight)); err != nil {
		return fmt.Errorf("load font %s %s: %w", family, weight, err)
	}
	entry.weights[weight] = true
	b.families[family] = entry
	return nil
}

// LoadDir registers every *.ttf and *.otf file in dir. File names follow
// "<Family>-<Weight>.ttf", e.g. "Montserrat-Bold.ttf".
func (b *FontBook) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read font dir %s: %w", dir, err)
	}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		family, style, _ := strings.Cut(base, "-")
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("read font %s: %w", e.Name(), err)
		}
		if err := b.Register(family, weightFromName(style), data); err != nil {
			return err
		}
		b.logger.Debug("font registered", "family", family, "weight", weightFromName(style).String(), "file", e.Name())
	}
	return nil
}

// Has reports whether family has at least one face loaded.
func (b *FontBook) Has(family string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.families[family]
	return ok
}

// Face returns a face for spec. Unknown families fall back to the built-in
// Go family; missing weights fall back to the closest loaded one.
// A non-positive size is a programming error and panics.
func (b *FontBook) Face(spec layout.FontSpec, col color.Color) *canvas.FontFace {
	if spec.Size <= 0 {
		panic(fmt.Sprintf("canvasrenderer: font size must be positive, got %g for %s", spec.Size, spec.Key()))
	}
	family, weight := b.resolve(spec)
	return family.Face(layout.PxToPt(spec.Size), col, canvasStyle(weight), canvas.FontNormal)
}

func (b *FontBook) resolve(spec layout.FontSpec) (*canvas.FontFamily, layout.FontWeight) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.families[spec.Family]
	if !ok {
		entry = b.families[fonts.Family]
	}
	if entry.weights[spec.Weight] {
		return entry.family, spec.Weight
	}
	// walk down first, then up
	for w := spec.Weight - 1; w >= layout.Regular; w-- {
		if entry.weights[w] {
			return entry.family, w
		}
	}
	for w := spec.Weight + 1; w <= layout.Black; w++ {
		if entry.weights[w] {
			return entry.family, w
		}
	}
	return b.families[fonts.Family].family, layout.Regular
}

func canvasStyle(w layout.FontWeight) canvas.FontStyle {
	switch w {
	case layout.Medium:
		return canvas.FontMedium
	case layout.Bold:
		return canvas.FontBold
	case layout.Black:
		return canvas.FontBlack
	default:
		return canvas.FontRegular
	}
}

func weightFromName(style string) layout.FontWeight {
	s := strings.ToLower(style)
	switch {
	case strings.Contains(s, "black"), strings.Contains(s, "heavy"), strings.Contains(s, "extrabold"):
		return layout.Black
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"), strings.Contains(s, "medium"):
		return layout.Medium
	case strings.Contains(s, "bold"):
		return layout.Bold
	default:
		return layout.Regular
	}
}
