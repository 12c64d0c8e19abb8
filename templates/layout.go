// Package templates turns poster records into fixed-size rasters.
//
// A template is data: a Layout names its size, palette, regions and
// accessibility policy, plus an ordered list of Steps built from the shared
// text and image helpers. The Engine runs the steps on a fresh surface.
package templates

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/poster"
)

// ErrUnknownTemplate is returned for names missing from the registry.
var ErrUnknownTemplate = errors.New("unknown template")

// Template names.
const (
	Standard         = "standard"
	Marisa           = "marisa"
	WEG              = "weg"
	DMCard           = "dm-card"
	CompiledStandard = "compiled-standard"
	CompiledMarisa   = "compiled-marisa"
)

// Kind tells single-job templates from compiled ones.
type Kind int

const (
	Single Kind = iota
	Compiled
)

func (k Kind) String() string {
	if k == Compiled {
		return "compiled"
	}
	return "single"
}

// PCDPolicy is how a template marks an accessibility role.
type PCDPolicy int

const (
	// PCDBadge draws a small rounded badge beside the title.
	PCDBadge PCDPolicy = iota
	// PCDStrip draws a full-width strip over the top of the canvas.
	PCDStrip
)

func (p PCDPolicy) String() string {
	if p == PCDStrip {
		return "strip"
	}
	return "badge"
}

// Palette holds the colours of one template.
type Palette struct {
	Background color.RGBA
	Panel      color.RGBA
	Primary    color.RGBA
	Accent     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Footer     color.RGBA
	FooterText color.RGBA
	Pill       color.RGBA
	PillText   color.RGBA
	PCD        color.RGBA
	PCDText    color.RGBA
}

// Layout is a complete template configuration.
type Layout struct {
	Name    string
	Kind    Kind
	Width   int
	Height  int
	Palette Palette

	// Illustration is the photo region; a zero rect means no photo.
	Illustration layout.Rect
	PCD          PCDPolicy
	// Strip is the region of the PCD strip when PCD is PCDStrip.
	Strip layout.Rect

	Steps []Step
}

// Info describes a template for listings.
type Info struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	PCD    string `json:"pcd"`
}

var registry = map[string]*Layout{}

func register(l *Layout) *Layout {
	if _, dup := registry[l.Name]; dup {
		panic("templates: duplicate template " + l.Name)
	}
	registry[l.Name] = l
	return l
}

// Lookup returns the named layout.
func Lookup(name string) (*Layout, error) {
	l, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return l, nil
}

// List returns every template sorted by name.
func List() []Info {
	out := make([]Info, 0, len(registry))
	for _, l := range registry {
		out = append(out, Info{Name: l.Name, Kind: l.Kind.String(), Width: l.Width, Height: l.Height, PCD: l.PCD.String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ForPoster picks the single-job template for p. card selects the square
// direct-message card regardless of variant.
func ForPoster(p poster.PosterData, card bool) string {
	if card {
		return DMCard
	}
	switch p.Variant {
	case poster.VariantMarisa:
		return Marisa
	case poster.VariantWEG:
		return WEG
	default:
		return Standard
	}
}

// ForCompiled picks the compiled template for c.
func ForCompiled(c poster.CompiledPosterData) (string, error) {
	switch c.Variant {
	case poster.VariantStandard, "":
		return CompiledStandard, nil
	case poster.VariantMarisa:
		return CompiledMarisa, nil
	default:
		return "", fmt.Errorf("%w: no compiled template for variant %q", ErrUnknownTemplate, c.Variant)
	}
}

// Content is the template-facing view of either poster record.
type Content struct {
	Image        poster.ImageSource
	Title        string
	Location     string
	Code         string
	Contract     poster.ContractType
	Requirements string
	PCD          bool
	Contact      poster.Contact
	Jobs         []poster.Job
}

// SingleContent adapts a single-job record.
func SingleContent(p poster.PosterData) Content {
	return Content{
		Image:        p.Image,
		Title:        p.Title,
		Location:     p.Location,
		Code:         p.Code,
		Contract:     p.ContractType,
		Requirements: p.Requirements,
		PCD:          p.AccessibilityRole,
		Contact:      p.ContactOrDefault(),
	}
}

// CompiledContent adapts a compiled record.
func CompiledContent(c poster.CompiledPosterData) Content {
	return Content{
		Image:        c.Image,
		Location:     c.Location,
		Requirements: c.Requirements,
		PCD:          c.AccessibilityRole,
		Contact:      c.ContactOrDefault(),
		Jobs:         c.Jobs,
	}
}
