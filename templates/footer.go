package templates

import (
	"image/color"
	"math"

	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/poster"
)

// PillMetrics sizes the contact badge.
type PillMetrics struct {
	DefaultSize float64 // font size tried first
	MinSize     float64 // floor for shrink-to-fit
	MaxWidth    float64
	Icon        float64
	IconPad     float64 // between icon and text
	BasePad     float64 // horizontal padding, both sides together
	Height      float64
}

// DefaultPill is shared by every template unless a layout overrides it.
var DefaultPill = PillMetrics{
	DefaultSize: 30,
	MinSize:     18,
	MaxWidth:    420,
	Icon:        36,
	IconPad:     12,
	BasePad:     48,
	Height:      68,
}

// PillLayout returns the font size and badge width for value. The size is
// the largest one not above DefaultSize whose badge fits MaxWidth, but never
// below MinSize; at the floor the badge may still exceed MaxWidth.
func PillLayout(m layout.Measurer, value string, font layout.FontSpec, pm PillMetrics) (size, width float64) {
	chrome := pm.Icon + pm.IconPad + pm.BasePad
	size = layout.FitFontSize(m, value, font, pm.MaxWidth-chrome, pm.DefaultSize, pm.MinSize, 1)
	width = m.Measure(value, font.WithSize(size)) + chrome
	return size, width
}

// Footer is the contact bar at the bottom of a poster.
type Footer struct {
	Bar        layout.Rect
	Prompt     string
	PromptSize float64
	Margin     float64
	Pill       PillMetrics
}

const defaultPrompt = "Envie seu currículo:"

// ContactFooter draws the bar, the prompt on the left and the contact pill
// on the right.
func ContactFooter(f Footer) Step {
	if f.Prompt == "" {
		f.Prompt = defaultPrompt
	}
	if f.Pill == (PillMetrics{}) {
		f.Pill = DefaultPill
	}
	return func(sc *Scene) {
		pal := sc.palette()
		sc.Surface.FillRect(f.Bar, pal.Footer)

		contact := sc.Content.Contact
		if contact == nil {
			contact = poster.Site{}
		}
		value := contact.Display()

		pillFont := sc.font(layout.Bold, f.Pill.DefaultSize)
		size, width := PillLayout(sc.Surface, value, pillFont, f.Pill)
		pill := layout.Rect{
			X: f.Bar.Right() - f.Margin - width,
			Y: f.Bar.Y + (f.Bar.H-f.Pill.Height)/2,
			W: width,
			H: f.Pill.Height,
		}

		promptFont := sc.font(layout.Bold, f.PromptSize)
		room := pill.X - f.Bar.X - f.Margin - 16
		promptSize := layout.FitFontSize(sc.Surface, f.Prompt, promptFont, room, f.PromptSize, 14, 1)
		sc.text(f.Prompt, f.Bar.X+f.Margin, f.Bar.Y+(f.Bar.H-promptSize)/2, promptFont.WithSize(promptSize), pal.FooterText, layout.AlignLeft)

		sc.Surface.FillRoundedRect(pill, pill.H/2, pal.Pill)
		icon := layout.Rect{X: pill.X + f.Pill.BasePad/2, Y: pill.Y + (pill.H-f.Pill.Icon)/2, W: f.Pill.Icon, H: f.Pill.Icon}
		drawContactIcon(sc, contact.Kind(), icon, pal.PillText)
		sc.text(value, icon.Right()+f.Pill.IconPad, pill.Y+(pill.H-size)/2, pillFont.WithSize(size), pal.PillText, layout.AlignLeft)
	}
}

func drawContactIcon(sc *Scene, kind poster.ContactKind, box layout.Rect, ink color.RGBA) {
	switch kind {
	case poster.KindWhatsApp:
		img, err := sc.assets.Get(assets.WhatsAppGlyph)
		if err != nil {
			sc.logger.Warn("brand asset unavailable", "template", sc.Layout.Name, "asset", assets.WhatsAppGlyph, "err", err)
			return
		}
		sc.Surface.DrawImage(img, box)
	case poster.KindEmail:
		drawEnvelope(sc, box, ink)
	default:
		drawGlobe(sc, box, ink)
	}
}

// drawGlobe draws a wireframe globe inside box.
func drawGlobe(sc *Scene, box layout.Rect, ink color.RGBA) {
	stroke := math.Max(2, box.W/14)
	r := box.W/2 - stroke/2
	c := layout.Point{X: box.X + box.W/2, Y: box.Y + box.H/2}
	sc.Surface.StrokeEllipse(c, r, r, stroke, ink)
	sc.Surface.StrokeEllipse(c, r*0.45, r, stroke, ink)
	sc.Surface.StrokePolyline([]layout.Point{{X: c.X - r, Y: c.Y}, {X: c.X + r, Y: c.Y}}, false, stroke, ink)
	for _, dy := range []float64{-r * 0.5, r * 0.5} {
		half := r * math.Sqrt(1-0.25)
		sc.Surface.StrokePolyline([]layout.Point{{X: c.X - half, Y: c.Y + dy}, {X: c.X + half, Y: c.Y + dy}}, false, stroke, ink)
	}
}

// drawEnvelope draws a closed rectangle with a folded flap.
func drawEnvelope(sc *Scene, box layout.Rect, ink color.RGBA) {
	stroke := math.Max(2, box.W/14)
	body := layout.Rect{X: box.X + stroke/2, Y: box.Y + box.H*0.18, W: box.W - stroke, H: box.H * 0.64}
	sc.Surface.StrokePolyline([]layout.Point{
		{X: body.X, Y: body.Y}, {X: body.Right(), Y: body.Y},
		{X: body.Right(), Y: body.Bottom()}, {X: body.X, Y: body.Bottom()},
	}, true, stroke, ink)
	sc.Surface.StrokePolyline([]layout.Point{
		{X: body.X, Y: body.Y}, {X: body.X + body.W/2, Y: body.Y + body.H*0.55}, {X: body.Right(), Y: body.Y},
	}, false, stroke, ink)
}
