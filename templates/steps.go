package templates

import (
	"image/color"
	"strings"

	"github.com/novotemporh/cartaz/layout"
	"github.com/novotemporh/cartaz/poster"
)

// Neutral texts for empty fields.
const (
	placeholderTitle = "Título da vaga"
	emptyValue       = "—"
)

// Colour pickers keep steps independent of any one palette.
func primary(p Palette) color.RGBA  { return p.Primary }
func accent(p Palette) color.RGBA   { return p.Accent }
func panel(p Palette) color.RGBA    { return p.Panel }
func onFooter(p Palette) color.RGBA { return p.FooterText }

// Band fills r with a palette colour.
func Band(r layout.Rect, pick func(Palette) color.RGBA) Step {
	return func(sc *Scene) {
		sc.Surface.FillRect(r, pick(sc.palette()))
	}
}

// Panel fills a rounded rectangle with a palette colour.
func Panel(r layout.Rect, radius float64, pick func(Palette) color.RGBA) Step {
	return func(sc *Scene) {
		sc.Surface.FillRoundedRect(r, radius, pick(sc.palette()))
	}
}

// Logo draws a brand asset at width w; the height follows its aspect ratio.
func Logo(name string, x, y, w float64) Step {
	return func(sc *Scene) {
		img, err := sc.assets.Get(name)
		if err != nil {
			sc.logger.Warn("brand asset unavailable", "template", sc.Layout.Name, "asset", name, "err", err)
			return
		}
		b := img.Bounds()
		h := layout.ScaledHeight(float64(b.Dx()), float64(b.Dy()), w)
		sc.Surface.DrawImage(img, layout.Rect{X: x, Y: y, W: w, H: h})
	}
}

// Headline draws a fixed single-line text.
func Headline(text string, x, top, size float64, align layout.Align, pick func(Palette) color.RGBA) Step {
	return func(sc *Scene) {
		sc.text(text, x, top, sc.font(layout.Black, size), pick(sc.palette()), align)
	}
}

// Illustration cover-fits the photo into the layout's photo region.
func Illustration(radius float64) Step {
	return func(sc *Scene) {
		if sc.Illustration == nil || sc.Layout.Illustration.W <= 0 {
			return
		}
		sc.Surface.DrawCover(sc.Illustration, sc.Layout.Illustration, radius)
	}
}

// Title wraps the job title inside box. An empty title prints a muted hint.
func Title(box TextBox) Step {
	return func(sc *Scene) {
		pal := sc.palette()
		text, col := sc.Content.Title, pal.Primary
		if blank(text) {
			text, col = placeholderTitle, pal.Muted
		}
		weight := box.Weight
		if weight == layout.Regular {
			weight = layout.Bold
		}
		font := sc.font(weight, box.Size)
		lh := layout.LineHeight(font, box.lineFactor())
		lines := layout.WrapText(sc.Surface, text, box.W, font)
		top := box.Y
		for _, line := range lines {
			sc.text(line, box.X, top, font, col, layout.AlignLeft)
			top += lh
		}
		last := lines[len(lines)-1]
		sc.titleEnd = &textEnd{X: box.X + sc.Surface.Measure(last, font), Top: top - lh, LineHeight: lh}
		sc.cursor = top
	}
}

// AccessibilityMarker draws the PCD marker the layout's policy asks for.
// Nothing is drawn when the role is not reserved.
func AccessibilityMarker(badge TextBox) Step {
	return func(sc *Scene) {
		if !sc.Content.PCD {
			return
		}
		switch sc.Layout.PCD {
		case PCDStrip:
			drawStrip(sc)
		default:
			drawBadge(sc, badge)
		}
	}
}

const (
	badgeLabel = "Vaga PCD"
	stripLabel = "VAGA EXCLUSIVA PARA PESSOAS COM DEFICIÊNCIA (PCD)"
)

// drawBadge places a pill after the last title line, or below it when the
// line is too long. badge.X and badge.W bound the title column.
func drawBadge(sc *Scene, badge TextBox) {
	pal := sc.palette()
	font := sc.font(layout.Bold, badge.Size)
	padX := badge.Size * 0.7
	h := badge.Size * 1.7
	w := sc.Surface.Measure(badgeLabel, font) + 2*padX

	x, y := badge.X, sc.flowTop(badge.Y, 8)
	if end := sc.titleEnd; end != nil {
		x = end.X + badge.Size*0.6
		y = end.Top + (end.LineHeight-h)/2
		if x+w > badge.X+badge.W {
			x, y = badge.X, sc.cursor+4
			sc.cursor = y + h
		}
	} else {
		sc.cursor = y + h
	}
	sc.Surface.FillRoundedRect(layout.Rect{X: x, Y: y, W: w, H: h}, h/2, pal.PCD)
	sc.text(badgeLabel, x+w/2, y+(h-badge.Size)/2, font, pal.PCDText, layout.AlignCenter)
}

// drawStrip overlays the full-width strip on whatever is already drawn.
func drawStrip(sc *Scene) {
	pal := sc.palette()
	r := sc.Layout.Strip
	sc.Surface.FillRect(r, pal.PCD)
	font := sc.font(layout.Bold, r.H*0.42)
	size := layout.FitFontSize(sc.Surface, stripLabel, font, r.W-48, font.Size, 14, 1)
	sc.text(stripLabel, r.X+r.W/2, r.Y+(r.H-size)/2, font.WithSize(size), pal.PCDText, layout.AlignCenter)
}

// AccentBar draws a short rule below the previous block.
func AccentBar(x, w, h, gap float64) Step {
	return func(sc *Scene) {
		top := sc.cursor + gap
		sc.Surface.FillRoundedRect(layout.Rect{X: x, Y: top, W: w, H: h}, h/2, sc.palette().Accent)
		sc.cursor = top + h
	}
}

// Field is one label+value row.
type Field struct {
	Label string
	Value func(Content) string
}

// Standard rows.
var (
	LocationField = Field{Label: "Local: ", Value: func(c Content) string { return c.Location }}
	CodeField     = Field{Label: "Código: ", Value: func(c Content) string { return c.Code }}
	ContractField = Field{Label: "Contrato: ", Value: func(c Content) string { return c.Contract.Label() }}
)

// Fields draws label+value rows. The value starts where the label ends and
// wraps inside the remaining width, continuation lines aligned with it.
func Fields(box TextBox, gap float64, rows ...Field) Step {
	return func(sc *Scene) {
		pal := sc.palette()
		labelFont := sc.font(layout.Bold, box.Size)
		valueFont := sc.font(layout.Regular, box.Size)
		lh := layout.LineHeight(valueFont, box.lineFactor())

		top := sc.flowTop(box.Y, gap)
		for _, row := range rows {
			value := strings.TrimSpace(row.Value(sc.Content))
			if value == "" {
				value = emptyValue
			}
			labelW := sc.Surface.Measure(row.Label, labelFont)
			sc.text(row.Label, box.X, top, labelFont, pal.Primary, layout.AlignLeft)

			lines := layout.WrapText(sc.Surface, value, box.W-labelW, valueFont)
			for i, line := range lines {
				sc.text(line, box.X+labelW, top+float64(i)*lh, valueFont, pal.Text, layout.AlignLeft)
			}
			top += float64(len(lines))*lh + gap
		}
		sc.cursor = top - gap
	}
}

// Requirements draws the bulletized requirement lines under heading. Lines
// that wrap continue indented by the bullet width. Empty requirements draw
// nothing.
func Requirements(box TextBox, heading string, gap float64) Step {
	return func(sc *Scene) {
		items := poster.RequirementLines(sc.Content.Requirements)
		if len(items) == 0 {
			return
		}
		pal := sc.palette()
		top := sc.flowTop(box.Y, gap)
		if heading != "" {
			hf := sc.font(layout.Bold, box.Size*1.15)
			sc.text(heading, box.X, top, hf, pal.Accent, layout.AlignLeft)
			top += layout.LineHeight(hf, 1.35)
		}

		font := sc.font(layout.Regular, box.Size)
		lh := layout.LineHeight(font, box.lineFactor())
		prefix := poster.Bullet + " "
		indent := sc.Surface.Measure(prefix, font)
		for _, item := range items {
			body := strings.TrimPrefix(item, prefix)
			lines := layout.WrapText(sc.Surface, body, box.W-indent, font)
			for i, line := range lines {
				if i == 0 {
					sc.text(prefix+line, box.X, top, font, pal.Text, layout.AlignLeft)
				} else {
					sc.text(line, box.X+indent, top, font, pal.Text, layout.AlignLeft)
				}
				top += lh
			}
			top += box.Size * 0.3
		}
		sc.cursor = top
	}
}

// JobList prints one "code: title" entry per complete job. Entries missing
// either field are skipped.
func JobList(box TextBox, heading string, gap float64) Step {
	return func(sc *Scene) {
		pal := sc.palette()
		top := sc.flowTop(box.Y, gap)
		if heading != "" {
			hf := sc.font(layout.Black, box.Size*1.2)
			sc.text(heading, box.X, top, hf, pal.Primary, layout.AlignLeft)
			top += layout.LineHeight(hf, 1.35)
		}

		font := sc.font(layout.Bold, box.Size)
		lh := layout.LineHeight(font, box.lineFactor())
		for _, job := range sc.Content.Jobs {
			if !job.Filled() {
				continue
			}
			indent := sc.Surface.Measure(strings.TrimSpace(job.Code)+": ", font)
			lines := layout.WrapText(sc.Surface, job.Line(), box.W, font)
			for i, line := range lines {
				x := box.X
				if i > 0 {
					x += indent
				}
				sc.text(line, x, top, font, pal.Text, layout.AlignLeft)
				top += lh
			}
		}
		sc.cursor = top
	}
}
