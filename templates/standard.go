package templates

import (
	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/layout"
)

var novotempoPalette = Palette{
	Background: layout.MustHex("#eef2f8"),
	Panel:      layout.MustHex("#ffffff"),
	Primary:    layout.MustHex("#0b2a5b"),
	Accent:     layout.MustHex("#f39200"),
	Text:       layout.MustHex("#1d2433"),
	Muted:      layout.MustHex("#8a93a6"),
	Footer:     layout.MustHex("#0b2a5b"),
	FooterText: layout.MustHex("#ffffff"),
	Pill:       layout.MustHex("#ffffff"),
	PillText:   layout.MustHex("#0b2a5b"),
	PCD:        layout.MustHex("#1f7ae0"),
	PCDText:    layout.MustHex("#ffffff"),
}

func init() {
	register(standardLayout())
	register(dmCardLayout())
}

// standardLayout: photo on the left, white rounded panel with the job on
// the right, contact bar at the bottom.
func standardLayout() *Layout {
	const colX, colW = 500, 390
	return &Layout{
		Name:         Standard,
		Kind:         Single,
		Width:        960,
		Height:       1200,
		Palette:      novotempoPalette,
		Illustration: layout.Rect{X: 40, Y: 150, W: 400, H: 880},
		PCD:          PCDBadge,
		Steps: []Step{
			Logo(assets.LogoNovotempo, 40, 36, 300),
			Headline("ESTAMOS CONTRATANDO", 920, 62, 30, layout.AlignRight, accent),
			Illustration(28),
			Panel(layout.Rect{X: 470, Y: 150, W: 450, H: 880}, 32, panel),
			Title(TextBox{X: colX, Y: 190, W: colW, Size: 48, LineFactor: 1.15}),
			AccessibilityMarker(TextBox{X: colX, Y: 190, W: colW, Size: 22}),
			AccentBar(colX, 80, 8, 18),
			Fields(TextBox{X: colX, W: colW, Size: 26, LineFactor: 1.3}, 12, LocationField, CodeField, ContractField),
			Requirements(TextBox{X: colX, W: colW, Size: 24, LineFactor: 1.3}, "Requisitos", 28),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 1080, W: 960, H: 120}, PromptSize: 30, Margin: 40}),
		},
	}
}

// dmCardLayout is the square card sent in direct messages. It takes any
// single-job record.
func dmCardLayout() *Layout {
	const colX, colW = 540, 450
	pal := novotempoPalette
	pal.Background = layout.MustHex("#0b2a5b")
	pal.Footer = layout.MustHex("#f39200")
	return &Layout{
		Name:         DMCard,
		Kind:         Single,
		Width:        1080,
		Height:       1080,
		Palette:      pal,
		Illustration: layout.Rect{X: 60, Y: 170, W: 420, H: 740},
		PCD:          PCDBadge,
		Steps: []Step{
			Logo(assets.LogoNovotempoWhite, 60, 44, 260),
			Headline("VAGA", 1020, 60, 44, layout.AlignRight, accent),
			Illustration(32),
			Panel(layout.Rect{X: 510, Y: 170, W: 510, H: 740}, 32, panel),
			Title(TextBox{X: colX, Y: 205, W: colW, Size: 44, LineFactor: 1.15}),
			AccessibilityMarker(TextBox{X: colX, Y: 205, W: colW, Size: 22}),
			AccentBar(colX, 72, 8, 16),
			Fields(TextBox{X: colX, W: colW, Size: 24, LineFactor: 1.3}, 10, LocationField, CodeField, ContractField),
			Requirements(TextBox{X: colX, W: colW, Size: 22, LineFactor: 1.3}, "Requisitos", 24),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 960, W: 1080, H: 120}, PromptSize: 30, Margin: 60}),
		},
	}
}
