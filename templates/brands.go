package templates

import (
	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/layout"
)

var marisaPalette = Palette{
	Background: layout.MustHex("#ffffff"),
	Panel:      layout.MustHex("#ffffff"),
	Primary:    layout.MustHex("#e4002b"),
	Accent:     layout.MustHex("#ff6f8b"),
	Text:       layout.MustHex("#2b2b2b"),
	Muted:      layout.MustHex("#9a9a9a"),
	Footer:     layout.MustHex("#e4002b"),
	FooterText: layout.MustHex("#ffffff"),
	Pill:       layout.MustHex("#ffffff"),
	PillText:   layout.MustHex("#e4002b"),
	PCD:        layout.MustHex("#2b2b2b"),
	PCDText:    layout.MustHex("#ffffff"),
}

var wegPalette = Palette{
	Background: layout.MustHex("#00579d"),
	Panel:      layout.MustHex("#ffffff"),
	Primary:    layout.MustHex("#00579d"),
	Accent:     layout.MustHex("#0086d1"),
	Text:       layout.MustHex("#1a1a1a"),
	Muted:      layout.MustHex("#8c9bb0"),
	Footer:     layout.MustHex("#003b6f"),
	FooterText: layout.MustHex("#ffffff"),
	Pill:       layout.MustHex("#ffffff"),
	PillText:   layout.MustHex("#00579d"),
	PCD:        layout.MustHex("#ffcc00"),
	PCDText:    layout.MustHex("#003b6f"),
}

func init() {
	register(marisaLayout())
	register(wegLayout())
}

// marisaLayout: full-bleed photo on top, a white card overlapping its lower
// edge, red contact bar.
func marisaLayout() *Layout {
	const colX, colW = 80, 920
	return &Layout{
		Name:         Marisa,
		Kind:         Single,
		Width:        1080,
		Height:       1350,
		Palette:      marisaPalette,
		Illustration: layout.Rect{X: 0, Y: 0, W: 1080, H: 640},
		PCD:          PCDStrip,
		Strip:        layout.Rect{X: 0, Y: 0, W: 1080, H: 84},
		Steps: []Step{
			Illustration(0),
			Panel(layout.Rect{X: 40, Y: 560, W: 1000, H: 650}, 40, panel),
			Logo(assets.LogoMarisa, colX, 590, 240),
			Headline("VAGA ABERTA", 1000, 612, 34, layout.AlignRight, primary),
			Title(TextBox{X: colX, Y: 700, W: colW, Size: 56, LineFactor: 1.12}),
			AccessibilityMarker(TextBox{X: colX, Y: 700, W: colW, Size: 24}),
			AccentBar(colX, 96, 8, 18),
			Fields(TextBox{X: colX, W: colW, Size: 28, LineFactor: 1.3}, 12, LocationField, CodeField, ContractField),
			Requirements(TextBox{X: colX, W: colW, Size: 26, LineFactor: 1.3}, "Requisitos", 26),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 1230, W: 1080, H: 120}, PromptSize: 32, Margin: 60}),
		},
	}
}

// wegLayout: blue canvas, brand block on top, rounded photo and a white
// job card below it.
func wegLayout() *Layout {
	const colX, colW = 100, 880
	return &Layout{
		Name:         WEG,
		Kind:         Single,
		Width:        1080,
		Height:       1350,
		Palette:      wegPalette,
		Illustration: layout.Rect{X: 60, Y: 250, W: 960, H: 480},
		PCD:          PCDStrip,
		Strip:        layout.Rect{X: 0, Y: 0, W: 1080, H: 84},
		Steps: []Step{
			Logo(assets.LogoWEG, 60, 110, 200),
			Headline("Faça parte do nosso time", 1020, 140, 38, layout.AlignRight, onFooter),
			Illustration(36),
			Panel(layout.Rect{X: 60, Y: 760, W: 960, H: 440}, 36, panel),
			Title(TextBox{X: colX, Y: 790, W: colW, Size: 50, LineFactor: 1.12}),
			AccessibilityMarker(TextBox{X: colX, Y: 790, W: colW, Size: 24}),
			AccentBar(colX, 96, 8, 16),
			Fields(TextBox{X: colX, W: colW, Size: 26, LineFactor: 1.3}, 10, LocationField, CodeField, ContractField),
			Requirements(TextBox{X: colX, W: colW, Size: 24, LineFactor: 1.3}, "Requisitos", 22),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 1230, W: 1080, H: 120}, PromptSize: 32, Margin: 60}),
		},
	}
}
