package templates

import (
	"github.com/novotemporh/cartaz/assets"
	"github.com/novotemporh/cartaz/layout"
)

func init() {
	register(compiledStandardLayout())
	register(compiledMarisaLayout())
}

func compiledStandardLayout() *Layout {
	const colX, colW = 80, 800
	return &Layout{
		Name:         CompiledStandard,
		Kind:         Compiled,
		Width:        960,
		Height:       1200,
		Palette:      novotempoPalette,
		Illustration: layout.Rect{X: 40, Y: 150, W: 880, H: 330},
		PCD:          PCDStrip,
		Strip:        layout.Rect{X: 0, Y: 0, W: 960, H: 72},
		Steps: []Step{
			Logo(assets.LogoNovotempo, 40, 36, 300),
			Headline("VAGAS ABERTAS", 920, 62, 30, layout.AlignRight, accent),
			Illustration(28),
			Panel(layout.Rect{X: 40, Y: 510, W: 880, H: 550}, 32, panel),
			AccessibilityMarker(TextBox{}),
			Fields(TextBox{X: colX, Y: 545, W: colW, Size: 26, LineFactor: 1.3}, 12, LocationField),
			JobList(TextBox{X: colX, W: colW, Size: 28, LineFactor: 1.3}, "Vagas", 22),
			Requirements(TextBox{X: colX, W: colW, Size: 24, LineFactor: 1.3}, "Requisitos", 22),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 1080, W: 960, H: 120}, PromptSize: 30, Margin: 40}),
		},
	}
}

func compiledMarisaLayout() *Layout {
	const colX, colW = 80, 920
	return &Layout{
		Name:         CompiledMarisa,
		Kind:         Compiled,
		Width:        1080,
		Height:       1350,
		Palette:      marisaPalette,
		Illustration: layout.Rect{X: 0, Y: 0, W: 1080, H: 520},
		PCD:          PCDStrip,
		Strip:        layout.Rect{X: 0, Y: 0, W: 1080, H: 84},
		Steps: []Step{
			Illustration(0),
			Panel(layout.Rect{X: 40, Y: 450, W: 1000, H: 760}, 40, panel),
			Logo(assets.LogoMarisa, colX, 480, 220),
			Headline("VAGAS ABERTAS", 1000, 498, 34, layout.AlignRight, primary),
			AccessibilityMarker(TextBox{}),
			Fields(TextBox{X: colX, Y: 600, W: colW, Size: 28, LineFactor: 1.3}, 12, LocationField),
			JobList(TextBox{X: colX, W: colW, Size: 30, LineFactor: 1.3}, "Vagas", 24),
			Requirements(TextBox{X: colX, W: colW, Size: 26, LineFactor: 1.3}, "Requisitos", 24),
			ContactFooter(Footer{Bar: layout.Rect{X: 0, Y: 1230, W: 1080, H: 120}, PromptSize: 32, Margin: 60}),
		},
	}
}
