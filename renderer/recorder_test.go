package renderer

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/novotemporh/cartaz/layout"
)

// nopSurface measures every rune as 10px and draws nothing.
type nopSurface struct{ calls int }

func (n *nopSurface) Measure(text string, _ layout.FontSpec) float64 {
	return float64(len([]rune(text))) * 10
}
func (n *nopSurface) Size() (float64, float64)         { return 100, 100 }
func (n *nopSurface) Clear(color.RGBA)                 { n.calls++ }
func (n *nopSurface) FillRect(layout.Rect, color.RGBA) { n.calls++ }
func (n *nopSurface) FillRoundedRect(layout.Rect, float64, color.RGBA) {
	n.calls++
}
func (n *nopSurface) FillCircle(layout.Point, float64, color.RGBA) { n.calls++ }
func (n *nopSurface) FillPolygon([]layout.Point, color.RGBA)       { n.calls++ }
func (n *nopSurface) StrokePolyline([]layout.Point, bool, float64, color.RGBA) {
	n.calls++
}
func (n *nopSurface) StrokeEllipse(layout.Point, float64, float64, float64, color.RGBA) {
	n.calls++
}
func (n *nopSurface) FillText(TextCommand)                        { n.calls++ }
func (n *nopSurface) DrawImage(image.Image, layout.Rect)          { n.calls++ }
func (n *nopSurface) DrawCover(image.Image, layout.Rect, float64) { n.calls++ }
func (n *nopSurface) Image() *image.RGBA                          { return image.NewRGBA(image.Rect(0, 0, 100, 100)) }

func TestRecorderKeepsDrawOrder(t *testing.T) {
	inner := &nopSurface{}
	rec := NewRecorder(inner)
	rec.Clear(color.RGBA{255, 255, 255, 255})
	rec.FillRoundedRect(layout.Rect{X: 1, Y: 2, W: 3, H: 4}, 2, color.RGBA{0, 0, 0, 255})
	rec.FillText(TextCommand{Text: "Efetivo", Font: layout.FontSpec{Family: "Go", Size: 20}, Color: color.RGBA{10, 20, 30, 255}})
	rec.DrawCover(image.NewRGBA(image.Rect(0, 0, 8, 6)), layout.Rect{W: 4, H: 4}, 0)

	ops := rec.Ops()
	kinds := []string{"clear", "rounded-rect", "text", "cover"}
	if len(ops) != len(kinds) {
		t.Fatalf("expected %d ops, got %d", len(kinds), len(ops))
	}
	for i, k := range kinds {
		if ops[i].Kind != k {
			t.Fatalf("op %d: got %s want %s", i, ops[i].Kind, k)
		}
	}
	if inner.calls != 4 {
		t.Fatalf("expected calls forwarded to inner surface, got %d", inner.calls)
	}
	if ops[2].Color != "#0a141e" || ops[2].Text != "Efetivo" {
		t.Fatalf("unexpected text op %+v", ops[2])
	}
	if ops[3].Image == nil || *ops[3].Image != image.Pt(8, 6) {
		t.Fatalf("expected source size on cover op, got %+v", ops[3].Image)
	}
	if w := rec.Measure("abc", layout.FontSpec{}); w != 30 {
		t.Fatalf("measure should pass through, got %g", w)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	rec := NewRecorder(&nopSurface{})
	rec.FillRect(layout.Rect{W: 10, H: 10}, color.RGBA{1, 2, 3, 255})

	path := filepath.Join(t.TempDir(), "plan.json")
	plan := &Plan{Template: "standard", Width: 960, Height: 1200, Ops: rec.Ops()}
	if err := WriteDebugJSON(plan, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back Plan
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.Template != "standard" || len(back.Ops) != 1 || back.Ops[0].Color != "#010203" {
		t.Fatalf("unexpected plan %+v", back)
	}
}
