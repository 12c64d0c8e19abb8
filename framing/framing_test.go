package framing

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

const eps = 1e-9

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestResetContainsAndCentres(t *testing.T) {
	f, err := New(solid(400, 200, color.RGBA{R: 255, A: 255}), 800, 1000)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := f.Placement()
	if math.Abs(p.DrawW-800) > eps || math.Abs(p.DrawH-400) > eps {
		t.Fatalf("unexpected fit %+v", p)
	}
	if math.Abs(p.OffsetX) > eps || math.Abs(p.OffsetY-300) > eps {
		t.Fatalf("expected vertical centring, got %+v", p)
	}
}

func TestZoomIsClampedAndKeepsCentre(t *testing.T) {
	f, _ := New(solid(100, 100, color.RGBA{A: 255}), 200, 200)
	f.SetZoom(400)
	if f.Zoom() != MaxZoom {
		t.Fatalf("zoom should clamp to %d, got %g", MaxZoom, f.Zoom())
	}
	p := f.Placement()
	if math.Abs(p.DrawW-400) > eps || math.Abs(p.OffsetX+100) > eps {
		t.Fatalf("zoom should scale about the centre, got %+v", p)
	}
	f.SetZoom(10)
	if f.Zoom() != MinZoom {
		t.Fatalf("zoom should clamp to %d, got %g", MinZoom, f.Zoom())
	}
	p = f.Placement()
	if math.Abs(p.DrawW-100) > eps || math.Abs(p.OffsetX-50) > eps {
		t.Fatalf("unexpected placement at min zoom %+v", p)
	}
}

func TestPanThenResetRecentres(t *testing.T) {
	f, _ := New(solid(100, 100, color.RGBA{A: 255}), 200, 200)
	f.SetZoom(150)
	f.Pan(30, -20)
	f.Reset()
	p := f.Placement()
	if f.Zoom() != DefaultZoom || math.Abs(p.OffsetX) > eps || math.Abs(p.OffsetY) > eps {
		t.Fatalf("reset should undo pan and zoom, got %+v at %g%%", p, f.Zoom())
	}
}

func TestBakeDrawsAtOffset(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	f, _ := New(solid(100, 100, red), 200, 200)
	f.SetZoom(50)
	f.Pan(-50, -50)

	img := f.Bake()
	if img.Bounds() != image.Rect(0, 0, 200, 200) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if got := img.RGBAAt(10, 10); got.R < 200 || got.G > 40 {
		t.Fatalf("expected photo in the top-left corner, got %v", got)
	}
	if got := img.RGBAAt(150, 150); got != f.Background {
		t.Fatalf("expected background outside the photo, got %v", got)
	}
}

func TestBakePNGRoundTrips(t *testing.T) {
	f, _ := New(solid(30, 60, color.RGBA{B: 255, A: 255}), 120, 90)
	data, err := f.BakePNG()
	if err != nil {
		t.Fatalf("bake: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 90 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}
}

func TestRejectsEmptyInputs(t *testing.T) {
	if _, err := New(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
	if _, err := New(solid(1, 1, color.RGBA{}), 0, 10); err == nil {
		t.Fatalf("expected error for an empty box")
	}
}
