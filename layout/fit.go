package layout

// Placement describes where a source image is drawn relative to the origin
// of its destination box. Offsets are zero or negative for cover fits.
type Placement struct {
	DrawW   float64 `json:"drawW"`
	DrawH   float64 `json:"drawH"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// In returns the absolute rectangle of the placed image inside dst.
func (p Placement) In(dst Rect) Rect {
	return Rect{X: dst.X + p.OffsetX, Y: dst.Y + p.OffsetY, W: p.DrawW, H: p.DrawH}
}

// CoverFit scales a srcW×srcH image so it fully covers dstW×dstH while
// keeping its aspect ratio, centred along the cropped axis.
// srcH must be positive; callers substitute a placeholder for broken images.
func CoverFit(srcW, srcH, dstW, dstH float64) Placement {
	srcAspect := srcW / srcH
	dstAspect := dstW / dstH

	if srcAspect > dstAspect {
		drawH := dstH
		drawW := dstH * srcAspect
		return Placement{DrawW: drawW, DrawH: drawH, OffsetX: -(drawW - dstW) / 2}
	}
	drawW := dstW
	drawH := dstW / srcAspect
	return Placement{DrawW: drawW, DrawH: drawH, OffsetY: -(drawH - dstH) / 2}
}

// ContainFit scales a srcW×srcH image to fit entirely inside boxW×boxH and
// centres it on both axes.
func ContainFit(srcW, srcH, boxW, boxH float64) Placement {
	scale := boxW / srcW
	if s := boxH / srcH; s < scale {
		scale = s
	}
	drawW := srcW * scale
	drawH := srcH * scale
	return Placement{
		DrawW:   drawW,
		DrawH:   drawH,
		OffsetX: (boxW - drawW) / 2,
		OffsetY: (boxH - drawH) / 2,
	}
}

// ScaledHeight returns the height that keeps the aspect ratio of a
// srcW×srcH image drawn at width w.
func ScaledHeight(srcW, srcH, w float64) float64 {
	if srcW <= 0 {
		return 0
	}
	return w * srcH / srcW
}
