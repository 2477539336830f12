// Package render draws a space through the camera onto a 2D drawing surface.
//
// A frame is painted in a fixed order: clear, camera transform, layer
// renderers, active tool overlay, restore. A failing renderer is logged and
// skipped; nothing raised while drawing escapes the frame.
package render

// Context is the drawing surface. Its operations mirror the HTML canvas 2D
// API: path construction, stroke and fill, a save/restore state stack and a
// current transform that applies to every coordinate passed in.
type Context interface {
	Save() error
	Restore() error
	Translate(x, y float64)
	Scale(sx, sy float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// Arc adds a circular arc centered at (x, y). Angles are in radians.
	Arc(x, y, r, start, end float64)
	Rect(x, y, w, h float64)
	Stroke()
	Fill()

	SetStrokeStyle(colour string)
	SetFillStyle(colour string)
	SetLineWidth(w float64)
	// SetLineDash sets the dash pattern. An empty pattern draws solid lines.
	SetLineDash(segments []float64)

	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
}

// Size is a surface size in logical or device pixels.
type Size struct {
	Width, Height float64
}

func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

// Scaled returns the size multiplied by a device pixel ratio.
func (s Size) Scaled(dpr float64) Size {
	if dpr <= 0 {
		dpr = 1
	}
	return Size{Width: s.Width * dpr, Height: s.Height * dpr}
}
