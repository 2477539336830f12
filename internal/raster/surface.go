// Package raster draws frames into an in-memory RGBA image. It backs the
// desktop window and headless snapshots.
package raster

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
)

// ErrRestoreUnderflow is returned by Restore without a matching Save.
var ErrRestoreUnderflow = errors.New("restore without save")

// paintState is the part of the drawing state gg does not track for us.
type paintState struct {
	width float64
	dash  []float64
	fill  color.NRGBA
}

// Surface implements render.Context on a gg drawing context. Line widths and
// dash lengths are given in user space and scale with the current transform.
// Only translate and scale transforms are used, so FillRect and ClearRect
// stay axis aligned.
type Surface struct {
	dc    *gg.Context
	paint paintState
	saved []paintState
}

// NewSurface creates a transparent surface of w by h device pixels.
func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

// Resize replaces the backing image. Drawing state is reset.
func (s *Surface) Resize(w, h int) {
	s.dc = gg.NewContext(max(w, 1), max(h, 1))
	s.paint = paintState{width: 1, fill: color.NRGBA{A: 255}}
	s.saved = nil
	s.dc.SetColor(s.paint.fill)
}

func (s *Surface) Width() int  { return s.dc.Width() }
func (s *Surface) Height() int { return s.dc.Height() }

// Image returns the backing image. It is reused between frames.
func (s *Surface) Image() *image.RGBA {
	return s.dc.Image().(*image.RGBA)
}

// SavePNG writes the current image to path.
func (s *Surface) SavePNG(path string) error {
	return s.dc.SavePNG(path)
}

func (s *Surface) Save() error {
	s.dc.Push()
	s.saved = append(s.saved, s.paint)
	return nil
}

func (s *Surface) Restore() error {
	if len(s.saved) == 0 {
		return ErrRestoreUnderflow
	}
	s.dc.Pop()
	s.paint = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *Surface) Scale(sx, sy float64)   { s.dc.Scale(sx, sy) }
func (s *Surface) BeginPath()             { s.dc.ClearPath() }
func (s *Surface) MoveTo(x, y float64)    { s.dc.MoveTo(x, y) }
func (s *Surface) LineTo(x, y float64)    { s.dc.LineTo(x, y) }
func (s *Surface) ClosePath()             { s.dc.ClosePath() }

func (s *Surface) Arc(x, y, r, start, end float64) {
	s.dc.DrawArc(x, y, r, start, end)
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.dc.DrawRectangle(x, y, w, h)
}

func (s *Surface) Stroke() {
	k := s.scale()
	s.dc.SetLineWidth(s.paint.width * k)
	dash := make([]float64, len(s.paint.dash))
	for i, d := range s.paint.dash {
		dash[i] = d * k
	}
	s.dc.SetDash(dash...)
	s.dc.StrokePreserve()
}

func (s *Surface) Fill() { s.dc.FillPreserve() }

func (s *Surface) SetStrokeStyle(colour string) {
	if c, ok := parseStyle(colour); ok {
		s.dc.SetStrokeStyle(gg.NewSolidPattern(c))
	}
}

func (s *Surface) SetFillStyle(colour string) {
	if c, ok := parseStyle(colour); ok {
		s.paint.fill = c
		s.dc.SetFillStyle(gg.NewSolidPattern(c))
	}
}

func (s *Surface) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
		s.paint.width = w
	}
}

func (s *Surface) SetLineDash(segments []float64) {
	s.paint.dash = append([]float64(nil), segments...)
}

// FillRect paints a rectangle with the fill colour without touching the
// current path.
func (s *Surface) FillRect(x, y, w, h float64) {
	draw.Draw(s.Image(), s.deviceRect(x, y, w, h), image.NewUniform(s.paint.fill), image.Point{}, draw.Over)
}

// ClearRect makes a rectangle fully transparent.
func (s *Surface) ClearRect(x, y, w, h float64) {
	draw.Draw(s.Image(), s.deviceRect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) deviceRect(x, y, w, h float64) image.Rectangle {
	x0, y0 := s.dc.TransformPoint(x, y)
	x1, y1 := s.dc.TransformPoint(x+w, y+h)
	return image.Rect(
		int(math.Round(x0)), int(math.Round(y0)),
		int(math.Round(x1)), int(math.Round(y1)),
	)
}

// scale is the length of a user-space unit vector in device pixels.
func (s *Surface) scale() float64 {
	ox, oy := s.dc.TransformPoint(0, 0)
	ux, uy := s.dc.TransformPoint(1, 0)
	return math.Hypot(ux-ox, uy-oy)
}

func parseStyle(colour string) (color.NRGBA, bool) {
	c, err := ParseColour(colour)
	if err != nil {
		slog.Debug("colour ignored", "colour", colour, "error", err)
		return color.NRGBA{}, false
	}
	return c, true
}
