package render

import (
	"github.com/inamate/sketchpad/internal/entity"
)

// BoundsColour is the outline colour of the bounds layer.
const BoundsColour = "#22c55e"

type lineRenderer struct{}

// NewLineRenderer draws Line entities.
func NewLineRenderer() Renderer { return lineRenderer{} }

func (lineRenderer) Name() string              { return "LineRenderer" }
func (lineRenderer) ShouldRender(Context) bool { return true }

func (lineRenderer) Render(ctx Context, opts Options) error {
	ctx.SetLineDash(nil)
	for _, e := range opts.Entities {
		l, ok := e.(entity.Line)
		if !ok {
			continue
		}
		ctx.BeginPath()
		ctx.MoveTo(l.Start().X, l.Start().Y)
		ctx.LineTo(l.End().X, l.End().Y)
		ctx.SetLineWidth(l.Width())
		ctx.SetStrokeStyle(l.Colour())
		ctx.Stroke()
	}
	return nil
}

type strokeRenderer struct{}

// NewStrokeRenderer draws Stroke entities.
func NewStrokeRenderer() Renderer { return strokeRenderer{} }

func (strokeRenderer) Name() string              { return "StrokeRenderer" }
func (strokeRenderer) ShouldRender(Context) bool { return true }

func (strokeRenderer) Render(ctx Context, opts Options) error {
	ctx.SetLineDash(nil)
	for _, e := range opts.Entities {
		s, ok := e.(entity.Stroke)
		if !ok {
			continue
		}
		ctx.BeginPath()
		for i := range s.Len() {
			p := s.Point(i)
			if i == 0 {
				ctx.MoveTo(p.X, p.Y)
			} else {
				ctx.LineTo(p.X, p.Y)
			}
		}
		ctx.SetLineWidth(s.Width())
		ctx.SetStrokeStyle(s.Colour())
		ctx.Stroke()
	}
	return nil
}

type boundsRenderer struct{}

// NewBoundsRenderer outlines the bounding box of every entity.
func NewBoundsRenderer() Renderer { return boundsRenderer{} }

func (boundsRenderer) Name() string              { return "BoundsRenderer" }
func (boundsRenderer) ShouldRender(Context) bool { return true }

func (boundsRenderer) Render(ctx Context, opts Options) error {
	zoom := opts.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	ctx.SetLineDash(nil)
	ctx.SetLineWidth(1 / zoom)
	ctx.SetStrokeStyle(BoundsColour)
	for _, e := range opts.Entities {
		b := e.Bounds()
		ctx.BeginPath()
		ctx.Rect(b.X, b.Y, b.Width, b.Height)
		ctx.Stroke()
	}
	return nil
}
