package tool

import (
	"math"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/store"
	"github.com/inamate/sketchpad/internal/typeid"
)

// LineState is the line tool's substate.
type LineState struct {
	Start   geom.Vec `json:"start"`
	Current geom.Vec `json:"current"`
	Drawing bool     `json:"drawing"`
}

// LineTool draws straight lines from press to release.
type LineTool struct {
	env   Env
	style Style
	state *store.Store[LineState]
}

func NewLineTool(env Env, style Style) *LineTool {
	return &LineTool{env: env, style: style, state: store.New(LineState{})}
}

func (l *LineTool) ID() ID           { return Line }
func (l *LineTool) Name() string     { return "Line Tool" }
func (l *LineTool) State() LineState { return l.state.Get() }
func (l *LineTool) DebugState() any  { return l.state.Get() }
func (l *LineTool) OnActivate()      { l.Reset() }
func (l *LineTool) OnDeactivate()    { l.Reset() }

func (l *LineTool) Reset() {
	l.state.Set(LineState{})
}

func (l *LineTool) OnChange(fn func()) func() {
	return l.state.Subscribe(func(LineState, LineState) { fn() })
}

func (l *LineTool) OnPointerDown(ev gesture.PointerEvent) {
	pos := l.env.WorldPos(ev)
	l.state.Set(LineState{Start: pos, Current: pos, Drawing: true})
}

func (l *LineTool) OnPointerMove(ev gesture.PointerEvent) {
	st := l.state.Get()
	if !st.Drawing {
		return
	}
	st.Current = l.env.WorldPos(ev)
	l.state.Set(st)
}

func (l *LineTool) OnPointerUp(gesture.PointerEvent) {
	st := l.state.Get()
	if !st.Drawing {
		return
	}
	l.env.Space.AddEntity(entity.NewLine(typeid.EntityID{}, st.Start, st.Current, l.style.Width, l.style.Colour))
	l.Reset()
}

func (l *LineTool) Render(ctx render.Context) {
	st := l.state.Get()
	if !st.Drawing {
		return
	}
	zoom := l.env.Zoom()
	withSaved(ctx, func() {
		ctx.SetStrokeStyle(PreviewColour)
		ctx.SetLineWidth(2 / zoom)
		ctx.SetLineDash([]float64{5, 5})
		ctx.BeginPath()
		ctx.MoveTo(st.Start.X, st.Start.Y)
		ctx.LineTo(st.Current.X, st.Current.Y)
		ctx.Stroke()

		ctx.SetFillStyle(PreviewColour)
		ctx.SetLineDash(nil)
		for _, p := range []geom.Vec{st.Start, st.Current} {
			ctx.BeginPath()
			ctx.Arc(p.X, p.Y, 4/zoom, 0, 2*math.Pi)
			ctx.Fill()
		}
	})
}
