package tool

import (
	"log/slog"
	"slices"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/store"
	"github.com/inamate/sketchpad/internal/typeid"
)

// DefaultSampleInterval is the minimum world distance between two sampled
// pen points.
const DefaultSampleInterval = 2

// PenState is the freehand tool's substate.
type PenState struct {
	Points  []geom.Vec `json:"points"`
	Drawing bool       `json:"drawing"`
}

// PenTool draws freehand strokes.
type PenTool struct {
	env      Env
	style    Style
	interval float64
	state    *store.Store[PenState]
}

func NewPenTool(env Env, style Style, sampleInterval float64) *PenTool {
	if sampleInterval <= 0 {
		sampleInterval = DefaultSampleInterval
	}
	return &PenTool{
		env:      env,
		style:    style,
		interval: sampleInterval,
		state:    store.New(PenState{}),
	}
}

func (p *PenTool) ID() ID          { return Pen }
func (p *PenTool) Name() string    { return "Pen Tool" }
func (p *PenTool) State() PenState { return p.state.Get() }
func (p *PenTool) DebugState() any { return p.state.Get() }
func (p *PenTool) OnActivate()     { p.Reset() }
func (p *PenTool) OnDeactivate()   { p.Reset() }

func (p *PenTool) Reset() {
	p.state.Set(PenState{})
}

func (p *PenTool) OnChange(fn func()) func() {
	return p.state.Subscribe(func(PenState, PenState) { fn() })
}

func (p *PenTool) OnPointerDown(ev gesture.PointerEvent) {
	p.state.Set(PenState{Points: []geom.Vec{p.env.WorldPos(ev)}, Drawing: true})
}

func (p *PenTool) OnPointerMove(ev gesture.PointerEvent) {
	st := p.state.Get()
	if !st.Drawing {
		return
	}
	pos := p.env.WorldPos(ev)
	if pos.Dist(st.Points[len(st.Points)-1]) < p.interval {
		return
	}
	p.state.Set(PenState{Points: append(slices.Clip(st.Points), pos), Drawing: true})
}

// OnPointerUp commits the stroke, including the release point.
func (p *PenTool) OnPointerUp(ev gesture.PointerEvent) {
	st := p.state.Get()
	if !st.Drawing {
		return
	}
	points := append(slices.Clip(st.Points), p.env.WorldPos(ev))
	s, err := entity.NewStroke(typeid.EntityID{}, points, p.style.Width, p.style.Colour)
	if err != nil {
		slog.Warn("pen stroke dropped", "error", err)
	} else {
		p.env.Space.AddEntity(s)
	}
	p.Reset()
}

func (p *PenTool) Render(ctx render.Context) {
	st := p.state.Get()
	if !st.Drawing {
		return
	}
	withSaved(ctx, func() {
		ctx.SetLineDash(nil)
		ctx.SetStrokeStyle(PreviewColour)
		ctx.SetLineWidth(2 / p.env.Zoom())
		polyline(ctx, st.Points)
		ctx.Stroke()
	})
}
