package tool

import (
	"slices"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/store"
	"github.com/inamate/sketchpad/internal/typeid"
)

const (
	SelectionColour  = "red"
	selectionPadding = 5
)

// SelectionMode is the selection tool's interaction state.
type SelectionMode int

const (
	SelectionIdle SelectionMode = iota
	SelectionDragging
	SelectionMarquee
)

func (m SelectionMode) String() string {
	switch m {
	case SelectionDragging:
		return "dragging"
	case SelectionMarquee:
		return "marquee"
	}
	return "idle"
}

func (m SelectionMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// SelectionState is the selection tool's substate.
type SelectionState struct {
	Selected []typeid.EntityID `json:"selected"`
	Mode     SelectionMode     `json:"mode"`
	// Last is the world position of the previous drag step.
	Last geom.Vec `json:"last"`
	// Anchor and Current span the marquee.
	Anchor  geom.Vec `json:"anchor"`
	Current geom.Vec `json:"current"`
}

// IsSelected reports whether id is in the selection.
func (s SelectionState) IsSelected(id typeid.EntityID) bool {
	return slices.Contains(s.Selected, id)
}

// Marquee returns the rubber-band rectangle in world space.
func (s SelectionState) Marquee() geom.Rect {
	return geom.FromPoints(s.Anchor, s.Current)
}

// SelectionTool selects entities by click or rubber band and drags them.
type SelectionTool struct {
	env   Env
	state *store.Store[SelectionState]
}

func NewSelectionTool(env Env) *SelectionTool {
	return &SelectionTool{env: env, state: store.New(SelectionState{})}
}

func (s *SelectionTool) ID() ID                { return Selection }
func (s *SelectionTool) Name() string          { return "Selection Tool" }
func (s *SelectionTool) State() SelectionState { return s.state.Get() }
func (s *SelectionTool) DebugState() any       { return s.state.Get() }
func (s *SelectionTool) OnActivate()           { s.Reset() }
func (s *SelectionTool) OnDeactivate()         { s.Reset() }

func (s *SelectionTool) Reset() {
	s.state.Set(SelectionState{})
}

func (s *SelectionTool) OnChange(fn func()) func() {
	return s.state.Subscribe(func(SelectionState, SelectionState) { fn() })
}

// OnPointerDown starts a drag when the press lands on an entity and a
// marquee otherwise. Shift extends the selection instead of replacing it.
func (s *SelectionTool) OnPointerDown(ev gesture.PointerEvent) {
	pos := s.env.WorldPos(ev)
	st := s.state.Get()
	extend := ev.Mods.Has(gesture.ModShift)

	hit := s.env.Space.EntityAtPosition(pos)
	if hit == nil {
		selected := st.Selected
		if !extend {
			selected = nil
		}
		s.state.Set(SelectionState{Selected: selected, Mode: SelectionMarquee, Anchor: pos, Current: pos})
		return
	}

	selected := st.Selected
	switch {
	case st.IsSelected(hit.ID()):
		// drag the existing selection as a group
	case extend:
		selected = append(slices.Clip(selected), hit.ID())
	default:
		selected = []typeid.EntityID{hit.ID()}
	}
	s.state.Set(SelectionState{Selected: selected, Mode: SelectionDragging, Last: pos})
}

// OnPointerMove moves every selected entity in a single scene update.
func (s *SelectionTool) OnPointerMove(ev gesture.PointerEvent) {
	st := s.state.Get()
	pos := s.env.WorldPos(ev)

	switch st.Mode {
	case SelectionDragging:
		delta := pos.Sub(st.Last)
		if delta == geom.Zero || len(st.Selected) == 0 {
			return
		}
		s.env.Space.BulkTransformEntity(func(cur []entity.Entity) []entity.Entity {
			var moved []entity.Entity
			for _, e := range cur {
				if st.IsSelected(e.ID()) {
					moved = append(moved, e.WithPositionOffset(delta))
				}
			}
			return moved
		})
		st.Last = pos
		s.state.Set(st)
	case SelectionMarquee:
		st.Current = pos
		s.state.Set(st)
	}
}

// OnPointerUp ends a drag or resolves the marquee. The selection survives
// the release.
func (s *SelectionTool) OnPointerUp(ev gesture.PointerEvent) {
	st := s.state.Get()
	switch st.Mode {
	case SelectionMarquee:
		st.Current = s.env.WorldPos(ev)
		if r := st.Marquee(); !r.IsEmpty() {
			for _, e := range s.env.Space.EntitiesInRect(r) {
				if !st.IsSelected(e.ID()) {
					st.Selected = append(slices.Clip(st.Selected), e.ID())
				}
			}
		}
	case SelectionIdle:
		return
	}
	s.state.Set(SelectionState{Selected: st.Selected})
}

func (s *SelectionTool) Render(ctx render.Context) {
	st := s.state.Get()
	cur := s.env.Space.Current()
	zoom := s.env.Zoom()

	withSaved(ctx, func() {
		ctx.SetStrokeStyle(SelectionColour)
		ctx.SetLineWidth(2 / zoom)
		ctx.SetLineDash([]float64{10, 10})
		for _, id := range st.Selected {
			if cur == nil {
				break
			}
			e, ok := cur.Get(id)
			if !ok {
				continue
			}
			corners := e.Bounds().Inflate(selectionPadding, selectionPadding).Points()
			polyline(ctx, corners[:])
			ctx.ClosePath()
			ctx.Stroke()
		}

		if st.Mode == SelectionMarquee {
			r := st.Marquee()
			ctx.SetStrokeStyle(PreviewColour)
			ctx.SetLineWidth(1 / zoom)
			ctx.SetLineDash([]float64{4, 4})
			ctx.BeginPath()
			ctx.Rect(r.X, r.Y, r.Width, r.Height)
			ctx.Stroke()
		}
	})
}
