// Package tool implements the interactive editing modes and the registry
// that keeps exactly one of them current.
//
// Handlers receive raw gesture events. Each tool converts client
// coordinates to world space itself, through Env, so the camera stays the
// only place the screen mapping lives.
package tool

import (
	"log/slog"

	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/space"
)

// ID names a tool.
type ID string

const (
	None      ID = ""
	Selection ID = "selection"
	Line      ID = "line"
	Pen       ID = "pen"
)

// PreviewColour is used for in-progress drawing overlays.
const PreviewColour = "#3b82f6"

// Tool is the contract every editing mode fulfils. Input and lifecycle
// hooks are optional and discovered through the handler interfaces below.
type Tool interface {
	ID() ID
	Name() string
	// Render draws the tool's overlay in world space.
	Render(ctx render.Context)
	// Reset returns transient interaction state to its initial value.
	Reset()
	// OnChange registers fn to run whenever the tool's state changes.
	OnChange(fn func()) (unsubscribe func())
	// DebugState returns a read-only copy of the tool's state.
	DebugState() any
}

type PointerDownHandler interface {
	OnPointerDown(ev gesture.PointerEvent)
}

type PointerMoveHandler interface {
	OnPointerMove(ev gesture.PointerEvent)
}

type PointerUpHandler interface {
	OnPointerUp(ev gesture.PointerEvent)
}

type Activator interface {
	OnActivate()
}

type Deactivator interface {
	OnDeactivate()
}

// Style is the look of newly created entities.
type Style struct {
	Width  float64
	Colour string
}

// DefaultStyle matches the stroke the editor ships with.
func DefaultStyle() Style {
	return Style{Width: 5, Colour: "#FFFFFF"}
}

// Env gives tools access to the camera and scene.
type Env struct {
	Camera *camera.Store
	Space  *space.Store
	// DPR returns the current device pixel ratio.
	DPR func() float64
}

func (e Env) dpr() float64 {
	if e.DPR == nil {
		return 1
	}
	if d := e.DPR(); d > 0 {
		return d
	}
	return 1
}

// WorldPos converts an event's client position to world coordinates.
func (e Env) WorldPos(ev gesture.PointerEvent) geom.Vec {
	return e.Camera.ScreenToSpace(ev.Client.Mul(e.dpr()))
}

// Zoom returns the current camera zoom.
func (e Env) Zoom() float64 {
	return e.Camera.Camera().Zoom
}

// withSaved runs draw between Save and Restore.
func withSaved(ctx render.Context, draw func()) {
	if err := ctx.Save(); err != nil {
		slog.Warn("save drawing state failed", "error", err)
	}
	draw()
	if err := ctx.Restore(); err != nil {
		slog.Warn("restore drawing state failed", "error", err)
	}
}

func polyline(ctx render.Context, pts []geom.Vec) {
	ctx.BeginPath()
	for i, p := range pts {
		if i == 0 {
			ctx.MoveTo(p.X, p.Y)
		} else {
			ctx.LineTo(p.X, p.Y)
		}
	}
}
