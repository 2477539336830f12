// Package input routes gesture events to the camera or the current tool.
//
// Non-primary buttons pan the camera and never reach a tool. Primary
// presses and moves are held back while a pan runs. Wheel events
// zoom or pan the camera directly. Everything else goes to the current
// tool's handlers.
package input

import (
	"fmt"
	"log/slog"

	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/tool"
)

// ZoomPerPixel converts vertical wheel delta to zoom delta.
const ZoomPerPixel = 0.001

// Router is the shared input adapter in front of the tools.
type Router struct {
	camera *camera.Store
	tools  *tool.Registry
	dpr    func() float64

	panning bool
	// panStart is the pointer position relative to the viewport center when
	// the pan began, in device pixels.
	panStart geom.Vec
	last     geom.Vec
}

func NewRouter(cam *camera.Store, tools *tool.Registry, dpr func() float64) *Router {
	return &Router{camera: cam, tools: tools, dpr: dpr}
}

func (r *Router) device(p geom.Vec) geom.Vec {
	d := 1.0
	if r.dpr != nil && r.dpr() > 0 {
		d = r.dpr()
	}
	return p.Mul(d)
}

// Panning reports whether a camera pan is in progress.
func (r *Router) Panning() bool { return r.panning }

// LastPointer returns the most recent pointer position in client pixels.
func (r *Router) LastPointer() geom.Vec { return r.last }

func (r *Router) PointerDown(ev gesture.PointerEvent) {
	r.last = ev.Client
	if r.panning {
		return
	}
	if ev.Button != gesture.ButtonPrimary {
		r.panning = true
		r.panStart = r.device(ev.Client).Sub(r.camera.Camera().Viewport.Center())
		return
	}
	if h, ok := r.tools.Current().(tool.PointerDownHandler); ok {
		r.dispatch("pointer down", func() { h.OnPointerDown(ev) })
	}
}

func (r *Router) PointerMove(ev gesture.PointerEvent) {
	r.last = ev.Client
	if r.panning {
		r.camera.PanTo(r.device(ev.Client).Sub(r.panStart))
		return
	}
	if h, ok := r.tools.Current().(tool.PointerMoveHandler); ok {
		r.dispatch("pointer move", func() { h.OnPointerMove(ev) })
	}
}

func (r *Router) PointerUp(ev gesture.PointerEvent) {
	r.last = ev.Client
	if ev.Button != gesture.ButtonPrimary {
		r.panning = false
		return
	}
	// A primary release always reaches the tool, even mid-pan, so a gesture
	// started before the pan still ends.
	if h, ok := r.tools.Current().(tool.PointerUpHandler); ok {
		r.dispatch("pointer up", func() { h.OnPointerUp(ev) })
	}
}

// Wheel pans on a trackpad swipe and zooms around the pointer otherwise.
func (r *Router) Wheel(ev gesture.WheelEvent) {
	if ev.IsSwipe() {
		center := r.camera.Camera().Viewport.Center()
		r.camera.PanTo(center.Sub(ev.Delta))
		return
	}
	delta := ev.Delta.Y * ZoomPerPixel
	if delta == 0 {
		return
	}
	r.camera.ZoomToPoint(r.device(ev.Client), delta)
}

// dispatch runs a tool handler and logs anything it panics with, so a
// broken handler cannot take down the input loop.
func (r *Router) dispatch(event string, fn func()) {
	defer func() {
		if p := recover(); p != nil {
			slog.Error("tool handler failed", "tool", string(r.tools.CurrentID()), "event", event, "error", fmt.Sprint(p))
		}
	}()
	fn()
}
