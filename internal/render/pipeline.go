package render

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/entity"
)

// Frame is a consistent snapshot of everything one frame draws.
type Frame struct {
	// Size is the logical surface size.
	Size       Size
	DPR        float64
	Background string
	Camera     camera.Camera
	Entities   []entity.Entity
	Layers     []string
	Overlay    Overlay
}

// Observer is told about frame timings and renderer failures.
type Observer interface {
	FrameRendered(d time.Duration)
	RendererFailed(name string)
}

type nopObserver struct{}

func (nopObserver) FrameRendered(time.Duration) {}
func (nopObserver) RendererFailed(string)       {}

// Pipeline paints frames from a fixed layer table.
type Pipeline struct {
	layers   []Layer
	observer Observer
}

// NewPipeline creates a pipeline over layers. A nil observer is allowed.
func NewPipeline(layers []Layer, observer Observer) *Pipeline {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Pipeline{layers: layers, observer: observer}
}

// Layers returns the layer names in paint order.
func (p *Pipeline) Layers() []string {
	names := make([]string, len(p.layers))
	for i, l := range p.layers {
		names[i] = l.Name
	}
	return names
}

// Renderers returns the factories of every active layer, in layer order.
func (p *Pipeline) Renderers(active []string) []Factory {
	var out []Factory
	for _, l := range p.layers {
		if slices.Contains(active, l.Name) {
			out = append(out, l.Renderers...)
		}
	}
	return out
}

// Render paints f onto ctx. It reports false without touching ctx when no
// layer is active or the surface has no area.
func (p *Pipeline) Render(ctx Context, f Frame) bool {
	if len(f.Layers) == 0 || f.Size.IsZero() {
		return false
	}
	start := time.Now()

	px := f.Size.Scaled(f.DPR)
	if f.Background != "" {
		ctx.SetFillStyle(f.Background)
		ctx.FillRect(0, 0, px.Width, px.Height)
	} else {
		ctx.ClearRect(0, 0, px.Width, px.Height)
	}

	if err := ctx.Save(); err != nil {
		slog.Warn("save drawing state failed", "error", err)
	}
	center := f.Camera.Viewport.Center()
	ctx.Translate(center.X, center.Y)
	ctx.Scale(f.Camera.Zoom, f.Camera.Zoom)

	opts := Options{Entities: f.Entities, Canvas: f.Size, Camera: f.Camera}
	for _, factory := range p.Renderers(f.Layers) {
		if name, err := runRenderer(ctx, factory, opts); err != nil {
			slog.Warn("renderer failed", "renderer", name, "error", err)
			p.observer.RendererFailed(name)
		}
	}

	if f.Overlay != nil {
		if err := runOverlay(ctx, f.Overlay); err != nil {
			slog.Warn("tool overlay failed", "error", err)
			p.observer.RendererFailed("overlay")
		}
	}

	if err := restore(ctx); err != nil {
		slog.Warn("restore drawing state failed", "error", err)
	}

	p.observer.FrameRendered(time.Since(start))
	return true
}

func runRenderer(ctx Context, factory Factory, opts Options) (name string, err error) {
	name = "unknown"
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	r := factory()
	name = r.Name()
	if !r.ShouldRender(ctx) {
		return name, nil
	}
	return name, r.Render(ctx, opts)
}

func runOverlay(ctx Context, o Overlay) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	o.Render(ctx)
	return nil
}

func restore(ctx Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return ctx.Restore()
}
