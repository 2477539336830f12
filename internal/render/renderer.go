package render

import (
	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/entity"
)

// Options is what a renderer receives for one frame.
type Options struct {
	Entities []entity.Entity
	// Canvas is the logical surface size.
	Canvas Size
	Camera camera.Camera
}

// Renderer draws one kind of content. Renderers ignore entity kinds they do
// not handle.
type Renderer interface {
	Name() string
	ShouldRender(ctx Context) bool
	Render(ctx Context, opts Options) error
}

// Factory builds a fresh renderer for each frame.
type Factory func() Renderer

// Layer is a named, toggleable group of renderers.
type Layer struct {
	Name      string
	Renderers []Factory
}

// Layer names known to the editor.
const (
	LayerLines  = "lines"
	LayerBounds = "bounds"
)

// DefaultLayers returns the layer table in paint order.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: LayerLines, Renderers: []Factory{NewLineRenderer, NewStrokeRenderer}},
		{Name: LayerBounds, Renderers: []Factory{NewBoundsRenderer}},
	}
}

// Overlay is drawn after all layers, on top of committed content.
type Overlay interface {
	Render(ctx Context)
}
