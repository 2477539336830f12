// Package camera maps between screen (device pixel) space and world space.
//
// The viewport's center is where the world origin lands on screen, and zoom
// is the number of device pixels per world unit.
package camera

import (
	"math"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/store"
)

// MinZoom is the hard floor applied by ZoomToPoint.
const MinZoom = 0.1

// Camera is a snapshot of the view state.
type Camera struct {
	Zoom     float64
	Viewport geom.Rect
}

// Default returns the camera used before the surface reports its size.
func Default() Camera {
	return Camera{Zoom: 1, Viewport: geom.FromXYWH(0, 0, 200, 200)}
}

// Transform returns the world-to-screen matrix.
func (c Camera) Transform() geom.Matrix {
	center := c.Viewport.Center()
	return geom.Translate(center.X, center.Y).Multiply(geom.Scale(c.Zoom, c.Zoom))
}

// ScreenToSpace converts a device pixel position to world coordinates.
func (c Camera) ScreenToSpace(screen geom.Vec) geom.Vec {
	inv, ok := c.Transform().Invert()
	if !ok {
		return geom.Vec{}
	}
	return inv.Apply(screen)
}

// SpaceToScreen converts a world position to device pixels.
func (c Camera) SpaceToScreen(world geom.Vec) geom.Vec {
	return c.Transform().Apply(world)
}

// VisibleBounds returns the world rectangle shown on a surface of the given
// device size.
func (c Camera) VisibleBounds(width, height float64) geom.Rect {
	inv, ok := c.Transform().Invert()
	if !ok {
		return geom.Rect{}
	}
	return inv.ApplyRect(geom.FromXYWH(0, 0, width, height))
}

// ZoomedToPoint returns the camera after changing zoom by delta while keeping
// the world point under screen fixed on screen.
func (c Camera) ZoomedToPoint(screen geom.Vec, delta float64) Camera {
	world := c.ScreenToSpace(screen)
	zoom := math.Max(c.Zoom+delta, MinZoom)
	center := geom.V(screen.X-world.X*zoom, screen.Y-world.Y*zoom)
	return Camera{Zoom: zoom, Viewport: c.Viewport.WithCenter(center)}
}

// Partial carries the fields of an UpdateCamera call. Nil fields are left
// unchanged.
type Partial struct {
	Zoom     *float64
	Viewport *geom.Rect
}

// Store is the process-wide camera for the editing session.
type Store struct {
	s *store.Store[Camera]
}

// NewStore creates a store holding Default().
func NewStore() *Store {
	return &Store{s: store.New(Default())}
}

// Camera returns the current state.
func (cs *Store) Camera() Camera { return cs.s.Get() }

// SetCamera replaces the whole camera.
func (cs *Store) SetCamera(c Camera) { cs.s.Set(c) }

// UpdateCamera replaces the fields set in p.
func (cs *Store) UpdateCamera(p Partial) {
	cs.s.Update(func(c Camera) Camera {
		if p.Zoom != nil {
			c.Zoom = *p.Zoom
		}
		if p.Viewport != nil {
			c.Viewport = *p.Viewport
		}
		return c
	})
}

// ScreenToSpace converts using the current camera.
func (cs *Store) ScreenToSpace(screen geom.Vec) geom.Vec {
	return cs.s.Get().ScreenToSpace(screen)
}

// SpaceToScreen converts using the current camera.
func (cs *Store) SpaceToScreen(world geom.Vec) geom.Vec {
	return cs.s.Get().SpaceToScreen(world)
}

// ContainsPoint reports whether a device pixel position is inside the
// viewport.
func (cs *Store) ContainsPoint(screen geom.Vec) bool {
	return cs.s.Get().Viewport.Contains(screen)
}

// ZoomToPoint changes zoom by delta, anchored at a screen position. Zoom
// never drops below MinZoom.
func (cs *Store) ZoomToPoint(screen geom.Vec, delta float64) {
	cs.s.Set(cs.s.Get().ZoomedToPoint(screen, delta))
}

// PanTo moves the viewport so its center is at the given screen position.
func (cs *Store) PanTo(center geom.Vec) {
	cs.s.Update(func(c Camera) Camera {
		c.Viewport = c.Viewport.WithCenter(center)
		return c
	})
}

// Subscribe registers a listener for camera changes.
func (cs *Store) Subscribe(l store.Listener[Camera]) func() {
	return cs.s.Subscribe(l)
}
