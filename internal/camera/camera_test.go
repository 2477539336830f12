package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inamate/sketchpad/internal/geom"
)

func sampleCameras() []Camera {
	return []Camera{
		Default(),
		{Zoom: 2.5, Viewport: geom.FromXYWH(-300, -200, 600, 400)},
		{Zoom: 0.1, Viewport: geom.FromXYWH(12, 900, 1024, 768)},
		{Zoom: 7.25, Viewport: geom.FromXYWH(-5000, 40, 10, 10)},
	}
}

func TestRoundTrip(t *testing.T) {
	worlds := []geom.Vec{geom.V(0, 0), geom.V(15, -800), geom.V(-1234.5, 0.001)}
	for _, c := range sampleCameras() {
		for _, w := range worlds {
			got := c.ScreenToSpace(c.SpaceToScreen(w))
			assert.True(t, got.Equal(w), "camera %+v world %v got %v", c, w, got)
		}
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	points := []geom.Vec{geom.V(0, 0), geom.V(100, 250), geom.V(-40, 3)}
	deltas := []float64{0.5, -0.05, 3, -0.9}
	for _, c := range sampleCameras() {
		for _, p := range points {
			for _, d := range deltas {
				if c.Zoom+d < MinZoom {
					continue
				}
				cs := NewStore()
				cs.SetCamera(c)
				before := cs.ScreenToSpace(p)
				cs.ZoomToPoint(p, d)
				after := cs.ScreenToSpace(p)
				assert.InDelta(t, before.X, after.X, 1e-6)
				assert.InDelta(t, before.Y, after.Y, 1e-6)
			}
		}
	}
}

func TestZoomFloor(t *testing.T) {
	cs := NewStore()
	for range 50 {
		cs.ZoomToPoint(geom.V(10, 10), -0.3)
		assert.GreaterOrEqual(t, cs.Camera().Zoom, MinZoom)
	}
	assert.InDelta(t, MinZoom, cs.Camera().Zoom, 1e-12)
}

func TestZoomKeepsViewportSize(t *testing.T) {
	cs := NewStore()
	cs.ZoomToPoint(geom.V(37, 81), 1.5)
	vp := cs.Camera().Viewport
	assert.InDelta(t, 200.0, vp.Width, 1e-12)
	assert.InDelta(t, 200.0, vp.Height, 1e-12)
}

func TestUpdateCameraPartial(t *testing.T) {
	cs := NewStore()
	var calls int
	cs.Subscribe(func(cur, prev Camera) { calls++ })

	zoom := 3.0
	cs.UpdateCamera(Partial{Zoom: &zoom})
	assert.Equal(t, 3.0, cs.Camera().Zoom)
	assert.Equal(t, Default().Viewport, cs.Camera().Viewport)

	vp := geom.FromXYWH(-50, -50, 100, 100)
	cs.UpdateCamera(Partial{Viewport: &vp})
	assert.Equal(t, Camera{Zoom: 3, Viewport: vp}, cs.Camera())
	assert.Equal(t, 2, calls)

	assert.Equal(t, geom.V(0, 0), cs.SpaceToScreen(geom.V(0, 0)), "conversion reflects the update")
}

func TestContainsPointAndPan(t *testing.T) {
	cs := NewStore()
	assert.True(t, cs.ContainsPoint(geom.V(200, 200)))
	assert.False(t, cs.ContainsPoint(geom.V(-1, 5)))

	cs.PanTo(geom.V(0, 0))
	assert.Equal(t, geom.FromXYWH(-100, -100, 200, 200), cs.Camera().Viewport)
}

func TestVisibleBounds(t *testing.T) {
	c := Camera{Zoom: 2, Viewport: geom.FromXYWH(-100, -50, 200, 100)}
	r := c.VisibleBounds(200, 100)
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, 0, r.Y, 1e-12)
	assert.InDelta(t, 100, r.Width, 1e-12)
	assert.InDelta(t, 50, r.Height, 1e-12)

	for _, corner := range r.Points() {
		s := c.SpaceToScreen(corner)
		assert.True(t, s.X >= -1e-9 && s.X <= 200+1e-9 && s.Y >= -1e-9 && s.Y <= 100+1e-9)
	}
}

func TestTransformMatchesSpaceToScreen(t *testing.T) {
	for _, c := range sampleCameras() {
		w := geom.V(33, -21)
		assert.True(t, c.Transform().Apply(w).Equal(c.SpaceToScreen(w)))
	}
}
