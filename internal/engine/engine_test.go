package engine

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/render/rendertest"
	"github.com/inamate/sketchpad/internal/tool"
)

type fakeMetrics struct {
	frames   int
	failures []string
	entities []int
	switches []string
}

func (m *fakeMetrics) FrameRendered(time.Duration) { m.frames++ }
func (m *fakeMetrics) RendererFailed(name string)  { m.failures = append(m.failures, name) }
func (m *fakeMetrics) EntitiesChanged(n int)       { m.entities = append(m.entities, n) }
func (m *fakeMetrics) ToolSwitched(id string)      { m.switches = append(m.switches, id) }

type fixture struct {
	engine  *Engine
	queue   *render.FrameQueue
	surface *rendertest.Recorder
	metrics *fakeMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		queue:   render.NewFrameQueue(),
		surface: &rendertest.Recorder{},
		metrics: &fakeMetrics{},
	}
	f.engine = New(Options{Scheduler: f.queue, Metrics: f.metrics})
	f.engine.Resize(600, 400, 1)
	f.engine.Attach(f.surface)
	t.Cleanup(f.engine.Close)
	return f
}

func (f *fixture) runFrame(at time.Time) {
	f.surface.Calls = nil
	f.queue.RunFrame(at)
}

func TestNewDefaults(t *testing.T) {
	e := New(Options{})
	defer e.Close()

	assert.Equal(t, tool.Pen, e.Tools().CurrentID())
	assert.Equal(t, []string{render.LayerLines}, e.Canvas().State().ActiveLayers)
	assert.Len(t, e.Tools().Tools(), 3)
	assert.Equal(t, 1.0, e.DPR())
}

func TestResizeSetsViewportOnceThenKeepsZoomAndCenter(t *testing.T) {
	e := New(Options{Scheduler: render.NewFrameQueue()})
	defer e.Close()

	e.Resize(300, 200, 2)
	cam := e.Camera().Camera()
	assert.Equal(t, 1.0, cam.Zoom)
	assert.Equal(t, geom.FromXYWH(-300, -200, 600, 400), cam.Viewport)
	assert.Equal(t, 300.0, e.Canvas().State().Config.Width)
	assert.Equal(t, 2.0, e.DPR())

	e.Camera().ZoomToPoint(geom.V(0, 0), 0.5)
	e.Camera().PanTo(geom.V(40, 30))
	e.Resize(400, 200, 2)

	cam = e.Camera().Camera()
	assert.InDelta(t, 1.5, cam.Zoom, 1e-12)
	assert.True(t, cam.Viewport.Center().Equal(geom.V(40, 30)))
	assert.Equal(t, geom.V(800, 400), cam.Viewport.Size())
}

func TestResizeIgnoresEmptySurface(t *testing.T) {
	e := New(Options{Scheduler: render.NewFrameQueue()})
	defer e.Close()

	before := e.Camera().Camera()
	e.Resize(0, 100, 1)
	assert.Equal(t, before, e.Camera().Camera())
}

func TestFrameRequestsCoalesce(t *testing.T) {
	f := newFixture(t)
	f.engine.Seed()
	f.engine.Camera().PanTo(geom.V(5, 5))
	assert.Equal(t, 1, f.queue.Pending())

	f.runFrame(time.Now())
	assert.Equal(t, uint64(1), f.engine.Frames())
	assert.Equal(t, 1, f.metrics.frames)
	assert.Len(t, f.surface.Find("Stroke"), 4)
	assert.Equal(t, 0, f.queue.Pending())
}

func TestNoSurfaceNoFrame(t *testing.T) {
	q := render.NewFrameQueue()
	e := New(Options{Scheduler: q})
	defer e.Close()

	e.Seed()
	q.RunFrame(time.Now())
	assert.Equal(t, uint64(0), e.Frames())

	e.Camera().PanTo(geom.V(1, 1))
	assert.Equal(t, 1, q.Pending(), "a skipped frame does not block later requests")
}

func TestNoLayersNoFrame(t *testing.T) {
	f := newFixture(t)
	f.runFrame(time.Now())
	require.Equal(t, uint64(1), f.engine.Frames())

	f.engine.Canvas().ClearLayers()
	f.runFrame(time.Now())
	assert.Equal(t, uint64(1), f.engine.Frames())
	assert.Empty(t, f.surface.Calls)
}

func TestContinuousRendering(t *testing.T) {
	f := newFixture(t)
	f.engine.StartRendering()
	require.True(t, f.engine.Canvas().State().Rendering)

	t0 := time.Unix(1000, 0)
	f.runFrame(t0)
	f.runFrame(t0.Add(500 * time.Millisecond))
	f.runFrame(t0.Add(time.Second))
	assert.Equal(t, uint64(3), f.engine.Frames())
	assert.InDelta(t, 3.0, f.engine.FPS(), 1e-9)
	assert.Equal(t, 1, f.queue.Pending())

	f.engine.TriggerRender()
	assert.Equal(t, 1, f.queue.Pending(), "the loop already covers the next frame")

	f.engine.StopRendering()
	st := f.engine.Canvas().State()
	assert.False(t, st.Rendering)
	assert.False(t, st.LastRender.IsZero())
	assert.Equal(t, 0, f.queue.Pending())

	f.engine.TriggerRender()
	assert.Equal(t, 1, f.queue.Pending())
}

func TestDrawingWithPen(t *testing.T) {
	f := newFixture(t)
	f.engine.Seed()

	f.engine.PointerDown(gesture.PointerEvent{Client: geom.V(100, 100)})
	f.engine.PointerMove(gesture.PointerEvent{Client: geom.V(120, 100)})
	f.engine.PointerUp(gesture.PointerEvent{Client: geom.V(140, 100)})

	cur := f.engine.Space().Current()
	require.Equal(t, 5, cur.Len())
	stroke, ok := cur.Entities()[4].(entity.Stroke)
	require.True(t, ok)
	assert.Equal(t, []geom.Vec{geom.V(100, 100), geom.V(120, 100), geom.V(140, 100)}, stroke.Points())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, f.metrics.entities)
}

func TestSetTool(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.engine.SetTool(tool.Selection))
	assert.ErrorIs(t, f.engine.SetTool("eraser"), tool.ErrUnknownTool)
	assert.Equal(t, tool.Selection, f.engine.Tools().CurrentID())
	assert.Equal(t, []string{"pen", "selection"}, f.metrics.switches)
}

func TestHitTest(t *testing.T) {
	f := newFixture(t)
	f.engine.Seed()

	id := f.engine.HitTest(geom.V(15, 400))
	require.False(t, id.IsZero())
	ent, ok := f.engine.Space().Current().Get(id)
	require.True(t, ok)
	assert.Equal(t, entity.KindLine, ent.Kind())

	assert.True(t, f.engine.HitTest(geom.V(400, 400)).IsZero())
}

func TestOnFrameSnapshot(t *testing.T) {
	f := newFixture(t)
	f.engine.Seed()

	var got []Snapshot
	f.engine.OnFrame(func(s Snapshot) { got = append(got, s) })
	f.engine.PointerMove(gesture.PointerEvent{Client: geom.V(7, 9)})
	f.runFrame(time.Unix(2000, 0))

	require.Len(t, got, 1)
	snap := got[0]
	assert.Equal(t, uint64(1), snap.Frame)
	assert.Equal(t, geom.V(7, 9), snap.Pointer)
	assert.Equal(t, "pen", snap.Tool.ID)
	assert.Equal(t, "Pen Tool", snap.Tool.Name)
	assert.Len(t, snap.Entities, 4)
	assert.Equal(t, "line", snap.Entities[0].Kind)
	assert.NotEmpty(t, snap.SpaceID)
	assert.InDelta(t, 600, snap.Camera.Visible.Width, 1e-9)
	assert.InDelta(t, 400, snap.Camera.Visible.Height, 1e-9)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"pen"`)
	assert.Contains(t, string(raw), `"zoom":1`)
	assert.Contains(t, string(raw), `"visible":`)
}

func TestSnapshotWithoutSpace(t *testing.T) {
	f := newFixture(t)
	snap := f.engine.Snapshot()
	assert.Empty(t, snap.SpaceID)
	assert.NotNil(t, snap.Entities)
	assert.Empty(t, snap.Entities)
}

func TestCloseStopsScheduling(t *testing.T) {
	f := newFixture(t)
	f.engine.StartRendering()
	f.engine.Close()
	assert.Equal(t, 0, f.queue.Pending())

	f.engine.Seed()
	f.engine.TriggerRender()
	assert.Equal(t, 0, f.queue.Pending())
	assert.NotPanics(t, f.engine.Close)
}
