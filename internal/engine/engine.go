package engine

import (
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/input"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/space"
	"github.com/inamate/sketchpad/internal/tool"
	"github.com/inamate/sketchpad/internal/typeid"
)

// Metrics receives engine events. metrics.Collector implements it.
type Metrics interface {
	render.Observer
	EntitiesChanged(n int)
	ToolSwitched(id string)
}

type nopMetrics struct{}

func (nopMetrics) FrameRendered(time.Duration) {}
func (nopMetrics) RendererFailed(string)       {}
func (nopMetrics) EntitiesChanged(int)         {}
func (nopMetrics) ToolSwitched(string)         {}

// Options configures a new Engine. Zero fields fall back to defaults.
type Options struct {
	Canvas         canvas.Config
	DPR            float64
	Layers         []string
	Style          tool.Style
	SampleInterval float64
	Tool           tool.ID
	Scheduler      render.Scheduler
	Metrics        Metrics
}

// Engine owns the editing session: camera, space, tools and the frame
// loop. It is single-threaded; every method must be called from the loop
// that drives the scheduler.
type Engine struct {
	camera   *camera.Store
	space    *space.Store
	canvas   *canvas.Store
	tools    *tool.Registry
	router   *input.Router
	pipeline *render.Pipeline
	sched    render.Scheduler
	metrics  Metrics
	surface  render.Context

	dpr   float64
	sized bool

	cancelFrame func()
	unsubs      []func()
	closed      bool

	frames      uint64
	fps         float64
	windowStart time.Time
	windowCount int
	lastFrameAt time.Time
	onFrame     []func(Snapshot)
}

// New creates an engine with the selection, line and pen tools registered.
func New(opts Options) *Engine {
	if opts.Canvas == (canvas.Config{}) {
		opts.Canvas = canvas.DefaultConfig()
	}
	if opts.DPR <= 0 {
		opts.DPR = 1
	}
	if opts.Layers == nil {
		opts.Layers = []string{render.LayerLines}
	}
	if opts.Style == (tool.Style{}) {
		opts.Style = tool.DefaultStyle()
	}
	if opts.Tool == tool.None {
		opts.Tool = tool.Pen
	}
	if opts.Scheduler == nil {
		opts.Scheduler = render.NewFrameQueue()
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}

	e := &Engine{
		camera:   camera.NewStore(),
		space:    space.NewStore(),
		canvas:   canvas.NewStore(opts.Canvas, opts.Layers...),
		tools:    tool.NewRegistry(),
		pipeline: render.NewPipeline(render.DefaultLayers(), opts.Metrics),
		sched:    opts.Scheduler,
		metrics:  opts.Metrics,
		dpr:      opts.DPR,
	}

	env := tool.Env{Camera: e.camera, Space: e.space, DPR: e.DPR}
	e.tools.Register(tool.NewSelectionTool(env))
	e.tools.Register(tool.NewLineTool(env, opts.Style))
	e.tools.Register(tool.NewPenTool(env, opts.Style, opts.SampleInterval))
	e.router = input.NewRouter(e.camera, e.tools, e.DPR)

	e.subscribe()
	if err := e.tools.SetCurrent(opts.Tool); err != nil {
		slog.Warn("initial tool unavailable", "tool", string(opts.Tool), "error", err)
	}
	return e
}

func (e *Engine) subscribe() {
	e.unsubs = append(e.unsubs,
		e.camera.Subscribe(func(camera.Camera, camera.Camera) { e.RequestFrame() }),
		e.space.Subscribe(func(cur, _ *space.Space) {
			n := 0
			if cur != nil {
				n = cur.Len()
			}
			e.metrics.EntitiesChanged(n)
			e.RequestFrame()
		}),
		e.canvas.Subscribe(func(cur, prev canvas.State) {
			if cur.Config != prev.Config || !slices.Equal(cur.ActiveLayers, prev.ActiveLayers) {
				e.RequestFrame()
			}
		}),
		e.tools.Subscribe(func(cur, _ tool.ID) {
			e.metrics.ToolSwitched(string(cur))
			e.RequestFrame()
		}),
	)
	for _, t := range e.tools.Tools() {
		e.unsubs = append(e.unsubs, t.OnChange(e.RequestFrame))
	}
}

// --- Collaborators ---

func (e *Engine) Camera() *camera.Store { return e.camera }
func (e *Engine) Space() *space.Store   { return e.space }
func (e *Engine) Canvas() *canvas.Store { return e.canvas }
func (e *Engine) Tools() *tool.Registry { return e.tools }
func (e *Engine) Router() *input.Router { return e.router }
func (e *Engine) DPR() float64          { return e.dpr }

// --- Commands ---

// Attach sets the drawing surface frames are painted on.
func (e *Engine) Attach(surface render.Context) {
	e.surface = surface
	e.RequestFrame()
}

// Resize records a new logical surface size and device pixel ratio. The
// first call puts the world origin at the surface's top-left corner at zoom
// 1; later calls keep the zoom and the viewport center.
func (e *Engine) Resize(width, height, dpr float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if dpr <= 0 {
		dpr = 1
	}
	e.dpr = dpr
	w := math.Max(1, width*dpr)
	h := math.Max(1, height*dpr)
	viewport := geom.FromXYWH(-w/2, -h/2, w, h)

	if !e.sized {
		e.sized = true
		e.camera.SetCamera(camera.Camera{Zoom: 1, Viewport: viewport})
	} else if cur := e.camera.Camera().Viewport; cur.Size() != viewport.Size() {
		viewport = viewport.WithCenter(cur.Center())
		e.camera.UpdateCamera(camera.Partial{Viewport: &viewport})
	}
	e.canvas.SetConfig(canvas.PartialConfig{Width: &width, Height: &height})
}

// SetTool switches the current tool.
func (e *Engine) SetTool(id tool.ID) error {
	return e.tools.SetCurrent(id)
}

// Seed starts a fresh space containing a square frame of four lines.
func (e *Engine) Seed() {
	e.space.CreateSpace(typeid.NewSpaceID())
	corners := []geom.Vec{geom.V(15, 15), geom.V(15, 800), geom.V(800, 15), geom.V(800, 800)}
	for _, seg := range [][2]int{{0, 1}, {0, 2}, {2, 3}, {3, 1}} {
		e.space.AddEntity(entity.NewLine(typeid.EntityID{}, corners[seg[0]], corners[seg[1]], 10, entity.DefaultColour))
	}
}

func (e *Engine) PointerDown(ev gesture.PointerEvent) { e.router.PointerDown(ev) }
func (e *Engine) PointerMove(ev gesture.PointerEvent) { e.router.PointerMove(ev) }
func (e *Engine) PointerUp(ev gesture.PointerEvent)   { e.router.PointerUp(ev) }
func (e *Engine) Wheel(ev gesture.WheelEvent)         { e.router.Wheel(ev) }

// --- Frame loop ---

// RequestFrame schedules one render on the next frame. Requests made before
// that frame runs share it.
func (e *Engine) RequestFrame() {
	if e.closed || e.cancelFrame != nil || e.canvas.State().Rendering {
		return
	}
	e.cancelFrame = e.sched.ScheduleFrame(func(now time.Time) {
		e.cancelFrame = nil
		e.RenderFrame(now)
	})
}

// TriggerRender renders on the next frame unless the continuous loop is
// already running.
func (e *Engine) TriggerRender() {
	e.RequestFrame()
}

// StartRendering renders every frame until StopRendering.
func (e *Engine) StartRendering() {
	if e.closed || e.canvas.State().Rendering {
		return
	}
	e.cancelPending()
	e.canvas.SetRendering(true, time.Now())
	var loop func(now time.Time)
	loop = func(now time.Time) {
		e.cancelFrame = nil
		if !e.canvas.State().Rendering {
			return
		}
		e.RenderFrame(now)
		e.cancelFrame = e.sched.ScheduleFrame(loop)
	}
	e.cancelFrame = e.sched.ScheduleFrame(loop)
}

// StopRendering ends the continuous loop.
func (e *Engine) StopRendering() {
	if !e.canvas.State().Rendering {
		return
	}
	e.cancelPending()
	e.canvas.SetRendering(false, time.Now())
}

// RenderFrame paints the current state onto the attached surface.
func (e *Engine) RenderFrame(now time.Time) {
	if e.surface == nil {
		return
	}
	cur := e.space.Current()
	var entities []entity.Entity
	if cur != nil {
		entities = cur.Entities()
	}
	st := e.canvas.State()
	f := render.Frame{
		Size:       render.Size{Width: st.Config.Width, Height: st.Config.Height},
		DPR:        e.dpr,
		Background: st.Config.Background,
		Camera:     e.camera.Camera(),
		Entities:   entities,
		Layers:     st.ActiveLayers,
	}
	if t := e.tools.Current(); t != nil {
		f.Overlay = t
	}
	if !e.pipeline.Render(e.surface, f) {
		return
	}
	e.countFrame(now)
	if len(e.onFrame) > 0 {
		snap := e.Snapshot()
		for _, fn := range e.onFrame {
			fn(snap)
		}
	}
}

// OnFrame registers fn to receive a snapshot after every drawn frame.
func (e *Engine) OnFrame(fn func(Snapshot)) {
	e.onFrame = append(e.onFrame, fn)
}

// Close cancels any pending frame and drops every subscription.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.StopRendering()
	e.cancelPending()
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil
	e.closed = true
}

func (e *Engine) cancelPending() {
	if e.cancelFrame != nil {
		e.cancelFrame()
		e.cancelFrame = nil
	}
}

func (e *Engine) countFrame(now time.Time) {
	e.frames++
	e.lastFrameAt = now
	if e.windowStart.IsZero() {
		e.windowStart = now
	}
	e.windowCount++
	if elapsed := now.Sub(e.windowStart); elapsed >= time.Second {
		e.fps = float64(e.windowCount) / elapsed.Seconds()
		e.windowStart = now
		e.windowCount = 0
	}
	e.canvas.MarkRendered(now)
}

// --- Queries ---

// Frames returns the number of frames drawn so far.
func (e *Engine) Frames() uint64 { return e.frames }

// FPS returns the frame rate measured over the last full second.
func (e *Engine) FPS() float64 { return e.fps }

// HitTest returns the id of the entity under a client position, or the zero
// id.
func (e *Engine) HitTest(client geom.Vec) typeid.EntityID {
	hit := e.space.EntityAtPosition(e.camera.ScreenToSpace(client.Mul(e.dpr)))
	if hit == nil {
		return typeid.EntityID{}
	}
	return hit.ID()
}
