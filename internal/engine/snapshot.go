package engine

import (
	"time"

	"github.com/inamate/sketchpad/internal/camera"
	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// Snapshot is a JSON-friendly view of the session, published after each
// frame for the inspector.
type Snapshot struct {
	Frame      uint64       `json:"frame"`
	FPS        float64      `json:"fps"`
	RenderedAt time.Time    `json:"renderedAt"`
	Pointer    geom.Vec     `json:"pointer"`
	Panning    bool         `json:"panning"`
	Camera     CameraInfo   `json:"camera"`
	Tool       ToolInfo     `json:"tool"`
	Layers     []string     `json:"layers"`
	SpaceID    string       `json:"spaceId,omitempty"`
	Entities   []EntityInfo `json:"entities"`
}

type CameraInfo struct {
	Zoom     float64   `json:"zoom"`
	Viewport geom.Rect `json:"viewport"`
	// Visible is the world rectangle currently on screen.
	Visible geom.Rect `json:"visible"`
}

type ToolInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	State any    `json:"state,omitempty"`
}

type EntityInfo struct {
	ID     typeid.EntityID `json:"id"`
	Kind   string          `json:"kind"`
	Bounds geom.Rect       `json:"bounds"`
}

func cameraInfo(c camera.Camera, cfg canvas.Config, dpr float64) CameraInfo {
	return CameraInfo{
		Zoom:     c.Zoom,
		Viewport: c.Viewport,
		Visible:  c.VisibleBounds(cfg.Width*dpr, cfg.Height*dpr),
	}
}

// Snapshot captures the current session state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:      e.frames,
		FPS:        e.fps,
		RenderedAt: e.lastFrameAt,
		Pointer:    e.router.LastPointer(),
		Panning:    e.router.Panning(),
		Camera:     cameraInfo(e.camera.Camera(), e.canvas.State().Config, e.dpr),
		Tool:       ToolInfo{ID: string(e.tools.CurrentID())},
		Layers:     e.canvas.State().ActiveLayers,
		Entities:   []EntityInfo{},
	}
	if t := e.tools.Current(); t != nil {
		snap.Tool.Name = t.Name()
		snap.Tool.State = t.DebugState()
	}
	if cur := e.space.Current(); cur != nil {
		snap.SpaceID = cur.ID().String()
		for _, ent := range cur.Entities() {
			snap.Entities = append(snap.Entities, EntityInfo{
				ID:     ent.ID(),
				Kind:   ent.Kind().String(),
				Bounds: ent.Bounds(),
			})
		}
	}
	return snap
}
