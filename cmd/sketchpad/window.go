//go:build !nowindow

package main

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
	"github.com/inamate/sketchpad/internal/raster"
	"github.com/inamate/sketchpad/internal/render"
	"github.com/inamate/sketchpad/internal/tool"
)

// wheelPixels converts one wheel notch to a browser-style pixel delta.
const wheelPixels = 100

var buttons = []struct {
	mouse  ebiten.MouseButton
	button gesture.Button
}{
	{ebiten.MouseButtonLeft, gesture.ButtonPrimary},
	{ebiten.MouseButtonMiddle, gesture.ButtonAuxiliary},
	{ebiten.MouseButtonRight, gesture.ButtonSecondary},
}

var toolKeys = map[ebiten.Key]tool.ID{
	ebiten.KeyV: tool.Selection,
	ebiten.KeyL: tool.Line,
	ebiten.KeyP: tool.Pen,
}

// runWindow opens a desktop window and blocks until it closes or ctx is
// done.
func runWindow(ctx context.Context, cfg *config.Config, eng *engine.Engine, queue *render.FrameQueue) error {
	w := &window{ctx: ctx, cfg: cfg, eng: eng, queue: queue}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(w)
}

type window struct {
	ctx   context.Context
	cfg   *config.Config
	eng   *engine.Engine
	queue *render.FrameQueue

	surface *raster.Surface
	img     *ebiten.Image
	dpr     float64
	width   int
	height  int
	cursor  geom.Vec
}

func (w *window) deviceScale() float64 {
	if w.cfg.DevicePixelRatio > 0 {
		return w.cfg.DevicePixelRatio
	}
	return ebiten.Monitor().DeviceScaleFactor()
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := w.deviceScale()
	if outsideWidth != w.width || outsideHeight != w.height || dpr != w.dpr {
		w.width, w.height, w.dpr = outsideWidth, outsideHeight, dpr
		w.resize()
	}
	return w.surface.Width(), w.surface.Height()
}

func (w *window) resize() {
	dw := int(math.Max(1, float64(w.width)*w.dpr))
	dh := int(math.Max(1, float64(w.height)*w.dpr))
	if w.surface == nil {
		w.surface = raster.NewSurface(dw, dh)
		w.eng.Attach(w.surface)
	} else {
		w.surface.Resize(dw, dh)
	}
	if w.img != nil {
		w.img.Deallocate()
	}
	w.img = ebiten.NewImage(dw, dh)
	w.eng.Resize(float64(w.width), float64(w.height), w.dpr)
	w.eng.TriggerRender()
	slog.Debug("window resized", "width", w.width, "height", w.height, "dpr", w.dpr)
}

func (w *window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	w.pollKeys()
	w.pollPointer()
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	w.queue.RunFrame(time.Now())
	if w.img == nil {
		return
	}
	w.img.WritePixels(w.surface.Image().Pix)
	screen.DrawImage(w.img, nil)
}

func (w *window) modifiers() gesture.Modifiers {
	var m gesture.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= gesture.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= gesture.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= gesture.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= gesture.ModMeta
	}
	return m
}

func (w *window) pollKeys() {
	for key, id := range toolKeys {
		if inpututil.IsKeyJustPressed(key) {
			if err := w.eng.SetTool(id); err != nil {
				slog.Warn("switch tool", "tool", string(id), "error", err)
			}
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		w.eng.Canvas().ToggleLayer(render.LayerBounds)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if t := w.eng.Tools().Current(); t != nil {
			t.Reset()
		}
	}
}

func (w *window) pollPointer() {
	if w.dpr == 0 {
		return
	}
	// Cursor positions are in layout pixels, which are device pixels here.
	x, y := ebiten.CursorPosition()
	client := geom.V(float64(x), float64(y)).Mul(1 / w.dpr)
	mods := w.modifiers()

	if !client.Equal(w.cursor) {
		w.cursor = client
		w.eng.PointerMove(gesture.PointerEvent{Client: client, Screen: client, Mods: mods})
	}
	for _, b := range buttons {
		ev := gesture.PointerEvent{Client: client, Screen: client, Button: b.button, Mods: mods}
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			w.eng.PointerDown(ev)
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			w.eng.PointerUp(ev)
		}
	}

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		w.eng.Wheel(gesture.WheelEvent{
			Client: client,
			Delta:  geom.V(-dx*wheelPixels, -dy*wheelPixels),
			Mods:   mods,
		})
	}
}
