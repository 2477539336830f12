//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/engine"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/tool"
)

var (
	eng       *engine.Engine
	host      js.Value
	handlers  []js.Func
	removeFns []func()
)

func main() {
	eng = engine.New(engine.Options{Scheduler: animationFrames{}})
	eng.Seed()

	// Create the engine API object
	api := js.Global().Get("Object").New()

	// --- Commands (page → engine) ---
	api.Set("attach", js.FuncOf(attach))
	api.Set("setTool", js.FuncOf(setTool))
	api.Set("toggleLayer", js.FuncOf(toggleLayer))
	api.Set("triggerRender", js.FuncOf(triggerRender))
	api.Set("startRendering", js.FuncOf(startRendering))
	api.Set("stopRendering", js.FuncOf(stopRendering))
	api.Set("reset", js.FuncOf(reset))

	// --- Queries (page ← engine) ---
	api.Set("getState", js.FuncOf(getState))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getFPS", js.FuncOf(getFPS))

	js.Global().Set("sketchpad", api)
	js.Global().Set("sketchpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func attach(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf(map[string]any{"error": "missing canvas element or id"})
	}
	el := args[0]
	if el.Type() == js.TypeString {
		el = js.Global().Get("document").Call("getElementById", el.String())
	}
	if el.IsNull() || el.IsUndefined() {
		return js.ValueOf(map[string]any{"error": "canvas not found"})
	}

	detach()
	host = el
	eng.Attach(newCanvasContext(el.Call("getContext", "2d")))
	resize()
	listen(js.Global(), "resize", func(js.Value) { resize() }, false)
	listen(el, "pointerdown", onPointer(eng.PointerDown), false)
	listen(el, "pointermove", onPointer(eng.PointerMove), false)
	listen(el, "pointerup", onPointer(eng.PointerUp), false)
	listen(el, "wheel", onWheel, true)
	listen(el, "contextmenu", func(ev js.Value) { ev.Call("preventDefault") }, true)
	return js.ValueOf(map[string]any{"ok": true})
}

func setTool(this js.Value, args []js.Value) any {
	id := tool.None
	if len(args) > 0 && args[0].Type() == js.TypeString {
		id = tool.ID(args[0].String())
	}
	if err := eng.SetTool(id); err != nil {
		return js.ValueOf(map[string]any{"error": err.Error()})
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func toggleLayer(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return nil
	}
	eng.Canvas().ToggleLayer(args[0].String())
	return nil
}

func triggerRender(this js.Value, args []js.Value) any {
	eng.TriggerRender()
	return nil
}

func startRendering(this js.Value, args []js.Value) any {
	eng.StartRendering()
	return nil
}

func stopRendering(this js.Value, args []js.Value) any {
	eng.StopRendering()
	return nil
}

func reset(this js.Value, args []js.Value) any {
	eng.Seed()
	return nil
}

// --- Query Handlers ---

func getState(this js.Value, args []js.Value) any {
	data, err := json.Marshal(eng.Snapshot())
	if err != nil {
		slog.Error("marshal snapshot", "error", err)
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	id := eng.HitTest(geom.V(args[0].Float(), args[1].Float()))
	return js.ValueOf(id.String())
}

func getFPS(this js.Value, args []js.Value) any {
	return js.ValueOf(eng.FPS())
}

// --- DOM wiring ---

func resize() {
	if host.IsUndefined() || host.IsNull() {
		return
	}
	dpr := js.Global().Get("devicePixelRatio").Float()
	w := host.Get("clientWidth").Float()
	h := host.Get("clientHeight").Float()
	host.Set("width", max(1, int(w*dpr)))
	host.Set("height", max(1, int(h*dpr)))
	eng.Resize(w, h, dpr)
}

func listen(target js.Value, event string, fn func(js.Value), active bool) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	opts := map[string]any{"passive": !active}
	target.Call("addEventListener", event, f, opts)
	handlers = append(handlers, f)
	removeFns = append(removeFns, func() { target.Call("removeEventListener", event, f) })
}

func detach() {
	for _, remove := range removeFns {
		remove()
	}
	for _, f := range handlers {
		f.Release()
	}
	removeFns, handlers = nil, nil
}
