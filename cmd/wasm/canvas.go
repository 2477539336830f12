//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"
	"time"
)

var errRestoreUnderflow = errors.New("restore without save")

// canvasContext forwards drawing calls to a CanvasRenderingContext2D.
type canvasContext struct {
	ctx   js.Value
	depth int
}

func newCanvasContext(ctx js.Value) *canvasContext {
	return &canvasContext{ctx: ctx}
}

func (c *canvasContext) Save() error {
	c.depth++
	c.ctx.Call("save")
	return nil
}

func (c *canvasContext) Restore() error {
	if c.depth == 0 {
		return errRestoreUnderflow
	}
	c.depth--
	c.ctx.Call("restore")
	return nil
}

func (c *canvasContext) Translate(x, y float64)          { c.ctx.Call("translate", x, y) }
func (c *canvasContext) Scale(sx, sy float64)            { c.ctx.Call("scale", sx, sy) }
func (c *canvasContext) BeginPath()                      { c.ctx.Call("beginPath") }
func (c *canvasContext) MoveTo(x, y float64)             { c.ctx.Call("moveTo", x, y) }
func (c *canvasContext) LineTo(x, y float64)             { c.ctx.Call("lineTo", x, y) }
func (c *canvasContext) ClosePath()                      { c.ctx.Call("closePath") }
func (c *canvasContext) Arc(x, y, r, start, end float64) { c.ctx.Call("arc", x, y, r, start, end) }
func (c *canvasContext) Rect(x, y, w, h float64)         { c.ctx.Call("rect", x, y, w, h) }
func (c *canvasContext) Stroke()                         { c.ctx.Call("stroke") }
func (c *canvasContext) Fill()                           { c.ctx.Call("fill") }
func (c *canvasContext) SetStrokeStyle(colour string)    { c.ctx.Set("strokeStyle", colour) }
func (c *canvasContext) SetFillStyle(colour string)      { c.ctx.Set("fillStyle", colour) }
func (c *canvasContext) SetLineWidth(w float64)          { c.ctx.Set("lineWidth", w) }
func (c *canvasContext) FillRect(x, y, w, h float64)     { c.ctx.Call("fillRect", x, y, w, h) }
func (c *canvasContext) ClearRect(x, y, w, h float64)    { c.ctx.Call("clearRect", x, y, w, h) }

func (c *canvasContext) SetLineDash(segments []float64) {
	arr := make([]any, len(segments))
	for i, s := range segments {
		arr[i] = s
	}
	c.ctx.Call("setLineDash", arr)
}

// animationFrames schedules callbacks with requestAnimationFrame.
type animationFrames struct{}

func (animationFrames) ScheduleFrame(fn func(now time.Time)) func() {
	var cb js.Func
	done := false
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		done = true
		cb.Release()
		fn(time.Now())
		return nil
	})
	id := js.Global().Call("requestAnimationFrame", cb)
	return func() {
		if done {
			return
		}
		done = true
		js.Global().Call("cancelAnimationFrame", id)
		cb.Release()
	}
}
