//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/gesture"
)

func modifiers(ev js.Value) gesture.Modifiers {
	var m gesture.Modifiers
	if ev.Get("shiftKey").Bool() {
		m |= gesture.ModShift
	}
	if ev.Get("ctrlKey").Bool() {
		m |= gesture.ModCtrl
	}
	if ev.Get("altKey").Bool() {
		m |= gesture.ModAlt
	}
	if ev.Get("metaKey").Bool() {
		m |= gesture.ModMeta
	}
	return m
}

// clientPos is the event position relative to the canvas, in CSS pixels.
func clientPos(ev js.Value) geom.Vec {
	return geom.V(ev.Get("offsetX").Float(), ev.Get("offsetY").Float())
}

func pointerEvent(ev js.Value) gesture.PointerEvent {
	return gesture.PointerEvent{
		Client: clientPos(ev),
		Screen: geom.V(ev.Get("screenX").Float(), ev.Get("screenY").Float()),
		Button: gesture.Button(ev.Get("button").Int()),
		Mods:   modifiers(ev),
	}
}

func onPointer(handle func(gesture.PointerEvent)) func(js.Value) {
	return func(ev js.Value) {
		handle(pointerEvent(ev))
	}
}

func onWheel(ev js.Value) {
	ev.Call("preventDefault")
	eng.Wheel(gesture.WheelEvent{
		Client: clientPos(ev),
		Delta:  geom.V(ev.Get("deltaX").Float(), ev.Get("deltaY").Float()),
		Mods:   modifiers(ev),
	})
}
