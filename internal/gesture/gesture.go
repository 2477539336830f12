// Package gesture defines the normalized input events hosts deliver to the
// editor. Coordinates are in CSS (logical) pixels relative to the drawing
// surface; consumers scale by the device pixel ratio themselves.
package gesture

import "github.com/inamate/sketchpad/internal/geom"

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonAuxiliary:
		return "auxiliary"
	case ButtonSecondary:
		return "secondary"
	}
	return "unknown"
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// PointerEvent is a pointer press, move or release.
type PointerEvent struct {
	// Client is the position relative to the drawing surface.
	Client geom.Vec
	// Screen is the position relative to the physical display.
	Screen geom.Vec
	Button Button
	Mods   Modifiers
}

// WheelEvent is a scroll or trackpad gesture.
type WheelEvent struct {
	Client geom.Vec
	// Delta is the scroll amount in pixels. Trackpad swipes carry an X
	// component, mouse wheels normally only Y.
	Delta geom.Vec
	Mods  Modifiers
}

// IsPinch reports whether the event is a trackpad pinch. Browsers and
// ebiten hosts both report pinch as a wheel event with Ctrl held.
func (w WheelEvent) IsPinch() bool { return w.Mods.Has(ModCtrl) }

// IsSwipe reports whether the event is a two-finger trackpad pan.
func (w WheelEvent) IsSwipe() bool { return !w.IsPinch() && w.Delta.X != 0 }
