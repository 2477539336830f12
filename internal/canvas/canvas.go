// Package canvas holds the drawing surface settings: size, background,
// active layers and the render loop flags.
package canvas

import (
	"slices"
	"time"

	"github.com/inamate/sketchpad/internal/store"
)

// Config describes the surface in logical pixels.
type Config struct {
	Width      float64
	Height     float64
	Background string
}

// DefaultConfig is the surface used before the host reports its size.
func DefaultConfig() Config {
	return Config{Width: 600, Height: 600, Background: "#000000"}
}

// PartialConfig carries the fields of a SetConfig call. Nil fields are left
// unchanged.
type PartialConfig struct {
	Width      *float64
	Height     *float64
	Background *string
}

// State is a snapshot of the canvas store.
type State struct {
	Config       Config
	ActiveLayers []string
	Rendering    bool
	LastRender   time.Time
}

// IsActive reports whether a layer is switched on.
func (s State) IsActive(layer string) bool {
	return slices.Contains(s.ActiveLayers, layer)
}

// Store holds the canvas state.
type Store struct {
	s *store.Store[State]
}

// NewStore creates a store with cfg and the given layers switched on.
func NewStore(cfg Config, layers ...string) *Store {
	return &Store{s: store.New(State{Config: cfg, ActiveLayers: slices.Clone(layers)})}
}

func (cs *Store) State() State { return cs.s.Get() }

// SetConfig replaces the fields set in p.
func (cs *Store) SetConfig(p PartialConfig) {
	cs.s.Update(func(st State) State {
		if p.Width != nil {
			st.Config.Width = *p.Width
		}
		if p.Height != nil {
			st.Config.Height = *p.Height
		}
		if p.Background != nil {
			st.Config.Background = *p.Background
		}
		return st
	})
}

// AddLayer switches a layer on. Adding an active layer does nothing.
func (cs *Store) AddLayer(name string) {
	if cs.s.Get().IsActive(name) {
		return
	}
	cs.s.Update(func(st State) State {
		st.ActiveLayers = append(slices.Clone(st.ActiveLayers), name)
		return st
	})
}

// RemoveLayer switches a layer off.
func (cs *Store) RemoveLayer(name string) {
	if !cs.s.Get().IsActive(name) {
		return
	}
	cs.s.Update(func(st State) State {
		st.ActiveLayers = slices.DeleteFunc(slices.Clone(st.ActiveLayers), func(n string) bool { return n == name })
		return st
	})
}

// ToggleLayer flips a layer.
func (cs *Store) ToggleLayer(name string) {
	if cs.s.Get().IsActive(name) {
		cs.RemoveLayer(name)
	} else {
		cs.AddLayer(name)
	}
}

// ClearLayers switches every layer off, which stops frames from drawing.
func (cs *Store) ClearLayers() {
	cs.s.Update(func(st State) State {
		st.ActiveLayers = nil
		return st
	})
}

// SetRendering records whether the continuous render loop is running.
func (cs *Store) SetRendering(on bool, now time.Time) {
	cs.s.Update(func(st State) State {
		st.Rendering = on
		if !on {
			st.LastRender = now
		}
		return st
	})
}

// MarkRendered records the time of the last drawn frame.
func (cs *Store) MarkRendered(now time.Time) {
	cs.s.Update(func(st State) State {
		st.LastRender = now
		return st
	})
}

func (cs *Store) Subscribe(l store.Listener[State]) func() {
	return cs.s.Subscribe(l)
}
