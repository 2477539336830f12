package tool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchpad/internal/store"
)

// ErrUnknownTool is returned when switching to an unregistered tool.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds the registered tools and the current one.
type Registry struct {
	tools   map[ID]Tool
	order   []ID
	current *store.Store[ID]
}

func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[ID]Tool),
		current: store.New(None),
	}
}

// Register adds t, replacing any tool with the same id.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.ID()]; !ok {
		r.order = append(r.order, t.ID())
	}
	r.tools[t.ID()] = t
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tools[id])
	}
	return out
}

// Get returns a registered tool.
func (r *Registry) Get(id ID) (Tool, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// Current returns the current tool, or nil when none is selected.
func (r *Registry) Current() Tool {
	return r.tools[r.current.Get()]
}

// CurrentID returns the id of the current tool.
func (r *Registry) CurrentID() ID {
	return r.current.Get()
}

// SetCurrent makes id the current tool. The previous tool is deactivated
// before the switch and the new one activated after it. None clears the
// current tool.
func (r *Registry) SetCurrent(id ID) error {
	next, ok := r.tools[id]
	if id != None && !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}

	prevID := r.current.Get()
	if prev := r.tools[prevID]; prev != nil {
		if d, ok := prev.(Deactivator); ok {
			d.OnDeactivate()
		}
	}

	r.current.Set(id)
	slog.Debug("tool switched", "from", string(prevID), "to", string(id))

	if next != nil {
		if a, ok := next.(Activator); ok {
			a.OnActivate()
		}
	}
	return nil
}

// Subscribe registers a listener for current tool changes.
func (r *Registry) Subscribe(l store.Listener[ID]) func() {
	return r.current.Subscribe(l)
}
