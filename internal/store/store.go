// Package store provides the small reactive container every piece of editor
// state lives in: camera, scene, canvas settings and per-tool substate.
//
// A Store is not safe for concurrent use. All reads, writes and listener
// calls happen on the single loop that owns the editor.
package store

// Listener is called after every Set with the new and previous state.
type Listener[T any] func(cur, prev T)

// Store holds a value of type T and notifies subscribers when it changes.
type Store[T any] struct {
	state     T
	nextID    int
	listeners map[int]Listener[T]
	order     []int
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		state:     initial,
		listeners: make(map[int]Listener[T]),
	}
}

// Get returns the current state.
func (s *Store[T]) Get() T {
	return s.state
}

// Set replaces the state and notifies listeners in subscription order.
func (s *Store[T]) Set(next T) {
	prev := s.state
	s.state = next
	for _, id := range append([]int(nil), s.order...) {
		if l, ok := s.listeners[id]; ok {
			l(next, prev)
		}
	}
}

// Update derives the next state from the current one.
func (s *Store[T]) Update(fn func(T) T) {
	s.Set(fn(s.state))
}

// Subscribe registers l and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store[T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.order = append(s.order, id)
	return func() {
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}
