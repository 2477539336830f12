// Package space holds the scene: one set of entities keyed by identifier.
package space

import (
	"log/slog"
	"slices"

	"github.com/inamate/sketchpad/internal/entity"
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/store"
	"github.com/inamate/sketchpad/internal/typeid"
)

// ProbeSize is the side length, in world units, of the box used for point
// hit tests.
const ProbeSize = 50

// Space is an immutable snapshot of a scene. Every change produces a new
// Space, so a reader holding one always sees a consistent set of entities.
type Space struct {
	id       typeid.SpaceID
	entities map[typeid.EntityID]entity.Entity
	order    []typeid.EntityID
}

func newSpace(id typeid.SpaceID) *Space {
	return &Space{id: id, entities: make(map[typeid.EntityID]entity.Entity)}
}

func (s *Space) ID() typeid.SpaceID { return s.id }

// Len returns the number of entities.
func (s *Space) Len() int { return len(s.order) }

// Get returns the entity with the given id.
func (s *Space) Get(id typeid.EntityID) (entity.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Entities returns every entity in insertion order.
func (s *Space) Entities() []entity.Entity {
	out := make([]entity.Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

func (s *Space) clone() *Space {
	next := &Space{
		id:       s.id,
		entities: make(map[typeid.EntityID]entity.Entity, len(s.entities)+1),
		order:    slices.Clone(s.order),
	}
	for k, v := range s.entities {
		next.entities[k] = v
	}
	return next
}

func (s *Space) put(e entity.Entity) {
	if _, ok := s.entities[e.ID()]; !ok {
		s.order = append(s.order, e.ID())
	}
	s.entities[e.ID()] = e
}

// Transaction receives the current entities and returns replacements for
// some of them. It must not create or delete entities.
type Transaction func(current []entity.Entity) []entity.Entity

// Store owns the current space. It is nil until CreateSpace is called.
type Store struct {
	s *store.Store[*Space]
}

func NewStore() *Store {
	return &Store{s: store.New[*Space](nil)}
}

// Current returns the current snapshot, or nil when no space exists.
func (ss *Store) Current() *Space { return ss.s.Get() }

// CreateSpace discards the current space and starts an empty one.
func (ss *Store) CreateSpace(id typeid.SpaceID) {
	slog.Info("space created", "space", id.String())
	ss.s.Set(newSpace(id))
}

// AddEntity inserts e, replacing any entity with the same id in place. It is
// a no-op without a space.
func (ss *Store) AddEntity(e entity.Entity) {
	cur := ss.s.Get()
	if cur == nil || e == nil {
		return
	}
	next := cur.clone()
	next.put(e)
	ss.s.Set(next)
}

// BulkTransformEntity applies every replacement returned by tx as a single
// state change. Replacements for ids that are not in the space are dropped.
func (ss *Store) BulkTransformEntity(tx Transaction) {
	cur := ss.s.Get()
	if cur == nil {
		return
	}
	replacements := tx(cur.Entities())
	if len(replacements) == 0 {
		return
	}
	next := cur.clone()
	for _, e := range replacements {
		if e == nil {
			continue
		}
		if _, ok := next.entities[e.ID()]; !ok {
			slog.Debug("bulk transform skipped unknown entity", "entity", e.ID().String())
			continue
		}
		next.entities[e.ID()] = e
	}
	ss.s.Set(next)
}

// RemoveEntity removes the entity with e's id. Removing something that is
// not there does nothing.
func (ss *Store) RemoveEntity(e entity.Entity) {
	cur := ss.s.Get()
	if cur == nil || e == nil {
		return
	}
	if _, ok := cur.entities[e.ID()]; !ok {
		return
	}
	next := cur.clone()
	delete(next.entities, e.ID())
	next.order = slices.DeleteFunc(next.order, func(id typeid.EntityID) bool { return id == e.ID() })
	ss.s.Set(next)
}

// EntityAtPosition returns the first entity, in insertion order, whose
// bounding box overlaps a ProbeSize square centered on p. It returns nil on
// a miss or without a space.
func (ss *Store) EntityAtPosition(p geom.Vec) entity.Entity {
	cur := ss.s.Get()
	if cur == nil {
		return nil
	}
	probe := geom.FromXYWH(p.X-ProbeSize/2, p.Y-ProbeSize/2, ProbeSize, ProbeSize)
	for _, id := range cur.order {
		e := cur.entities[id]
		if probe.Intersects(e.Bounds()) {
			return e
		}
	}
	return nil
}

// EntitiesInRect returns every entity whose bounding box overlaps r, in
// insertion order.
func (ss *Store) EntitiesInRect(r geom.Rect) []entity.Entity {
	cur := ss.s.Get()
	if cur == nil {
		return nil
	}
	var out []entity.Entity
	for _, id := range cur.order {
		e := cur.entities[id]
		if r.Intersects(e.Bounds()) {
			out = append(out, e)
		}
	}
	return out
}

// Subscribe registers a listener for scene changes.
func (ss *Store) Subscribe(l store.Listener[*Space]) func() {
	return ss.s.Subscribe(l)
}
