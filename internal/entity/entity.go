// Package entity defines the drawable objects that live in a space.
//
// Entities are immutable values. Moving an entity returns a new value that
// carries the same identifier and a recomputed bounding box.
package entity

import (
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// DefaultColour is used when an entity is created without a colour.
const DefaultColour = "#FFFFFF"

// Kind tags the concrete entity variant.
type Kind int

const (
	KindLine Kind = iota + 1
	KindStroke
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindStroke:
		return "stroke"
	}
	return "unknown"
}

// Entity is implemented only by the types in this package.
type Entity interface {
	ID() typeid.EntityID
	Kind() Kind
	Bounds() geom.Rect
	Width() float64
	Colour() string
	// WithPosition moves the entity so its anchor point sits at p.
	WithPosition(p geom.Vec) Entity
	// WithPositionOffset moves the entity by d.
	WithPositionOffset(d geom.Vec) Entity

	sealed()
}

// base holds the fields shared by every variant.
type base struct {
	id     typeid.EntityID
	bounds geom.Rect
	width  float64
	colour string
}

func newBase(id typeid.EntityID, width float64, colour string) base {
	if id.IsZero() {
		id = typeid.NewEntityID()
	}
	if colour == "" {
		colour = DefaultColour
	}
	return base{id: id, width: width, colour: colour}
}

func (b base) ID() typeid.EntityID { return b.id }
func (b base) Bounds() geom.Rect   { return b.bounds }
func (b base) Width() float64      { return b.width }
func (b base) Colour() string      { return b.colour }
func (base) sealed()               {}
