package entity

import (
	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// Line is a straight segment drawn with a fixed width.
type Line struct {
	base
	start, end geom.Vec
}

// NewLine builds a line. A zero id gets a freshly generated one and an empty
// colour falls back to DefaultColour.
func NewLine(id typeid.EntityID, start, end geom.Vec, width float64, colour string) Line {
	l := Line{base: newBase(id, width, colour), start: start, end: end}
	l.bounds = geom.FromPoints(start, end).Inflate(width/2, width/2)
	return l
}

func (l Line) Kind() Kind                { return KindLine }
func (l Line) Start() geom.Vec           { return l.start }
func (l Line) End() geom.Vec             { return l.end }
func (l Line) Segment() geom.LineSegment { return geom.Seg(l.start, l.end) }

// WithPosition moves the start point to p and keeps the line's direction and
// length.
func (l Line) WithPosition(p geom.Vec) Entity {
	return NewLine(l.id, p, p.Add(l.end.Sub(l.start)), l.width, l.colour)
}

func (l Line) WithPositionOffset(d geom.Vec) Entity {
	return NewLine(l.id, l.start.Add(d), l.end.Add(d), l.width, l.colour)
}
