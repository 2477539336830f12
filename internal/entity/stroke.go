package entity

import (
	"errors"
	"slices"

	"github.com/inamate/sketchpad/internal/geom"
	"github.com/inamate/sketchpad/internal/typeid"
)

// ErrEmptyStroke is returned when a stroke is built without points.
var ErrEmptyStroke = errors.New("stroke needs at least one point")

// Stroke is a freehand polyline.
type Stroke struct {
	base
	points []geom.Vec
}

// NewStroke builds a stroke from an ordered list of points. The points are
// copied.
func NewStroke(id typeid.EntityID, points []geom.Vec, width float64, colour string) (Stroke, error) {
	if len(points) == 0 {
		return Stroke{}, ErrEmptyStroke
	}
	s := Stroke{base: newBase(id, width, colour), points: slices.Clone(points)}
	s.bounds = geom.FromPoints(s.points...).Inflate(width/2, width/2)
	return s, nil
}

func (s Stroke) Kind() Kind { return KindStroke }

// Points returns a copy of the stroke's points.
func (s Stroke) Points() []geom.Vec { return slices.Clone(s.points) }

// Len returns the number of points.
func (s Stroke) Len() int { return len(s.points) }

// Point returns the i-th point.
func (s Stroke) Point(i int) geom.Vec { return s.points[i] }

// WithPosition moves the stroke so its first point sits at p.
func (s Stroke) WithPosition(p geom.Vec) Entity {
	return s.WithPositionOffset(p.Sub(s.points[0]))
}

func (s Stroke) WithPositionOffset(d geom.Vec) Entity {
	moved := make([]geom.Vec, len(s.points))
	for i, p := range s.points {
		moved[i] = p.Add(d)
	}
	out := Stroke{base: s.base, points: moved}
	out.bounds = s.bounds.Translate(d)
	return out
}
