package geom

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Vec.Equal.
const Epsilon = 1e-6

// ErrDivisionByZero is returned when a vector is divided by a zero scalar.
var ErrDivisionByZero = errors.New("division by zero")

// Vec is a 2D vector. All methods return new values; a Vec is never mutated
// through its methods.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

var (
	Zero  = Vec{}
	UnitX = Vec{X: 1}
	UnitY = Vec{Y: 1}
)

// FromPolar builds a vector from an angle in radians and a length.
func FromPolar(angle, length float64) Vec {
	return Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Mul scales both components by s.
func (v Vec) Mul(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// ScaleXY scales each component independently.
func (v Vec) ScaleXY(sx, sy float64) Vec { return Vec{v.X * sx, v.Y * sy} }

// Div divides both components by s. Dividing by zero is the only failing
// operation in this package.
func (v Vec) Div(s float64) (Vec, error) {
	if s == 0 {
		return v, ErrDivisionByZero
	}
	return Vec{v.X / s, v.Y / s}, nil
}

func (v Vec) Neg() Vec { return Vec{-v.X, -v.Y} }

func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec) Len() float64   { return math.Hypot(v.X, v.Y) }
func (v Vec) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Angle returns the direction of v in radians.
func (v Vec) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec) Dist(o Vec) float64   { return v.Sub(o).Len() }
func (v Vec) DistSq(o Vec) float64 { return v.Sub(o).LenSq() }

// Normalize returns the unit vector in the direction of v, or the zero
// vector when v has no length.
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vec{v.X / l, v.Y / l}
}

// WithLen returns a vector with the direction of v and length l. A zero
// vector points along +X.
func (v Vec) WithLen(l float64) Vec {
	if v.LenSq() == 0 {
		return Vec{X: l}
	}
	return v.Normalize().Mul(l)
}

// Limit caps the length of v at max.
func (v Vec) Limit(max float64) Vec {
	if v.LenSq() > max*max {
		return v.WithLen(max)
	}
	return v
}

// ClampLen keeps the length of v inside [min, max]. The zero vector has no
// direction and is returned unchanged.
func (v Vec) ClampLen(min, max float64) Vec {
	l := v.Len()
	switch {
	case l == 0:
		return v
	case l < min:
		return v.Mul(min / l)
	case l > max:
		return v.Mul(max / l)
	}
	return v
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec) Rotate(angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Perp returns v rotated 90 degrees clockwise.
func (v Vec) Perp() Vec { return Vec{v.Y, -v.X} }

// PerpCCW returns v rotated 90 degrees counter-clockwise.
func (v Vec) PerpCCW() Vec { return Vec{-v.Y, v.X} }

// Reflect mirrors v about the line with the given normal. A zero normal
// leaves v unchanged.
func (v Vec) Reflect(normal Vec) Vec {
	n := normal.Normalize()
	if n == Zero {
		return v
	}
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Lerp interpolates from v to o. t is clamped to [0, 1].
func (v Vec) Lerp(o Vec, t float64) Vec {
	t = clamp01(t)
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Equal reports whether both components differ by less than Epsilon.
func (v Vec) Equal(o Vec) bool {
	return math.Abs(v.X-o.X) < Epsilon && math.Abs(v.Y-o.Y) < Epsilon
}

func (v Vec) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
