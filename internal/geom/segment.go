package geom

import "math"

// parallelEpsilon is the determinant below which two segments are treated as
// parallel.
const parallelEpsilon = 1e-12

// LineSegment is the straight segment from A to B. Endpoints are held by
// value so a segment never aliases the vectors it was built from.
type LineSegment struct {
	A, B Vec
}

func Seg(a, b Vec) LineSegment { return LineSegment{A: a, B: b} }

// Intersection describes where two segments cross. T1 and T2 are the
// parameters along the first and second segment.
type Intersection struct {
	Point  Vec
	T1, T2 float64
}

func (s LineSegment) Len() float64   { return s.A.Dist(s.B) }
func (s LineSegment) LenSq() float64 { return s.A.DistSq(s.B) }

// Direction returns B-A, not normalized.
func (s LineSegment) Direction() Vec { return s.B.Sub(s.A) }

func (s LineSegment) DirectionUnit() Vec { return s.Direction().Normalize() }

// PointAt returns the point at parameter t, clamped to [0, 1].
func (s LineSegment) PointAt(t float64) Vec {
	return s.A.Lerp(s.B, t)
}

func (s LineSegment) Midpoint() Vec { return s.PointAt(0.5) }

// ProjectParameter projects p onto the infinite line through the segment and
// returns the unclamped parameter. Degenerate segments project to 0.
func (s LineSegment) ProjectParameter(p Vec) float64 {
	d := s.Direction()
	denom := d.LenSq()
	if denom == 0 {
		return 0
	}
	return d.Dot(p.Sub(s.A)) / denom
}

// ClosestPoint returns the point on the segment nearest to p.
func (s LineSegment) ClosestPoint(p Vec) Vec {
	return s.PointAt(s.ProjectParameter(p))
}

func (s LineSegment) DistanceToPoint(p Vec) float64 {
	return s.ClosestPoint(p).Dist(p)
}

// Intersect reports where s and o cross. Parallel and collinear segments
// never intersect.
func (s LineSegment) Intersect(o LineSegment) (Intersection, bool) {
	x1, y1 := s.A.X, s.A.Y
	x2, y2 := s.B.X, s.B.Y
	x3, y3 := o.A.X, o.A.Y
	x4, y4 := o.B.X, o.B.Y

	denom := (y4-y3)*(x2-x1) - (x4-x3)*(y2-y1)
	if math.Abs(denom) < parallelEpsilon {
		return Intersection{}, false
	}

	t := ((x4-x3)*(y1-y3) - (y4-y3)*(x1-x3)) / denom
	u := ((x2-x1)*(y1-y3) - (y2-y1)*(x1-x3)) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Intersection{}, false
	}

	return Intersection{
		Point: Vec{x1 + t*(x2-x1), y1 + t*(y2-y1)},
		T1:    t,
		T2:    u,
	}, true
}
