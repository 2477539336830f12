package geom

import "math"

// Rect is an axis-aligned box defined by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// R builds a rect from its top-left corner and size.
func R(topLeft Vec, w, h float64) Rect {
	return Rect{X: topLeft.X, Y: topLeft.Y, Width: w, Height: h}
}

func FromXYWH(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// FromPoints returns the smallest rect containing every point, or the zero
// rect when called without points.
func FromPoints(pts ...Vec) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) TopLeft() Vec     { return Vec{r.X, r.Y} }
func (r Rect) TopRight() Vec    { return Vec{r.Right(), r.Y} }
func (r Rect) BottomLeft() Vec  { return Vec{r.X, r.Bottom()} }
func (r Rect) BottomRight() Vec { return Vec{r.Right(), r.Bottom()} }

// Size returns width and height as a vector.
func (r Rect) Size() Vec { return Vec{r.Width, r.Height} }

// Points returns the corners as a closed loop: top-left, bottom-left,
// bottom-right, top-right.
func (r Rect) Points() [4]Vec {
	return [4]Vec{r.TopLeft(), r.BottomLeft(), r.BottomRight(), r.TopRight()}
}

func (r Rect) TopEdge() LineSegment    { return Seg(r.TopLeft(), r.TopRight()) }
func (r Rect) RightEdge() LineSegment  { return Seg(r.TopRight(), r.BottomRight()) }
func (r Rect) BottomEdge() LineSegment { return Seg(r.BottomRight(), r.BottomLeft()) }
func (r Rect) LeftEdge() LineSegment   { return Seg(r.BottomLeft(), r.TopLeft()) }

// Edges returns top, right, bottom, left, walking clockwise.
func (r Rect) Edges() [4]LineSegment {
	return [4]LineSegment{r.TopEdge(), r.RightEdge(), r.BottomEdge(), r.LeftEdge()}
}

func (r Rect) Area() float64 { return math.Abs(r.Width * r.Height) }

func (r Rect) Center() Vec {
	return Vec{r.X + r.Width/2, r.Y + r.Height/2}
}

func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// WithCenter returns a rect of the same size centered on c.
func (r Rect) WithCenter(c Vec) Rect {
	return Rect{X: c.X - r.Width/2, Y: c.Y - r.Height/2, Width: r.Width, Height: r.Height}
}

func (r Rect) Translate(d Vec) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// Inflate grows the rect by dx on the left and right and by dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether the interiors of r and o overlap. Rects that
// only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X >= r.Right() || o.Right() <= r.X || o.Y >= r.Bottom() || o.Bottom() <= r.Y)
}

// Union returns the smallest rect containing both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return FromPoints(r.TopLeft(), r.BottomRight(), o.TopLeft(), o.BottomRight())
}
