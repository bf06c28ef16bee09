package svo

import (
	"math"

	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Intersects reports whether triangle t and box share at least one point.
// Touching counts as intersecting: a triangle lying on a face shared by two
// boxes intersects both of them.
//
// It is a separating axis test over the box face normals, the triangle normal
// and the nine cross products of triangle edges with the box axes. Axes of zero
// length never separate, so degenerate triangles are tested as the segment
// or point they collapse to. Projections on the non-face axes are widened by
// a relative tolerance, so triangles within about 1e-12 of the box relative
// to the coordinate magnitudes count as touching.
func Intersects(t Triangle, box r3.Box) bool {
	// Box face normals. Compared in absolute coordinates so a vertex on a
	// face is never rounded off it. Rejects the bulk of candidates.
	if math.Min(t[0].X, math.Min(t[1].X, t[2].X)) > box.Max.X || math.Max(t[0].X, math.Max(t[1].X, t[2].X)) < box.Min.X {
		return false
	}
	if math.Min(t[0].Y, math.Min(t[1].Y, t[2].Y)) > box.Max.Y || math.Max(t[0].Y, math.Max(t[1].Y, t[2].Y)) < box.Min.Y {
		return false
	}
	if math.Min(t[0].Z, math.Min(t[1].Z, t[2].Z)) > box.Max.Z || math.Max(t[0].Z, math.Max(t[1].Z, t[2].Z)) < box.Min.Z {
		return false
	}

	// Work relative to box center so box projections are symmetric.
	c := d3.Box(box).Center()
	h := r3.Scale(0.5, d3.Box(box).Size())
	v0 := r3.Sub(t[0], c)
	v1 := r3.Sub(t[1], c)
	v2 := r3.Sub(t[2], c)
	// Largest coordinate magnitudes per component. Recentering rounds, so
	// projections carry an error bounded relative to these.
	m := d3.MaxElem(
		d3.MaxElem(d3.AbsElem(box.Min), d3.AbsElem(box.Max)),
		d3.MaxElem(d3.AbsElem(t[0]), d3.MaxElem(d3.AbsElem(t[1]), d3.AbsElem(t[2]))),
	)

	e0 := r3.Sub(v1, v0)
	e1 := r3.Sub(v2, v1)
	e2 := r3.Sub(v0, v2)
	for _, e := range [3]r3.Vec{e0, e1, e2} {
		// Cross products of e with the X, Y and Z unit vectors.
		axes := [3]r3.Vec{
			{X: 0, Y: -e.Z, Z: e.Y},
			{X: e.Z, Y: 0, Z: -e.X},
			{X: -e.Y, Y: e.X, Z: 0},
		}
		for _, axis := range axes {
			if separates(axis, v0, v1, v2, h, m) {
				return false
			}
		}
	}

	// Triangle plane.
	return !separates(r3.Cross(e0, e1), v0, v1, v2, h, m)
}

// contactTol is the relative slack granted to projections so that
// rounding never turns contact into separation.
const contactTol = 1e-12

// separates reports whether axis strictly separates the triangle (v0,v1,v2)
// from the origin centered box with half size h. m holds the coordinate
// magnitudes the centered values were derived from.
func separates(axis, v0, v1, v2, h, m r3.Vec) bool {
	p0 := r3.Dot(axis, v0)
	p1 := r3.Dot(axis, v1)
	p2 := r3.Dot(axis, v2)
	a := d3.AbsElem(axis)
	r := r3.Dot(h, a) + contactTol*r3.Dot(m, a)
	return math.Min(p0, math.Min(p1, p2)) > r || math.Max(p0, math.Max(p1, p2)) < -r
}
