package d3

import "gonum.org/v1/gonum/spatial/r3"

// TriangleBox returns the bounding box of a triangle.
func TriangleBox(t r3.Triangle) Box {
	return Box{
		Min: MinElem(t[0], MinElem(t[1], t[2])),
		Max: MaxElem(t[0], MaxElem(t[1], t[2])),
	}
}

// TriangleFinite returns false if any vertex of t has a NaN or infinite component.
func TriangleFinite(t r3.Triangle) bool {
	return IsFinite(t[0]) && IsFinite(t[1]) && IsFinite(t[2])
}
