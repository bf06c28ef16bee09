package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d axis aligned bounding box. Unlike r3.Box a Box with
// zero volume is not considered empty.
type Box r3.Box

// EmptyBox returns an inverted box that any call to Extend
// will collapse onto its argument.
func EmptyBox() Box {
	return Box{Min: Elem(math.MaxFloat64), Max: Elem(-math.MaxFloat64)}
}

// Extend returns a box enclosing two 3d boxes.
func (a Box) Extend(b Box) Box {
	return Box{
		Min: MinElem(a.Min, b.Min),
		Max: MaxElem(a.Max, b.Max),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Center returns the center of a 3d box.
func (a Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(a.Min, a.Max))
}

// Volume returns the volume of the box. Degenerate boxes have zero volume.
func (a Box) Volume() float64 {
	sz := a.Size()
	return sz.X * sz.Y * sz.Z
}

// IsFinite returns false if any of the box's coordinates is NaN or infinite.
func (a Box) IsFinite() bool {
	return IsFinite(a.Min) && IsFinite(a.Max)
}

// Inverted returns true if any Min component is greater than its Max component.
func (a Box) Inverted() bool {
	return a.Min.X > a.Max.X || a.Min.Y > a.Max.Y || a.Min.Z > a.Max.Z
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

// ContainsBox checks if b lies within a, bounds inclusive.
func (a Box) ContainsBox(b Box) bool {
	return a.Contains(b.Min) && a.Contains(b.Max)
}

// Vertices returns the 8 corners of the box. Corner i has its
// X coordinate at Max if bit 2 of i is set, Y at Max for bit 1 and Z at Max
// for bit 0, matching octant ordering.
func (a Box) Vertices() [8]r3.Vec {
	var v [8]r3.Vec
	for i := range v {
		v[i] = r3.Vec{X: a.Min.X, Y: a.Min.Y, Z: a.Min.Z}
		if i&4 != 0 {
			v[i].X = a.Max.X
		}
		if i&2 != 0 {
			v[i].Y = a.Max.Y
		}
		if i&1 != 0 {
			v[i].Z = a.Max.Z
		}
	}
	return v
}
