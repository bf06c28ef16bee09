package svo

import (
	"fmt"

	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// TrianglesFromVertices groups a flattened vertex buffer into triangles.
// Every 9 consecutive floats are the X,Y,Z coordinates of a triangle's
// three vertices.
func TrianglesFromVertices(positions []float64) ([]Triangle, error) {
	if len(positions)%9 != 0 {
		return nil, fmt.Errorf("%w: vertex buffer length %d not a multiple of 9", ErrInvalidArgument, len(positions))
	}
	triangles := make([]Triangle, len(positions)/9)
	for i := range triangles {
		p := positions[i*9 : i*9+9]
		triangles[i] = Triangle{
			{X: p[0], Y: p[1], Z: p[2]},
			{X: p[3], Y: p[4], Z: p[5]},
			{X: p[6], Y: p[7], Z: p[8]},
		}
	}
	return triangles, nil
}

// Bounds returns the smallest box containing all triangles.
func Bounds(triangles []Triangle) (r3.Box, error) {
	if len(triangles) == 0 {
		return r3.Box{}, fmt.Errorf("%w: no triangles to bound", ErrInvalidArgument)
	}
	bb := d3.EmptyBox()
	for i := range triangles {
		if !d3.TriangleFinite(triangles[i]) {
			return r3.Box{}, fmt.Errorf("%w: triangle %d has non-finite vertex", ErrInvalidArgument, i)
		}
		bb = bb.Extend(d3.TriangleBox(triangles[i]))
	}
	return r3.Box(bb), nil
}
