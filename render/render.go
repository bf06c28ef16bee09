// Package render turns sparse voxel octrees into triangle meshes and images
// and reads triangle soups to build octrees from.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles fills dst and returns the number
// of triangles written. It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []r3.Triangle) (int, error)
}

// RenderAll reads triangles from r until io.EOF and returns them all.
// Like io.ReadAll, io.EOF is not reported as an error.
func RenderAll(r Renderer) ([]r3.Triangle, error) {
	var (
		err    error
		nt     int
		result = make([]r3.Triangle, 0, 1<<12)
		buf    = make([]r3.Triangle, 1024)
	)
	for err == nil {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}
