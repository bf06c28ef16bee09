package render

import (
	"io"

	"github.com/soypat/svo"
	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// trianglesPerVoxel is the number of triangles a box is rendered with, two per face.
const trianglesPerVoxel = 12

// boxFaces indexes d3.Box.Vertices. Triangles wind counter clockwise
// seen from outside the box so normals point outward.
var boxFaces = [trianglesPerVoxel][3]int{
	{0, 1, 3}, {0, 3, 2}, // -X
	{4, 6, 7}, {4, 7, 5}, // +X
	{0, 4, 5}, {0, 5, 1}, // -Y
	{2, 3, 7}, {2, 7, 6}, // +Y
	{0, 2, 6}, {0, 6, 4}, // -Z
	{1, 5, 7}, {1, 7, 3}, // +Z
}

// BoxTriangles returns the 12 triangles bounding box with outward normals.
func BoxTriangles(box r3.Box) [trianglesPerVoxel]r3.Triangle {
	v := d3.Box(box).Vertices()
	var tris [trianglesPerVoxel]r3.Triangle
	for i, f := range boxFaces {
		tris[i] = r3.Triangle{v[f[0]], v[f[1]], v[f[2]]}
	}
	return tris
}

// voxels renders the leaves of an octree as boxes.
type voxels struct {
	// todo is a stack of nodes pending a visit. Children are pushed in
	// reverse so leaves pop in octant order.
	todo []svo.Node
	// unwritten holds triangles of the last leaf that did not fit dst.
	unwritten []r3.Triangle
}

// NewVoxelRenderer returns a Renderer that emits 12 triangles for every leaf
// of the octree under root, in the order svo.CollectLeaves returns them.
func NewVoxelRenderer(root svo.Node) Renderer {
	if root == nil {
		panic("nil octree root")
	}
	return &voxels{
		todo: []svo.Node{root},
	}
}

// LeafTriangles renders all leaves of the octree under root.
func LeafTriangles(root svo.Node) []r3.Triangle {
	model, err := RenderAll(NewVoxelRenderer(root))
	if err != nil {
		panic("unreachable: voxel renderer does not fail: " + err.Error())
	}
	return model
}

func (vx *voxels) ReadTriangles(dst []r3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if len(vx.unwritten) > 0 {
		n = copy(dst, vx.unwritten)
		vx.unwritten = vx.unwritten[n:]
		if n == len(dst) {
			return n, nil
		}
	}
	for n < len(dst) && len(vx.todo) > 0 {
		last := len(vx.todo) - 1
		node := vx.todo[last]
		vx.todo = vx.todo[:last]
		if !node.IsLeaf() {
			children := node.Children()
			for i := len(children) - 1; i >= 0; i-- {
				vx.todo = append(vx.todo, children[i])
			}
			continue
		}
		tris := BoxTriangles(node.Bounds())
		written := copy(dst[n:], tris[:])
		n += written
		if written < len(tris) {
			vx.unwritten = append(vx.unwritten[:0], tris[written:]...)
		}
	}
	if len(vx.todo) == 0 && len(vx.unwritten) == 0 {
		return n, io.EOF
	}
	return n, nil
}
