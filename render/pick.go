package render

import (
	"math"

	"github.com/soypat/svo"
	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = kdLeaves{}
	_ kdtree.Comparable = kdLeaf{}
)

// LeafIndex answers nearest leaf queries over an octree's leaves.
type LeafIndex struct {
	tree *kdtree.Tree
	n    int
}

// NewLeafIndex indexes the centers of all leaves under root.
func NewLeafIndex(root svo.Node) *LeafIndex {
	leaves := svo.CollectLeaves(root)
	kd := make(kdLeaves, len(leaves))
	for i, leaf := range leaves {
		box := leaf.Bounds()
		kd[i] = kdLeaf{center: d3.Box(box).Center(), box: box}
	}
	return &LeafIndex{
		tree: kdtree.New(kd, false),
		n:    len(kd),
	}
}

// Len returns the number of indexed leaves.
func (idx *LeafIndex) Len() int { return idx.n }

// Nearest returns the box of the leaf whose center is closest to p and the
// Euclidean distance between p and that center.
func (idx *LeafIndex) Nearest(p r3.Vec) (r3.Box, float64) {
	got, dist2 := idx.tree.Nearest(kdLeaf{center: p})
	if got == nil {
		return r3.Box{}, math.Inf(1)
	}
	return got.(kdLeaf).box, math.Sqrt(dist2)
}

type kdLeaves []kdLeaf

type kdLeaf struct {
	center r3.Vec
	box    r3.Box
}

func (k kdLeaves) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdLeaves) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdLeaves) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), leaves: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdLeaves) Slice(start, end int) kdtree.Interface {
	return k[start:end]
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdLeaf) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdLeaf), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdLeaf) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdLeaf) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.center, b.(kdLeaf).center))
}

// c = a.dim - b.dim
func kdComp(a, b kdLeaf, dim int) (c float64) {
	switch dim {
	case 0:
		c = a.center.X - b.center.X
	case 1:
		c = a.center.Y - b.center.Y
	case 2:
		c = a.center.Z - b.center.Z
	}
	return c
}

type kdPlane struct {
	dim    int
	leaves kdLeaves
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.leaves[i], p.leaves[j], p.dim) < 0
}
func (p kdPlane) Swap(i, j int) {
	p.leaves[i], p.leaves[j] = p.leaves[j], p.leaves[i]
}
func (p kdPlane) Len() int {
	return len(p.leaves)
}
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.leaves = p.leaves[start:end]
	return p
}
