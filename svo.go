// Package svo builds sparse voxel octrees from triangle meshes.
package svo

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sparse voxel octree types.

// ErrInvalidArgument is returned when inputs to the octree
// construction functions are malformed.
var ErrInvalidArgument = errors.New("invalid argument")

// Triangle is a triangle in the coordinate space the octree is built in.
type Triangle = r3.Triangle

// Node is an octree node. It is implemented by *Leaf and *Branch only.
type Node interface {
	// Bounds returns the axis aligned box the node covers.
	Bounds() r3.Box
	// Children returns the node's children in octant order.
	// Leaves return nil.
	Children() []Node
	// IsLeaf reports whether the node has no children.
	IsLeaf() bool

	node()
}

var (
	_ Node = (*Leaf)(nil)
	_ Node = (*Branch)(nil)
)

// Leaf is a node with no children. It marks either a region at maximum
// depth or a region none of whose octants intersect geometry.
type Leaf struct {
	Box r3.Box
}

func (l *Leaf) Bounds() r3.Box   { return l.Box }
func (l *Leaf) Children() []Node { return nil }
func (l *Leaf) IsLeaf() bool     { return true }
func (*Leaf) node()              {}

// Branch is a node with between 1 and 8 children.
type Branch struct {
	Box r3.Box
	// Mask has bit i set when octant i of Box is present in Nodes.
	Mask uint8
	// Nodes holds the non-empty octants in ascending octant order.
	Nodes []Node
}

func (b *Branch) Bounds() r3.Box   { return b.Box }
func (b *Branch) Children() []Node { return b.Nodes }
func (b *Branch) IsLeaf() bool     { return false }
func (*Branch) node()              {}

// Octant returns the child covering octant i and true, or nil and false
// if that octant was pruned.
func (b *Branch) Octant(i int) (Node, bool) {
	if i < 0 || i > 7 {
		panic("octant index out of range [0,7]")
	}
	if b.Mask&(1<<uint(i)) == 0 {
		return nil, false
	}
	// Count present octants before i.
	idx := 0
	for j := 0; j < i; j++ {
		if b.Mask&(1<<uint(j)) != 0 {
			idx++
		}
	}
	return b.Nodes[idx], true
}
