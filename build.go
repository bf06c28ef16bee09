package svo

import (
	"fmt"
	"sync"

	"github.com/soypat/svo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Builder constructs sparse voxel octrees. The zero value builds serially.
type Builder struct {
	// Concurrency is the maximum number of goroutines building octants at
	// once. Values of 1 or less build on the calling goroutine.
	Concurrency int
}

// Build constructs a sparse voxel octree over box from triangles using a
// serial Builder. See Builder.Build.
func Build(box r3.Box, triangles []Triangle, maxDepth int) (Node, error) {
	var b Builder
	return b.Build(box, triangles, maxDepth)
}

// Build recursively subdivides box into octants down to maxDepth levels,
// keeping only octants intersected by at least one triangle. The returned
// root covers box exactly. A maxDepth of zero or an empty triangle slice
// yields a single *Leaf.
//
// Build returns an error wrapping ErrInvalidArgument if maxDepth is negative,
// box has non-finite or inverted coordinates, or a triangle has a
// non-finite vertex. Trees built from equal inputs are equal regardless
// of Concurrency.
func (b *Builder) Build(box r3.Box, triangles []Triangle, maxDepth int) (Node, error) {
	if maxDepth < 0 {
		return nil, fmt.Errorf("%w: negative max depth %d", ErrInvalidArgument, maxDepth)
	}
	bb := d3.Box(box)
	if !bb.IsFinite() {
		return nil, fmt.Errorf("%w: non-finite box %v", ErrInvalidArgument, box)
	}
	if bb.Inverted() {
		return nil, fmt.Errorf("%w: box min %v exceeds max %v", ErrInvalidArgument, box.Min, box.Max)
	}
	for i := range triangles {
		if !d3.TriangleFinite(triangles[i]) {
			return nil, fmt.Errorf("%w: triangle %d has non-finite vertex", ErrInvalidArgument, i)
		}
	}
	if b.Concurrency <= 1 {
		return buildNode(box, triangles, maxDepth), nil
	}
	pb := parallelBuilder{sem: make(chan struct{}, b.Concurrency-1)}
	return pb.buildNode(box, triangles, maxDepth), nil
}

// Subdivide splits box into its 8 octants. Octant i = x*4 + y*2 + z covers
// the lower (0) or upper (1) half of box along each axis. The octants tile
// box exactly; a degenerate box yields degenerate octants.
func Subdivide(box r3.Box) [8]r3.Box {
	half := r3.Scale(0.5, r3.Sub(box.Max, box.Min))
	var octants [8]r3.Box
	for i := range octants {
		offset := r3.Vec{
			X: float64(i >> 2 & 1),
			Y: float64(i >> 1 & 1),
			Z: float64(i & 1),
		}
		min := r3.Add(box.Min, d3.MulElem(offset, half))
		max := r3.Add(min, half)
		// Upper halves end on the parent's face so rounding never
		// pushes an octant outside its parent.
		if offset.X == 1 {
			max.X = box.Max.X
		}
		if offset.Y == 1 {
			max.Y = box.Max.Y
		}
		if offset.Z == 1 {
			max.Z = box.Max.Z
		}
		octants[i] = r3.Box{Min: min, Max: max}
	}
	return octants
}

// Filter returns the triangles that intersect box. The result never
// aliases the argument slice.
func Filter(triangles []Triangle, box r3.Box) []Triangle {
	var out []Triangle
	for i := range triangles {
		if Intersects(triangles[i], box) {
			out = append(out, triangles[i])
		}
	}
	return out
}

func buildNode(box r3.Box, triangles []Triangle, depth int) Node {
	if depth == 0 {
		return &Leaf{Box: box}
	}
	var (
		mask  uint8
		nodes []Node
	)
	for i, octant := range Subdivide(box) {
		tris := Filter(triangles, octant)
		if len(tris) == 0 {
			continue // Prune empty space.
		}
		mask |= 1 << uint(i)
		nodes = append(nodes, buildNode(octant, tris, depth-1))
	}
	return newNode(box, mask, nodes)
}

// newNode returns a Leaf when no octant survived filtering.
func newNode(box r3.Box, mask uint8, nodes []Node) Node {
	if len(nodes) == 0 {
		return &Leaf{Box: box}
	}
	return &Branch{Box: box, Mask: mask, Nodes: nodes}
}

// parallelBuilder forks octant construction onto new goroutines while
// semaphore tokens are available and otherwise builds on the calling goroutine.
type parallelBuilder struct {
	sem chan struct{}
}

func (pb *parallelBuilder) buildNode(box r3.Box, triangles []Triangle, depth int) Node {
	if depth == 0 {
		return &Leaf{Box: box}
	}
	var (
		wg      sync.WaitGroup
		results [8]Node
	)
	for i, octant := range Subdivide(box) {
		tris := Filter(triangles, octant)
		if len(tris) == 0 {
			continue
		}
		select {
		case pb.sem <- struct{}{}:
			wg.Add(1)
			go func(i int, octant r3.Box, tris []Triangle) {
				defer func() { <-pb.sem; wg.Done() }()
				results[i] = pb.buildNode(octant, tris, depth-1)
			}(i, octant, tris)
		default:
			results[i] = pb.buildNode(octant, tris, depth-1)
		}
	}
	wg.Wait()
	// Assemble in octant order so the tree does not depend on scheduling.
	var (
		mask  uint8
		nodes []Node
	)
	for i, n := range results {
		if n == nil {
			continue
		}
		mask |= 1 << uint(i)
		nodes = append(nodes, n)
	}
	return newNode(box, mask, nodes)
}
