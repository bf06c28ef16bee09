package svo

import "errors"

// SkipChildren may be returned by a WalkFunc to skip the visited node's subtree.
var SkipChildren = errors.New("skip children")

// WalkFunc is called by Walk for every node. depth is 0 for the root.
type WalkFunc func(n Node, depth int) error

// Walk visits root and its descendants depth first in octant order,
// calling fn before descending into a node's children. If fn returns
// SkipChildren the node's children are not visited. Any other non-nil
// error stops the walk and is returned.
func Walk(root Node, fn WalkFunc) error {
	err := walk(root, 0, fn)
	if err == SkipChildren {
		return nil
	}
	return err
}

func walk(n Node, depth int, fn WalkFunc) error {
	err := fn(n, depth)
	if err == SkipChildren {
		return nil
	} else if err != nil {
		return err
	}
	for _, child := range n.Children() {
		if err = walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// CollectLeaves returns every leaf reachable from root, depth first and
// in octant order.
func CollectLeaves(root Node) []Node {
	return appendLeaves(nil, root)
}

func appendLeaves(dst []Node, n Node) []Node {
	if n.IsLeaf() {
		return append(dst, n)
	}
	for _, child := range n.Children() {
		dst = appendLeaves(dst, child)
	}
	return dst
}

// TreeStats summarizes the shape of an octree.
type TreeStats struct {
	Nodes  int `json:"nodes"`
	Leaves int `json:"leaves"`
	// MaxDepth is the depth of the deepest leaf. The root is at depth 0.
	MaxDepth int `json:"max_depth"`
	// LeavesAtDepth[d] is the number of leaves at depth d.
	LeavesAtDepth []int `json:"leaves_at_depth"`
}

// Stats walks the tree under root and counts its nodes and leaves.
func Stats(root Node) TreeStats {
	var st TreeStats
	Walk(root, func(n Node, depth int) error {
		st.Nodes++
		if !n.IsLeaf() {
			return nil
		}
		st.Leaves++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		for len(st.LeavesAtDepth) <= depth {
			st.LeavesAtDepth = append(st.LeavesAtDepth, 0)
		}
		st.LeavesAtDepth[depth]++
		return nil
	})
	return st
}
