package svo_test

import (
	"errors"
	"testing"

	"github.com/soypat/svo"
	"gonum.org/v1/gonum/spatial/r3"
)

// stairs returns triangles in octants 0, 3 and 7 of the [0,2]^3 box.
func stairs() []svo.Triangle {
	small := func(c r3.Vec) svo.Triangle {
		return svo.Triangle{c, r3.Add(c, r3.Vec{X: .1}), r3.Add(c, r3.Vec{Y: .1})}
	}
	return []svo.Triangle{
		small(r3.Vec{X: 1.3, Y: 1.3, Z: 1.3}),
		small(r3.Vec{X: .3, Y: .3, Z: .3}),
		small(r3.Vec{X: .3, Y: 1.3, Z: 1.3}),
	}
}

func TestCollectLeavesOrder(t *testing.T) {
	box := r3.Box{Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	root, err := svo.Build(box, stairs(), 1)
	if err != nil {
		t.Fatal(err)
	}
	octants := svo.Subdivide(box)
	want := []r3.Box{octants[0], octants[3], octants[7]}
	leaves := svo.CollectLeaves(root)
	if len(leaves) != len(want) {
		t.Fatalf("got %d leaves, want %d", len(leaves), len(want))
	}
	for i := range want {
		if leaves[i].Bounds() != want[i] {
			t.Errorf("leaf %d: got %v, want %v", i, leaves[i].Bounds(), want[i])
		}
	}
}

func TestCollectLeavesRoot(t *testing.T) {
	box := r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}
	root, err := svo.Build(box, nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	leaves := svo.CollectLeaves(root)
	if len(leaves) != 1 || leaves[0] != root {
		t.Fatalf("expected root as single leaf, got %v", leaves)
	}
}

func TestWalk(t *testing.T) {
	box := r3.Box{Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	root, err := svo.Build(box, stairs(), 3)
	if err != nil {
		t.Fatal(err)
	}
	var visited int
	err = svo.Walk(root, func(n svo.Node, depth int) error {
		visited++
		if depth == 1 {
			return svo.SkipChildren
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if visited != 4 {
		t.Errorf("visited %d nodes, want root and 3 children", visited)
	}

	errStop := errors.New("stop")
	visited = 0
	err = svo.Walk(root, func(n svo.Node, depth int) error {
		visited++
		return errStop
	})
	if err != errStop || visited != 1 {
		t.Errorf("got error %v after %d visits, want errStop after 1", err, visited)
	}
}

func TestStats(t *testing.T) {
	box := r3.Box{Max: r3.Vec{X: 2, Y: 2, Z: 2}}
	root, err := svo.Build(box, stairs(), 3)
	if err != nil {
		t.Fatal(err)
	}
	st := svo.Stats(root)
	// Each small triangle sits inside a single octant at every level.
	if st.Leaves != 3 || st.Nodes != 1+3*3 || st.MaxDepth != 3 {
		t.Errorf("unexpected stats %+v", st)
	}
	if len(st.LeavesAtDepth) != 4 || st.LeavesAtDepth[3] != 3 {
		t.Errorf("unexpected leaves per depth %v", st.LeavesAtDepth)
	}
	if st.Leaves != len(svo.CollectLeaves(root)) {
		t.Error("leaf count mismatch with CollectLeaves")
	}
}
